package knowledge_test

import (
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mad-satoru/madai/pkg/model"
	"github.com/mad-satoru/madai/pkg/repository"
	"github.com/mad-satoru/madai/pkg/usecase/knowledge"
)

const seedYAML = `
games:
  - name: Minecraft
    attributes:
      - label: Разработчик
        value: Mojang
      - label: Год выхода
        value: "2011"
    description: Песочница с кубиками
    keywords: [майнкрафт, minecraft]
celebrities:
  - name: Моргенштерн
    attributes:
      - label: Профессия
        value: Рэпер
    keywords: [моргенштерн]
topics:
  - name: циклы в lua
    attributes:
      - label: code
        value: |-
          for i = 1, 10 do
            print(i)
          end
      - label: explanation
        value: Счетный цикл.
    description: Циклы повторяют блок кода.
    keywords: [цикл, loop]
`

func TestSeedFrom(t *testing.T) {
	repo := repository.NewMemory()
	uc := knowledge.New(repo)
	ctx := context.Background()

	count := gt.R1(uc.SeedFrom(ctx, strings.NewReader(seedYAML))).NoError(t)
	gt.Equal(t, count, 4)

	games := gt.R1(repo.ListKnowledge(ctx, model.DomainGames)).NoError(t)
	gt.A(t, games).Length(1)
	gt.Equal(t, games[0].Name, "Minecraft")
	gt.Equal(t, games[0].Attr("Разработчик"), "Mojang")
	gt.A(t, games[0].Keywords).Length(2)

	topics := gt.R1(repo.ListKnowledge(ctx, model.DomainTopics)).NoError(t)
	gt.A(t, topics).Length(1)
	gt.S(t, topics[0].Attr(model.AttrCode)).Contains("for i = 1, 10 do")
}

func TestSeedFromBadYAML(t *testing.T) {
	uc := knowledge.New(repository.NewMemory())

	_, err := uc.SeedFrom(context.Background(), strings.NewReader("games: {not: a list}"))
	gt.Error(t, err)
}

func TestSeedMissingFile(t *testing.T) {
	uc := knowledge.New(repository.NewMemory())

	_, err := uc.Seed(context.Background(), "/nonexistent/seed.yml")
	gt.Error(t, err)
}

func TestAppendRejectsInvalidRecord(t *testing.T) {
	uc := knowledge.New(repository.NewMemory())

	err := uc.Append(context.Background(), model.DomainGames, &model.KnowledgeRecord{})
	gt.Error(t, err)
}
