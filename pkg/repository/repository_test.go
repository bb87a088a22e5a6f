package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/mad-satoru/madai/pkg/model"
	"github.com/mad-satoru/madai/pkg/repository"
)

// eachRepo runs a subtest against both implementations; the interface
// contract is identical, so every test covers SQLite and memory alike.
func eachRepo(t *testing.T, test func(t *testing.T, repo repository.Repository)) {
	t.Helper()

	t.Run("memory", func(t *testing.T) {
		test(t, repository.NewMemory())
	})

	t.Run("sqlite", func(t *testing.T) {
		repo := gt.R1(repository.NewSQLite(filepath.Join(t.TempDir(), "test.db"))).NoError(t)
		t.Cleanup(func() { gt.NoError(t, repo.Close()) })
		test(t, repo)
	})
}

func TestMessageRoundTrip(t *testing.T) {
	eachRepo(t, func(t *testing.T, repo repository.Repository) {
		ctx := context.Background()

		stored := gt.R1(repo.PutMessage(ctx, &model.Message{
			Role:    model.RoleUser,
			Content: "привет",
			ChatID:  "42",
		})).NoError(t)
		gt.True(t, stored.ID > 0)
		gt.False(t, stored.CreatedAt.IsZero())

		messages := gt.R1(repo.ListMessages(ctx, 0)).NoError(t)
		gt.A(t, messages).Length(1)
		gt.Equal(t, messages[0].Content, "привет")
		gt.Equal(t, messages[0].ChatID, "42")
		gt.Equal(t, messages[0].Role, model.RoleUser)
	})
}

func TestMessageValidation(t *testing.T) {
	eachRepo(t, func(t *testing.T, repo repository.Repository) {
		_, err := repo.PutMessage(context.Background(), &model.Message{Role: model.RoleUser})
		gt.Error(t, err)

		_, err = repo.PutMessage(context.Background(), &model.Message{Role: "invalid", Content: "x"})
		gt.Error(t, err)
	})
}

func TestMessageOrderAndLimit(t *testing.T) {
	eachRepo(t, func(t *testing.T, repo repository.Repository) {
		ctx := context.Background()

		for _, content := range []string{"first", "second", "third"} {
			gt.R1(repo.PutMessage(ctx, &model.Message{Role: model.RoleUser, Content: content})).NoError(t)
		}

		messages := gt.R1(repo.ListMessages(ctx, 2)).NoError(t)
		gt.A(t, messages).Length(2)
		gt.Equal(t, messages[0].Content, "first")
		gt.Equal(t, messages[1].Content, "second")
	})
}

func TestPruneMessages(t *testing.T) {
	eachRepo(t, func(t *testing.T, repo repository.Repository) {
		ctx := context.Background()

		gt.R1(repo.PutMessage(ctx, &model.Message{Role: model.RoleUser, Content: "old"})).NoError(t)

		deleted := gt.R1(repo.PruneMessages(ctx, time.Now().Add(time.Hour))).NoError(t)
		gt.Equal(t, deleted, int64(1))

		deleted = gt.R1(repo.PruneMessages(ctx, time.Now().Add(time.Hour))).NoError(t)
		gt.Equal(t, deleted, int64(0))
	})
}

func TestPruneKeepsFutureEntries(t *testing.T) {
	eachRepo(t, func(t *testing.T, repo repository.Repository) {
		ctx := context.Background()

		gt.R1(repo.PutMessage(ctx, &model.Message{Role: model.RoleUser, Content: "fresh"})).NoError(t)

		deleted := gt.R1(repo.PruneMessages(ctx, time.Now().Add(-time.Hour))).NoError(t)
		gt.Equal(t, deleted, int64(0))

		messages := gt.R1(repo.ListMessages(ctx, 0)).NoError(t)
		gt.A(t, messages).Length(1)
	})
}

func TestKnowledgeRoundTrip(t *testing.T) {
	eachRepo(t, func(t *testing.T, repo repository.Repository) {
		ctx := context.Background()

		rec := &model.KnowledgeRecord{
			Name: "Minecraft",
			Attributes: []model.Attribute{
				{Label: "Разработчик", Value: "Mojang"},
			},
			Description: "Песочница",
			Keywords:    []string{"майнкрафт", "minecraft"},
		}
		gt.NoError(t, repo.PutKnowledge(ctx, model.DomainGames, rec))
		gt.True(t, rec.ID > 0)

		games := gt.R1(repo.ListKnowledge(ctx, model.DomainGames)).NoError(t)
		gt.A(t, games).Length(1)
		gt.Equal(t, games[0].Name, "Minecraft")
		gt.Equal(t, games[0].Attr("Разработчик"), "Mojang")
		gt.A(t, games[0].Keywords).Length(2)

		// Domains are isolated tables.
		topics := gt.R1(repo.ListKnowledge(ctx, model.DomainTopics)).NoError(t)
		gt.A(t, topics).Length(0)
	})
}

func TestKnowledgeInvalidDomain(t *testing.T) {
	eachRepo(t, func(t *testing.T, repo repository.Repository) {
		ctx := context.Background()

		_, err := repo.ListKnowledge(ctx, model.Domain("users"))
		gt.Error(t, err)

		err = repo.PutKnowledge(ctx, model.Domain("users"), &model.KnowledgeRecord{Name: "x"})
		gt.Error(t, err)
	})
}

func TestKnowledgeNaturalOrder(t *testing.T) {
	eachRepo(t, func(t *testing.T, repo repository.Repository) {
		ctx := context.Background()

		for _, name := range []string{"b", "a", "c"} {
			gt.NoError(t, repo.PutKnowledge(ctx, model.DomainTopics, &model.KnowledgeRecord{Name: name}))
		}

		topics := gt.R1(repo.ListKnowledge(ctx, model.DomainTopics)).NoError(t)
		gt.A(t, topics).Length(3)
		gt.Equal(t, topics[0].Name, "b")
		gt.Equal(t, topics[1].Name, "a")
		gt.Equal(t, topics[2].Name, "c")
	})
}

func TestSettings(t *testing.T) {
	eachRepo(t, func(t *testing.T, repo repository.Repository) {
		ctx := context.Background()

		// The identity setting is seeded on a fresh store.
		seeded := gt.R1(repo.GetSetting(ctx, model.SettingCreatorInfo)).NoError(t)
		gt.Equal(t, seeded, "MadAI создал Мад Сатору в 2025 году")

		gt.NoError(t, repo.PutSetting(ctx, model.SettingCreatorInfo, "updated"))
		value := gt.R1(repo.GetSetting(ctx, model.SettingCreatorInfo)).NoError(t)
		gt.Equal(t, value, "updated")

		_, err := repo.GetSetting(ctx, "missing")
		gt.True(t, errors.Is(err, model.ErrNotFound))
	})
}

func TestAPIKeyLifecycle(t *testing.T) {
	eachRepo(t, func(t *testing.T, repo repository.Repository) {
		ctx := context.Background()

		stored := gt.R1(repo.PutAPIKey(ctx, &model.APIKey{Key: "madai_secret", Name: "test"})).NoError(t)
		gt.True(t, stored.ID > 0)

		found := gt.R1(repo.GetAPIKeyByKey(ctx, "madai_secret")).NoError(t)
		gt.Equal(t, found.ID, stored.ID)

		gt.NoError(t, repo.TouchAPIKey(ctx, stored.ID))
		keys := gt.R1(repo.ListAPIKeys(ctx)).NoError(t)
		gt.A(t, keys).Length(1)
		gt.V(t, keys[0].LastUsed).NotNil()

		gt.NoError(t, repo.RevokeAPIKey(ctx, stored.ID))
		_, err := repo.GetAPIKeyByKey(ctx, "madai_secret")
		gt.True(t, errors.Is(err, model.ErrNotFound))

		// Revoked keys never match the empty secret either.
		_, err = repo.GetAPIKeyByKey(ctx, "")
		gt.True(t, errors.Is(err, model.ErrNotFound))
	})
}

func TestRevokeUnknownKey(t *testing.T) {
	eachRepo(t, func(t *testing.T, repo repository.Repository) {
		err := repo.RevokeAPIKey(context.Background(), 9999)
		gt.True(t, errors.Is(err, model.ErrNotFound))
	})
}

func TestBotLifecycle(t *testing.T) {
	eachRepo(t, func(t *testing.T, repo repository.Repository) {
		ctx := context.Background()

		key := gt.R1(repo.PutAPIKey(ctx, &model.APIKey{Key: "madai_owner", Name: "owner"})).NoError(t)

		stored := gt.R1(repo.PutBot(ctx, &model.Bot{
			APIKeyID:   key.ID,
			Token:      "123456:ABCDEF",
			Username:   "test_bot",
			WebhookURL: "https://example.com/hook",
			Active:     true,
		})).NoError(t)
		gt.True(t, stored.ID > 0)

		found := gt.R1(repo.GetBotByToken(ctx, "123456:ABCDEF")).NoError(t)
		gt.Equal(t, found.ID, stored.ID)
		gt.Equal(t, found.APIKeyID, key.ID)

		bots := gt.R1(repo.ListBotsByAPIKey(ctx, key.ID)).NoError(t)
		gt.A(t, bots).Length(1)

		active := gt.R1(repo.ToggleBot(ctx, stored.ID, key.ID)).NoError(t)
		gt.False(t, active)

		// Inactive bots are invisible to token lookup.
		_, err := repo.GetBotByToken(ctx, "123456:ABCDEF")
		gt.True(t, errors.Is(err, model.ErrNotFound))

		active = gt.R1(repo.ToggleBot(ctx, stored.ID, key.ID)).NoError(t)
		gt.True(t, active)
	})
}

func TestToggleBotOwnership(t *testing.T) {
	eachRepo(t, func(t *testing.T, repo repository.Repository) {
		ctx := context.Background()

		key := gt.R1(repo.PutAPIKey(ctx, &model.APIKey{Key: "madai_owner", Name: "owner"})).NoError(t)
		stored := gt.R1(repo.PutBot(ctx, &model.Bot{APIKeyID: key.ID, Token: "t", Active: true})).NoError(t)

		_, err := repo.ToggleBot(ctx, stored.ID, key.ID+1)
		gt.True(t, errors.Is(err, model.ErrNotFound))
	})
}
