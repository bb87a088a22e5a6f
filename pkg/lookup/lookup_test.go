package lookup_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mad-satoru/madai/pkg/lookup"
	"github.com/mad-satoru/madai/pkg/model"
)

func record(name string, keywords ...string) *model.KnowledgeRecord {
	return &model.KnowledgeRecord{Name: name, Keywords: keywords}
}

func TestSearchTiers(t *testing.T) {
	records := []*model.KnowledgeRecord{
		record("Minecraft Dungeons", "minecraft", "dungeons"),
		record("Factorio", "factory", "minecraft"),
		record("Minecraft", "minecraft", "sandbox"),
	}

	got := lookup.Search(records, "minecraft", 3)
	gt.A(t, got).Length(3)
	gt.Equal(t, got[0].Name, "Minecraft")          // exact
	gt.Equal(t, got[1].Name, "Minecraft Dungeons") // substring
	gt.Equal(t, got[2].Name, "Factorio")           // keyword only
}

func TestSearchCaseInsensitive(t *testing.T) {
	records := []*model.KnowledgeRecord{
		record("Minecraft", "sandbox"),
	}

	got := lookup.Search(records, "MINECRAFT", 1)
	gt.A(t, got).Length(1)
	gt.Equal(t, got[0].Name, "Minecraft")
}

func TestSearchStableWithinTier(t *testing.T) {
	records := []*model.KnowledgeRecord{
		record("alpha", "shared"),
		record("beta", "shared"),
		record("gamma", "shared"),
	}

	got := lookup.Search(records, "shared", 3)
	gt.A(t, got).Length(3)
	gt.Equal(t, got[0].Name, "alpha")
	gt.Equal(t, got[1].Name, "beta")
	gt.Equal(t, got[2].Name, "gamma")
}

func TestSearchLimit(t *testing.T) {
	records := []*model.KnowledgeRecord{
		record("alpha", "shared"),
		record("beta", "shared"),
		record("gamma", "shared"),
	}

	got := lookup.Search(records, "shared", 2)
	gt.A(t, got).Length(2)
	gt.Equal(t, got[0].Name, "alpha")
	gt.Equal(t, got[1].Name, "beta")
}

func TestSearchKeywordIntersection(t *testing.T) {
	records := []*model.KnowledgeRecord{
		record("Таблицы", "таблица", "массив"),
		record("Циклы", "цикл", "loop"),
	}

	got := lookup.Search(records, "как работает цикл for", 3)
	gt.A(t, got).Length(1)
	gt.Equal(t, got[0].Name, "Циклы")
}

func TestSearchNoCandidates(t *testing.T) {
	records := []*model.KnowledgeRecord{
		record("Minecraft", "sandbox"),
	}

	gt.A(t, lookup.Search(records, "совершенно другое", 3)).Length(0)
	gt.A(t, lookup.Search(records, "", 3)).Length(0)
	gt.A(t, lookup.Search(nil, "minecraft", 3)).Length(0)
}

func TestSearchSubstringBeatsKeyword(t *testing.T) {
	records := []*model.KnowledgeRecord{
		record("Elden Ring II", "elden"),
		record("Elden Ring", "elden"),
	}

	// "Elden Ring" matches exactly and outranks the substring match even
	// though it was inserted later.
	got := lookup.Search(records, "elden ring", 2)
	gt.A(t, got).Length(2)
	gt.Equal(t, got[0].Name, "Elden Ring")
	gt.Equal(t, got[1].Name, "Elden Ring II")
}
