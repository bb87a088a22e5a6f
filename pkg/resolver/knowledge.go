package resolver

import (
	"context"
	"strings"

	"github.com/mad-satoru/madai/pkg/lookup"
	"github.com/mad-satoru/madai/pkg/model"
	"github.com/mad-satoru/madai/pkg/repository"
)

// knowledgeStage resolves a query against one knowledge domain. The three
// domain stages differ only in domain, result limit and rendering.
type knowledgeStage struct {
	repo   repository.Repository
	domain model.Domain
	limit  int
	render func(query string, hits []*model.KnowledgeRecord) string
}

func newGameStage(repo repository.Repository) *knowledgeStage {
	return &knowledgeStage{
		repo:   repo,
		domain: model.DomainGames,
		limit:  1,
		render: func(_ string, hits []*model.KnowledgeRecord) string {
			return renderCard("🎮", hits[0])
		},
	}
}

func newCelebrityStage(repo repository.Repository) *knowledgeStage {
	return &knowledgeStage{
		repo:   repo,
		domain: model.DomainCelebrities,
		limit:  1,
		render: func(_ string, hits []*model.KnowledgeRecord) string {
			return renderCard("🎤", hits[0])
		},
	}
}

func newTopicStage(repo repository.Repository) *knowledgeStage {
	return &knowledgeStage{
		repo:   repo,
		domain: model.DomainTopics,
		limit:  3,
		render: renderTopics,
	}
}

func (s *knowledgeStage) Name() string { return string(s.domain) }

func (s *knowledgeStage) Resolve(ctx context.Context, query string) (string, error) {
	records, err := s.repo.ListKnowledge(ctx, s.domain)
	if err != nil {
		return "", err
	}

	hits := lookup.Search(records, query, s.limit)
	if len(hits) == 0 {
		return "", nil
	}
	return s.render(query, hits), nil
}

// renderCard formats a single-record answer: icon and name, the non-empty
// attributes in their declared order, then the description as its own
// paragraph.
func renderCard(icon string, rec *model.KnowledgeRecord) string {
	var b strings.Builder
	b.WriteString(icon + " **" + rec.Name + "**\n\n")
	for _, attr := range rec.Attributes {
		if attr.Value == "" {
			continue
		}
		b.WriteString("**" + attr.Label + ":** " + attr.Value + "\n")
	}
	if rec.Description != "" {
		b.WriteString("\n" + rec.Description)
	}
	return b.String()
}

// renderTopics formats topic answers: description, fenced code sample and
// explanation per record, blocks joined with a horizontal rule. An exact name
// match renders only that record even when looser matches follow.
func renderTopics(query string, hits []*model.KnowledgeRecord) string {
	if strings.EqualFold(strings.TrimSpace(query), hits[0].Name) {
		hits = hits[:1]
	}

	blocks := make([]string, 0, len(hits))
	for _, rec := range hits {
		roblox := rec.Attr(model.AttrRuntime) == model.RuntimeRoblox

		var b strings.Builder
		b.WriteString("**" + rec.Name + "**")
		if roblox {
			b.WriteString(" (Roblox Studio)")
		}
		b.WriteString("\n\n")

		if rec.Description != "" {
			b.WriteString(rec.Description + "\n\n")
		}
		if code := rec.Attr(model.AttrCode); code != "" {
			lang := "lua"
			if roblox {
				lang = "luau"
			}
			b.WriteString("```" + lang + "\n" + code + "\n```\n\n")
		}
		if explanation := rec.Attr(model.AttrExplanation); explanation != "" {
			b.WriteString(explanation + "\n")
		}
		blocks = append(blocks, strings.TrimSpace(b.String()))
	}
	return strings.Join(blocks, "\n\n---\n\n")
}
