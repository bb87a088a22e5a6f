// Package knowledge provides administrative writes to the knowledge base:
// single-record appends and bulk YAML seeding. The resolution pipeline only
// ever reads these records.
package knowledge

import (
	"context"

	"github.com/mad-satoru/madai/pkg/model"
	"github.com/mad-satoru/madai/pkg/repository"
)

// UseCase provides knowledge base administration
type UseCase struct {
	repo repository.Repository
}

// New creates a new knowledge UseCase instance
func New(repo repository.Repository) *UseCase {
	return &UseCase{repo: repo}
}

// Append stores one record in a domain.
func (u *UseCase) Append(ctx context.Context, domain model.Domain, rec *model.KnowledgeRecord) error {
	return u.repo.PutKnowledge(ctx, domain, rec)
}
