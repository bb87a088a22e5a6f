// Package bot manages Telegram bot registrations and routes incoming
// updates through the query pipeline.
package bot

import (
	"github.com/mad-satoru/madai/pkg/adapter"
	"github.com/mad-satoru/madai/pkg/repository"
	"github.com/mad-satoru/madai/pkg/usecase/chat"
)

// UseCase provides Telegram bot operations
type UseCase struct {
	repo     repository.Repository
	telegram adapter.Telegram
	chat     *chat.UseCase
}

// New creates a new bot UseCase instance
func New(repo repository.Repository, telegram adapter.Telegram, chatUC *chat.UseCase) *UseCase {
	return &UseCase{
		repo:     repo,
		telegram: telegram,
		chat:     chatUC,
	}
}
