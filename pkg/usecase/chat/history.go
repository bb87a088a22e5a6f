package chat

import (
	"context"

	"github.com/mad-satoru/madai/pkg/model"
)

// History retrieves conversation entries, oldest first.
func (u *UseCase) History(ctx context.Context, limit int) ([]*model.Message, error) {
	return u.repo.ListMessages(ctx, limit)
}
