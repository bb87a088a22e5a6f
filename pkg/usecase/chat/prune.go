package chat

import (
	"context"
	"time"

	"github.com/mad-satoru/madai/pkg/utils/logging"
)

// Prune deletes conversation entries older than the given age and returns
// the deleted count. Age zero drops everything that exists at call time;
// entries appended concurrently are newer than the cutoff and survive.
func (u *UseCase) Prune(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := u.now().Add(-age)

	deleted, err := u.repo.PruneMessages(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		logging.From(ctx).Info("pruned conversation history",
			"deleted", deleted,
			"age", age.String(),
		)
	}
	return deleted, nil
}
