package apikey

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mad-satoru/madai/pkg/model"
	"github.com/mad-satoru/madai/pkg/utils/logging"
)

// Validate resolves a presented secret to its principal. Unknown and revoked
// keys are indistinguishable to the caller.
func (u *UseCase) Validate(ctx context.Context, key string) (*model.Principal, error) {
	stored, err := u.repo.GetAPIKeyByKey(ctx, key)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, goerr.Wrap(model.ErrUnauthorized, "invalid api key")
		}
		return nil, err
	}

	return &model.Principal{KeyID: stored.ID, Name: stored.Name}, nil
}

// RecordUsage updates the last-used timestamp of the principal's key.
// Best effort: a store failure here must not fail the authenticated request,
// so it is logged and swallowed.
func (u *UseCase) RecordUsage(ctx context.Context, principal *model.Principal) {
	if err := u.repo.TouchAPIKey(ctx, principal.KeyID); err != nil {
		logging.From(ctx).Warn("failed to record api key usage",
			"key_id", principal.KeyID,
			"error", err,
		)
	}
}
