package apikey

import (
	"context"

	"github.com/mad-satoru/madai/pkg/model"
)

// List retrieves all credentials, newest first. Revoked keys stay listed
// with an empty secret for audit.
func (u *UseCase) List(ctx context.Context) ([]*model.APIKey, error) {
	return u.repo.ListAPIKeys(ctx)
}

// Revoke clears the secret of a credential. The row is kept, so bots bound
// to the key remain visible but can no longer be managed.
func (u *UseCase) Revoke(ctx context.Context, id int64) error {
	return u.repo.RevokeAPIKey(ctx, id)
}
