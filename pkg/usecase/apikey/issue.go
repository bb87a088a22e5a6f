package apikey

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mad-satoru/madai/pkg/model"
)

// Issue creates and stores a new credential. The secret is returned exactly
// once here; listings only ever show metadata.
func (u *UseCase) Issue(ctx context.Context, name string) (*model.APIKey, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultKeyName
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, goerr.Wrap(err, "failed to generate key material")
	}

	key := &model.APIKey{
		Key:  KeyPrefix + base64.RawURLEncoding.EncodeToString(raw),
		Name: name,
	}
	return u.repo.PutAPIKey(ctx, key)
}
