package model

import "time"

// APIKey is an issued credential. Revocation clears the secret but keeps the
// row so usage history stays listable.
type APIKey struct {
	ID        int64      `json:"id"`
	Key       string     `json:"key,omitempty"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	LastUsed  *time.Time `json:"last_used,omitempty"`
}

// Revoked reports whether the credential secret has been cleared.
func (k *APIKey) Revoked() bool {
	return k.Key == ""
}

// Principal is a validated caller identity. It is derived from an API key by
// the apikey usecase; the resolution pipeline never performs validation
// itself and treats the principal as opaque context.
type Principal struct {
	KeyID int64
	Name  string
}
