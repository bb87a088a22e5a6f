// Package apikey manages the API credentials that guard the HTTP surface
// and bind Telegram bots to their owners.
package apikey

import (
	"github.com/mad-satoru/madai/pkg/repository"
)

// KeyPrefix marks every issued secret, so keys are recognizable in configs
// and logs without a store lookup.
const KeyPrefix = "madai_"

// DefaultKeyName names keys issued without an explicit name.
const DefaultKeyName = "Unnamed Key"

// UseCase provides API key operations
type UseCase struct {
	repo repository.Repository
}

// New creates a new apikey UseCase instance
func New(repo repository.Repository) *UseCase {
	return &UseCase{repo: repo}
}
