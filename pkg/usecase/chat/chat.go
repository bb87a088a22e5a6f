package chat

import (
	"time"

	"github.com/mad-satoru/madai/pkg/repository"
	"github.com/mad-satoru/madai/pkg/resolver"
)

// DefaultRetention is how long conversation entries live before Prune drops
// them when the caller gives no explicit age.
const DefaultRetention = 24 * time.Hour

// UseCase provides conversation operations
type UseCase struct {
	repo     repository.Repository
	pipeline *resolver.Pipeline
	now      func() time.Time
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithClock sets the timestamp source. Test use only.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) {
		uc.now = now
	}
}

// New creates a new chat UseCase instance
func New(repo repository.Repository, opts ...Option) *UseCase {
	uc := &UseCase{
		repo:     repo,
		pipeline: resolver.New(repo),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
