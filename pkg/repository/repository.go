package repository

import (
	"context"
	"time"

	"github.com/mad-satoru/madai/pkg/model"
)

// DefaultListLimit bounds conversation listings when the caller passes no limit.
const DefaultListLimit = 100

// Repository defines the persistence interface of the assistant. Every
// method takes a context and performs at most one store round-trip; the
// pipeline acquires the repository per request and never shares connections
// through globals.
type Repository interface {
	// PutMessage appends a conversation entry and returns it with the
	// assigned id and timestamp.
	PutMessage(ctx context.Context, msg *model.Message) (*model.Message, error)

	// ListMessages retrieves conversation entries ordered by creation time
	// ascending, oldest first. limit <= 0 applies DefaultListLimit.
	ListMessages(ctx context.Context, limit int) ([]*model.Message, error)

	// PruneMessages bulk-deletes entries created before the cutoff and
	// returns the number of deleted rows. Entries at or after the cutoff
	// are never touched.
	PruneMessages(ctx context.Context, olderThan time.Time) (int64, error)

	// ListKnowledge retrieves all records of a domain in natural
	// (insertion) order.
	ListKnowledge(ctx context.Context, domain model.Domain) ([]*model.KnowledgeRecord, error)

	// PutKnowledge appends a record to a domain table. Administrative use
	// only; the pipeline is read-only on knowledge tables.
	PutKnowledge(ctx context.Context, domain model.Domain, rec *model.KnowledgeRecord) error

	// GetSetting retrieves a configuration record by key.
	GetSetting(ctx context.Context, key string) (string, error)

	// PutSetting upserts a configuration record.
	PutSetting(ctx context.Context, key, value string) error

	// PutAPIKey stores an issued credential and returns it with the
	// assigned id.
	PutAPIKey(ctx context.Context, key *model.APIKey) (*model.APIKey, error)

	// ListAPIKeys retrieves all credentials, newest first.
	ListAPIKeys(ctx context.Context) ([]*model.APIKey, error)

	// GetAPIKeyByKey retrieves a non-revoked credential by its secret.
	GetAPIKeyByKey(ctx context.Context, key string) (*model.APIKey, error)

	// RevokeAPIKey clears the credential secret but keeps the row.
	RevokeAPIKey(ctx context.Context, id int64) error

	// TouchAPIKey updates the last-used timestamp of a credential.
	TouchAPIKey(ctx context.Context, id int64) error

	// PutBot stores a bot registration and returns it with the assigned id.
	PutBot(ctx context.Context, bot *model.Bot) (*model.Bot, error)

	// ListBotsByAPIKey retrieves bots bound to a credential, newest first.
	ListBotsByAPIKey(ctx context.Context, apiKeyID int64) ([]*model.Bot, error)

	// GetBotByToken retrieves an active bot by its Telegram token.
	GetBotByToken(ctx context.Context, token string) (*model.Bot, error)

	// ToggleBot flips the active flag of a bot owned by the credential and
	// returns the new state.
	ToggleBot(ctx context.Context, id, apiKeyID int64) (bool, error)

	// Close releases the underlying store handle.
	Close() error
}
