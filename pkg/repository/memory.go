package repository

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mad-satoru/madai/pkg/model"
)

// Memory implements Repository in process memory. It backs tests and
// database-less one-shot CLI runs; semantics mirror the SQLite
// implementation, including natural insertion order of knowledge records.
type Memory struct {
	mu        sync.RWMutex
	now       func() time.Time
	messages  []*model.Message
	knowledge map[model.Domain][]*model.KnowledgeRecord
	settings  map[string]string
	apiKeys   []*model.APIKey
	bots      []*model.Bot
	nextID    map[string]int64
}

// NewMemory creates an empty in-memory repository with the default identity
// setting seeded, like a freshly migrated database.
func NewMemory() *Memory {
	return &Memory{
		now:       time.Now,
		knowledge: map[model.Domain][]*model.KnowledgeRecord{},
		settings:  map[string]string{model.SettingCreatorInfo: defaultCreatorInfo},
		nextID:    map[string]int64{},
	}
}

// SetClock replaces the timestamp source. Test use only.
func (r *Memory) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

func (r *Memory) Close() error { return nil }

func (r *Memory) assignID(kind string) int64 {
	r.nextID[kind]++
	return r.nextID[kind]
}

func (r *Memory) PutMessage(_ context.Context, msg *model.Message) (*model.Message, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *msg
	stored.ID = r.assignID("message")
	stored.CreatedAt = r.now().UTC()
	r.messages = append(r.messages, &stored)

	out := stored
	return &out, nil
}

func (r *Memory) ListMessages(_ context.Context, limit int) ([]*model.Message, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Message, 0, limit)
	for _, m := range r.messages {
		if len(out) >= limit {
			break
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *Memory) PruneMessages(_ context.Context, olderThan time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.messages[:0]
	var deleted int64
	for _, m := range r.messages {
		if m.CreatedAt.Before(olderThan) {
			deleted++
			continue
		}
		kept = append(kept, m)
	}
	r.messages = kept
	return deleted, nil
}

func (r *Memory) ListKnowledge(_ context.Context, domain model.Domain) ([]*model.KnowledgeRecord, error) {
	if err := domain.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.knowledge[domain]
	out := make([]*model.KnowledgeRecord, 0, len(records))
	for _, rec := range records {
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

func (r *Memory) PutKnowledge(_ context.Context, domain model.Domain, rec *model.KnowledgeRecord) error {
	if err := domain.Validate(); err != nil {
		return err
	}
	if err := rec.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *rec
	stored.ID = r.assignID("knowledge/" + string(domain))
	stored.CreatedAt = r.now().UTC()
	r.knowledge[domain] = append(r.knowledge[domain], &stored)
	rec.ID = stored.ID
	return nil
}

func (r *Memory) GetSetting(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.settings[key]
	if !ok {
		return "", goerr.Wrap(model.ErrNotFound, "setting not found", goerr.V("key", key))
	}
	return value, nil
}

func (r *Memory) PutSetting(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settings[key] = value
	return nil
}

func (r *Memory) PutAPIKey(_ context.Context, key *model.APIKey) (*model.APIKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *key
	stored.ID = r.assignID("apikey")
	stored.CreatedAt = r.now().UTC()
	r.apiKeys = append(r.apiKeys, &stored)

	out := stored
	return &out, nil
}

func (r *Memory) ListAPIKeys(_ context.Context) ([]*model.APIKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.APIKey, 0, len(r.apiKeys))
	for i := len(r.apiKeys) - 1; i >= 0; i-- {
		cp := *r.apiKeys[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *Memory) GetAPIKeyByKey(_ context.Context, key string) (*model.APIKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, k := range r.apiKeys {
		if k.Key != "" && k.Key == key {
			cp := *k
			return &cp, nil
		}
	}
	return nil, goerr.Wrap(model.ErrNotFound, "api key not found")
}

func (r *Memory) RevokeAPIKey(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, k := range r.apiKeys {
		if k.ID == id {
			k.Key = ""
			return nil
		}
	}
	return goerr.Wrap(model.ErrNotFound, "api key not found", goerr.V("id", id))
}

func (r *Memory) TouchAPIKey(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, k := range r.apiKeys {
		if k.ID == id {
			t := r.now().UTC()
			k.LastUsed = &t
			return nil
		}
	}
	return goerr.Wrap(model.ErrNotFound, "api key not found", goerr.V("id", id))
}

func (r *Memory) PutBot(_ context.Context, bot *model.Bot) (*model.Bot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *bot
	stored.ID = r.assignID("bot")
	stored.CreatedAt = r.now().UTC()
	r.bots = append(r.bots, &stored)

	out := stored
	return &out, nil
}

func (r *Memory) ListBotsByAPIKey(_ context.Context, apiKeyID int64) ([]*model.Bot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.Bot
	for i := len(r.bots) - 1; i >= 0; i-- {
		if r.bots[i].APIKeyID == apiKeyID {
			cp := *r.bots[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *Memory) GetBotByToken(_ context.Context, token string) (*model.Bot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bots {
		if b.Token == token && b.Active {
			cp := *b
			return &cp, nil
		}
	}
	return nil, goerr.Wrap(model.ErrNotFound, "bot not found or inactive")
}

func (r *Memory) ToggleBot(_ context.Context, id, apiKeyID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bots {
		if b.ID == id && b.APIKeyID == apiKeyID {
			b.Active = !b.Active
			return b.Active, nil
		}
	}
	return false, goerr.Wrap(model.ErrNotFound, "bot not found or access denied", goerr.V("id", id))
}
