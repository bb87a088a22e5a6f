package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mad-satoru/madai/pkg/model"
	_ "modernc.org/sqlite"
)

// knowledgeTables maps a domain to its table. The three tables share one
// schema; the map doubles as a whitelist so a domain value never reaches SQL
// as raw text.
var knowledgeTables = map[model.Domain]string{
	model.DomainGames:       "games",
	model.DomainCelebrities: "celebrities",
	model.DomainTopics:      "topics",
}

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	role TEXT NOT NULL,
	content TEXT NOT NULL,
	chat_id TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_created_at ON messages(created_at);

CREATE TABLE IF NOT EXISTS games (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	attributes TEXT NOT NULL DEFAULT '[]',
	description TEXT NOT NULL DEFAULT '',
	keywords TEXT NOT NULL DEFAULT '[]',
	created_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS celebrities (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	attributes TEXT NOT NULL DEFAULT '[]',
	description TEXT NOT NULL DEFAULT '',
	keywords TEXT NOT NULL DEFAULT '[]',
	created_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS topics (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	attributes TEXT NOT NULL DEFAULT '[]',
	description TEXT NOT NULL DEFAULT '',
	keywords TEXT NOT NULL DEFAULT '[]',
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS api_keys (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	key TEXT NOT NULL DEFAULT '',
	name TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	last_used TIMESTAMP
);

CREATE TABLE IF NOT EXISTS bots (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	api_key_id INTEGER NOT NULL,
	token TEXT NOT NULL,
	username TEXT NOT NULL DEFAULT '',
	webhook_url TEXT NOT NULL DEFAULT '',
	active INTEGER NOT NULL DEFAULT 1,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_bots_token ON bots(token);
`

const defaultCreatorInfo = "MadAI создал Мад Сатору в 2025 году"

// SQLite implements Repository on a local SQLite database file.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLite opens (and if needed creates) the database at path and applies
// the schema. Use ":memory:" for an ephemeral database.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite database", goerr.V("path", path))
	}

	// Single writer connection; SQLite serializes writes anyway and this
	// avoids SQLITE_BUSY under concurrent appends.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, goerr.Wrap(err, "failed to set busy_timeout")
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, goerr.Wrap(err, "failed to enable WAL")
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, goerr.Wrap(err, "failed to apply schema")
	}
	if _, err := db.Exec(
		"INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)",
		model.SettingCreatorInfo, defaultCreatorInfo,
	); err != nil {
		db.Close()
		return nil, goerr.Wrap(err, "failed to seed settings")
	}

	return &SQLite{db: db, now: time.Now}, nil
}

// Close releases the database handle.
func (r *SQLite) Close() error {
	if err := r.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close sqlite database")
	}
	return nil
}

func (r *SQLite) PutMessage(ctx context.Context, msg *model.Message) (*model.Message, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	createdAt := r.now().UTC()
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO messages (role, content, chat_id, created_at) VALUES (?, ?, ?, ?)",
		string(msg.Role), msg.Content, msg.ChatID, createdAt,
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to insert message")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read inserted message id")
	}

	stored := *msg
	stored.ID = id
	stored.CreatedAt = createdAt
	return &stored, nil
}

func (r *SQLite) ListMessages(ctx context.Context, limit int) ([]*model.Message, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, role, content, chat_id, created_at FROM messages ORDER BY created_at ASC, id ASC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query messages")
	}
	defer rows.Close()

	var messages []*model.Message
	for rows.Next() {
		var m model.Message
		var role string
		if err := rows.Scan(&m.ID, &role, &m.Content, &m.ChatID, &m.CreatedAt); err != nil {
			return nil, goerr.Wrap(err, "failed to scan message")
		}
		m.Role = model.Role(role)
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate messages")
	}
	return messages, nil
}

func (r *SQLite) PruneMessages(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM messages WHERE created_at < ?", olderThan.UTC(),
	)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to prune messages")
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count pruned messages")
	}
	return deleted, nil
}

func (r *SQLite) ListKnowledge(ctx context.Context, domain model.Domain) ([]*model.KnowledgeRecord, error) {
	table, ok := knowledgeTables[domain]
	if !ok {
		return nil, goerr.New("invalid knowledge domain", goerr.V("domain", domain))
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, attributes, description, keywords, created_at FROM "+table+" ORDER BY id ASC",
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query knowledge records", goerr.V("domain", domain))
	}
	defer rows.Close()

	var records []*model.KnowledgeRecord
	for rows.Next() {
		var rec model.KnowledgeRecord
		var attrs, keywords string
		if err := rows.Scan(&rec.ID, &rec.Name, &attrs, &rec.Description, &keywords, &rec.CreatedAt); err != nil {
			return nil, goerr.Wrap(err, "failed to scan knowledge record")
		}
		if err := json.Unmarshal([]byte(attrs), &rec.Attributes); err != nil {
			return nil, goerr.Wrap(err, "failed to decode record attributes", goerr.V("id", rec.ID))
		}
		if err := json.Unmarshal([]byte(keywords), &rec.Keywords); err != nil {
			return nil, goerr.Wrap(err, "failed to decode record keywords", goerr.V("id", rec.ID))
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate knowledge records")
	}
	return records, nil
}

func (r *SQLite) PutKnowledge(ctx context.Context, domain model.Domain, rec *model.KnowledgeRecord) error {
	table, ok := knowledgeTables[domain]
	if !ok {
		return goerr.New("invalid knowledge domain", goerr.V("domain", domain))
	}
	if err := rec.Validate(); err != nil {
		return err
	}

	attrs, err := json.Marshal(rec.Attributes)
	if err != nil {
		return goerr.Wrap(err, "failed to encode record attributes")
	}
	if rec.Attributes == nil {
		attrs = []byte("[]")
	}
	keywords, err := json.Marshal(rec.Keywords)
	if err != nil {
		return goerr.Wrap(err, "failed to encode record keywords")
	}
	if rec.Keywords == nil {
		keywords = []byte("[]")
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO "+table+" (name, attributes, description, keywords, created_at) VALUES (?, ?, ?, ?, ?)",
		rec.Name, string(attrs), rec.Description, string(keywords), r.now().UTC(),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to insert knowledge record", goerr.V("domain", domain))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return goerr.Wrap(err, "failed to read inserted record id")
	}
	rec.ID = id
	return nil
}

func (r *SQLite) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		"SELECT value FROM settings WHERE key = ?", key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", goerr.Wrap(model.ErrNotFound, "setting not found", goerr.V("key", key))
	}
	if err != nil {
		return "", goerr.Wrap(err, "failed to query setting", goerr.V("key", key))
	}
	return value, nil
}

func (r *SQLite) PutSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return goerr.Wrap(err, "failed to upsert setting", goerr.V("key", key))
	}
	return nil
}

func (r *SQLite) PutAPIKey(ctx context.Context, key *model.APIKey) (*model.APIKey, error) {
	createdAt := r.now().UTC()
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO api_keys (key, name, created_at) VALUES (?, ?, ?)",
		key.Key, key.Name, createdAt,
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to insert api key")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read inserted api key id")
	}

	stored := *key
	stored.ID = id
	stored.CreatedAt = createdAt
	return &stored, nil
}

func (r *SQLite) ListAPIKeys(ctx context.Context) ([]*model.APIKey, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, key, name, created_at, last_used FROM api_keys ORDER BY created_at DESC, id DESC",
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query api keys")
	}
	defer rows.Close()

	var keys []*model.APIKey
	for rows.Next() {
		key, err := scanAPIKey(rows)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate api keys")
	}
	return keys, nil
}

func (r *SQLite) GetAPIKeyByKey(ctx context.Context, key string) (*model.APIKey, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, key, name, created_at, last_used FROM api_keys WHERE key = ? AND key != ''",
		key,
	)
	found, err := scanAPIKey(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(model.ErrNotFound, "api key not found")
	}
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *SQLite) RevokeAPIKey(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE api_keys SET key = '' WHERE id = ?", id,
	)
	if err != nil {
		return goerr.Wrap(err, "failed to revoke api key", goerr.V("id", id))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return goerr.Wrap(err, "failed to count revoked api keys")
	}
	if affected == 0 {
		return goerr.Wrap(model.ErrNotFound, "api key not found", goerr.V("id", id))
	}
	return nil
}

func (r *SQLite) TouchAPIKey(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE api_keys SET last_used = ? WHERE id = ?", r.now().UTC(), id,
	)
	if err != nil {
		return goerr.Wrap(err, "failed to touch api key", goerr.V("id", id))
	}
	return nil
}

func (r *SQLite) PutBot(ctx context.Context, bot *model.Bot) (*model.Bot, error) {
	createdAt := r.now().UTC()
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO bots (api_key_id, token, username, webhook_url, active, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		bot.APIKeyID, bot.Token, bot.Username, bot.WebhookURL, bot.Active, createdAt,
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to insert bot")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read inserted bot id")
	}

	stored := *bot
	stored.ID = id
	stored.CreatedAt = createdAt
	return &stored, nil
}

func (r *SQLite) ListBotsByAPIKey(ctx context.Context, apiKeyID int64) ([]*model.Bot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, api_key_id, token, username, webhook_url, active, created_at
		 FROM bots WHERE api_key_id = ? ORDER BY created_at DESC, id DESC`,
		apiKeyID,
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query bots")
	}
	defer rows.Close()

	var bots []*model.Bot
	for rows.Next() {
		var b model.Bot
		if err := rows.Scan(&b.ID, &b.APIKeyID, &b.Token, &b.Username, &b.WebhookURL, &b.Active, &b.CreatedAt); err != nil {
			return nil, goerr.Wrap(err, "failed to scan bot")
		}
		bots = append(bots, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate bots")
	}
	return bots, nil
}

func (r *SQLite) GetBotByToken(ctx context.Context, token string) (*model.Bot, error) {
	var b model.Bot
	err := r.db.QueryRowContext(ctx,
		`SELECT id, api_key_id, token, username, webhook_url, active, created_at
		 FROM bots WHERE token = ? AND active = 1`,
		token,
	).Scan(&b.ID, &b.APIKeyID, &b.Token, &b.Username, &b.WebhookURL, &b.Active, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(model.ErrNotFound, "bot not found or inactive")
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query bot by token")
	}
	return &b, nil
}

func (r *SQLite) ToggleBot(ctx context.Context, id, apiKeyID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE bots SET active = NOT active WHERE id = ? AND api_key_id = ?",
		id, apiKeyID,
	)
	if err != nil {
		return false, goerr.Wrap(err, "failed to toggle bot", goerr.V("id", id))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, goerr.Wrap(err, "failed to count toggled bots")
	}
	if affected == 0 {
		return false, goerr.Wrap(model.ErrNotFound, "bot not found or access denied", goerr.V("id", id))
	}

	var active bool
	if err := r.db.QueryRowContext(ctx,
		"SELECT active FROM bots WHERE id = ?", id,
	).Scan(&active); err != nil {
		return false, goerr.Wrap(err, "failed to read bot state", goerr.V("id", id))
	}
	return active, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAPIKey(row rowScanner) (*model.APIKey, error) {
	var k model.APIKey
	var lastUsed sql.NullTime
	if err := row.Scan(&k.ID, &k.Key, &k.Name, &k.CreatedAt, &lastUsed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, goerr.Wrap(err, "failed to scan api key")
	}
	if lastUsed.Valid {
		t := lastUsed.Time
		k.LastUsed = &t
	}
	return &k, nil
}
