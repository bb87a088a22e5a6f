package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Validate checks if the role is valid
func (r Role) Validate() error {
	switch r {
	case RoleUser, RoleAssistant:
		return nil
	default:
		return goerr.New("invalid role", goerr.V("role", r))
	}
}

// Message is one entry of the conversation log. Entries are append-only:
// once stored they are never mutated, only removed in bulk by pruning.
type Message struct {
	ID        int64     `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	ChatID    string    `json:"chat_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks if the message can be stored
func (m *Message) Validate() error {
	if err := m.Role.Validate(); err != nil {
		return err
	}
	if m.Content == "" {
		return goerr.New("message content is empty")
	}
	return nil
}
