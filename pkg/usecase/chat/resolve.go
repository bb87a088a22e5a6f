package chat

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mad-satoru/madai/pkg/model"
	"github.com/mad-satoru/madai/pkg/utils/logging"
)

// ResolveInput is one user query. ChatID tags the conversation channel
// (Telegram chat, CLI session); it is metadata, not a history partition.
type ResolveInput struct {
	Query  string
	ChatID string
}

// ResolveOutput carries both stored conversation entries and the name of the
// stage that produced the answer.
type ResolveOutput struct {
	UserMessage *model.Message
	AIMessage   *model.Message
	Stage       string
}

// Resolve answers a query and appends both sides of the exchange to the
// conversation history. The user entry is written before resolution, so a
// store failure mid-way can leave a user entry without an assistant entry.
func (u *UseCase) Resolve(ctx context.Context, input ResolveInput) (*ResolveOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, goerr.Wrap(model.ErrEmptyQuery, "query is empty")
	}

	userMsg, err := u.repo.PutMessage(ctx, &model.Message{
		Role:    model.RoleUser,
		Content: query,
		ChatID:  input.ChatID,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store user message")
	}

	result, err := u.pipeline.Run(ctx, query)
	if err != nil {
		return nil, err
	}

	aiMsg, err := u.repo.PutMessage(ctx, &model.Message{
		Role:    model.RoleAssistant,
		Content: result.Answer,
		ChatID:  input.ChatID,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store assistant message")
	}

	logging.From(ctx).Debug("query resolved",
		"stage", result.Stage,
		"chat_id", input.ChatID,
	)

	return &ResolveOutput{
		UserMessage: userMsg,
		AIMessage:   aiMsg,
		Stage:       result.Stage,
	}, nil
}
