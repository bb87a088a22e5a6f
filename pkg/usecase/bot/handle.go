package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mad-satoru/madai/pkg/adapter"
	"github.com/mad-satoru/madai/pkg/model"
	"github.com/mad-satoru/madai/pkg/usecase/chat"
	"github.com/mad-satoru/madai/pkg/utils/logging"
)

const startGreeting = `🚀 MadAI Telegram Bot активирован!

Я — AI-эксперт по Lua программированию и могу помочь с:

✅ Синтаксисом и функциями Lua
✅ Таблицами и метатаблицами
✅ ООП в Lua
✅ Примерами кода
✅ Отладкой и оптимизацией

Просто напишите ваш вопрос!`

// HandleUpdate processes one incoming Telegram update addressed to the bot
// owning the token. Resolution failures turn into an error reply to the
// chat rather than a webhook failure, so Telegram does not retry the update.
func (u *UseCase) HandleUpdate(ctx context.Context, token string, update *adapter.Update) error {
	registered, err := u.repo.GetBotByToken(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return goerr.Wrap(model.ErrUnauthorized, "no active bot for token")
		}
		return err
	}

	if update == nil || update.Message == nil {
		return nil
	}

	chatID := update.Message.Chat.ID
	text := update.Message.Text

	var reply string
	if strings.HasPrefix(text, "/start") {
		reply = startGreeting
	} else {
		out, err := u.chat.Resolve(ctx, chat.ResolveInput{
			Query:  text,
			ChatID: strconv.FormatInt(chatID, 10),
		})
		if err != nil {
			logging.From(ctx).Error("failed to resolve telegram query",
				"bot", registered.Username,
				"chat_id", chatID,
				"error", err,
			)
			reply = fmt.Sprintf("❌ Ошибка связи с AI: %v", err)
		} else {
			reply = out.AIMessage.Content
		}
	}

	if err := u.telegram.SendMessage(ctx, token, chatID, reply); err != nil {
		return goerr.Wrap(err, "failed to send telegram reply", goerr.V("chat_id", chatID))
	}

	// Best effort: usage tracking must not fail the webhook.
	if err := u.repo.TouchAPIKey(ctx, registered.APIKeyID); err != nil {
		logging.From(ctx).Warn("failed to record bot key usage", "error", err)
	}

	return nil
}
