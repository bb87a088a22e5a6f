package bot

import (
	"context"
	"net/url"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mad-satoru/madai/pkg/model"
	"github.com/mad-satoru/madai/pkg/utils/logging"
)

// Register verifies a bot token against Telegram, stores the bot under the
// principal's key and points its webhook at our intake endpoint. A webhook
// failure leaves the bot registered; the webhook can be re-set by
// re-registering once Telegram is reachable again.
func (u *UseCase) Register(ctx context.Context, principal *model.Principal, token, webhookURL string) (*model.Bot, error) {
	if token == "" || webhookURL == "" {
		return nil, goerr.Wrap(model.ErrInvalidArgument, "telegram_token and webhook_url are required")
	}

	profile, err := u.telegram.GetMe(ctx, token)
	if err != nil {
		return nil, goerr.Wrap(err, "telegram token verification failed")
	}

	stored, err := u.repo.PutBot(ctx, &model.Bot{
		APIKeyID:   principal.KeyID,
		Token:      token,
		Username:   profile.Username,
		WebhookURL: webhookURL,
		Active:     true,
	})
	if err != nil {
		return nil, err
	}

	intake := webhookURL + "?token=" + url.QueryEscape(token)
	if err := u.telegram.SetWebhook(ctx, token, intake); err != nil {
		logging.From(ctx).Warn("failed to set telegram webhook",
			"bot", stored.Username,
			"error", err,
		)
	}

	return stored, nil
}

// List retrieves the principal's bots with masked tokens.
func (u *UseCase) List(ctx context.Context, principal *model.Principal) ([]*model.Bot, error) {
	bots, err := u.repo.ListBotsByAPIKey(ctx, principal.KeyID)
	if err != nil {
		return nil, err
	}

	for _, b := range bots {
		b.Token = b.MaskedToken()
	}
	return bots, nil
}

// Toggle flips the active flag of one of the principal's bots and returns
// the new state. Bots of other principals are invisible here.
func (u *UseCase) Toggle(ctx context.Context, principal *model.Principal, botID int64) (bool, error) {
	return u.repo.ToggleBot(ctx, botID, principal.KeyID)
}
