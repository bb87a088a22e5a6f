package model

import "time"

// Bot is a registered Telegram bot bound to an API key. The token is the
// secret issued by Telegram; listings expose only the masked form.
type Bot struct {
	ID         int64     `json:"id"`
	APIKeyID   int64     `json:"api_key_id"`
	Token      string    `json:"-"`
	Username   string    `json:"bot_username"`
	WebhookURL string    `json:"webhook_url"`
	Active     bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// MaskedToken keeps the first 10 and last 5 characters of the token visible.
func (b *Bot) MaskedToken() string {
	if len(b.Token) <= 15 {
		return b.Token
	}
	return b.Token[:10] + "..." + b.Token[len(b.Token)-5:]
}
