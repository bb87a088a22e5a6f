package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

const telegramBaseURL = "https://api.telegram.org"

// BotProfile is the identity of a bot as reported by Telegram.
type BotProfile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Update is an incoming Telegram update. Only the message payload is used;
// updates of other kinds arrive with Message nil and are ignored upstream.
type Update struct {
	UpdateID int64            `json:"update_id"`
	Message  *IncomingMessage `json:"message,omitempty"`
}

// IncomingMessage is the message payload of an update.
type IncomingMessage struct {
	MessageID int64   `json:"message_id"`
	Text      string  `json:"text"`
	Chat      ChatRef `json:"chat"`
}

// ChatRef identifies the Telegram chat a message belongs to.
type ChatRef struct {
	ID int64 `json:"id"`
}

// Telegram is the Bot API surface the assistant needs.
type Telegram interface {
	// GetMe verifies a bot token and returns the bot's identity.
	GetMe(ctx context.Context, token string) (*BotProfile, error)

	// SetWebhook points Telegram's update delivery at the given URL.
	SetWebhook(ctx context.Context, token, webhookURL string) error

	// SendMessage posts a Markdown-formatted message to a chat.
	SendMessage(ctx context.Context, token string, chatID int64, text string) error
}

type telegramClient struct {
	baseURL    string
	httpClient *http.Client
}

// TelegramOption is a functional option for the Telegram client
type TelegramOption func(*telegramClient)

// WithTelegramBaseURL overrides the Bot API endpoint. Test use only.
func WithTelegramBaseURL(baseURL string) TelegramOption {
	return func(c *telegramClient) {
		c.baseURL = baseURL
	}
}

// NewTelegram creates a Telegram Bot API client
func NewTelegram(opts ...TelegramOption) Telegram {
	c := &telegramClient{
		baseURL: telegramBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// apiResponse is the envelope of every Bot API reply.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

func (c *telegramClient) GetMe(ctx context.Context, token string) (*BotProfile, error) {
	result, err := c.call(ctx, token, "getMe", nil)
	if err != nil {
		return nil, err
	}

	var profile BotProfile
	if err := json.Unmarshal(result, &profile); err != nil {
		return nil, goerr.Wrap(err, "failed to parse getMe result")
	}
	return &profile, nil
}

func (c *telegramClient) SetWebhook(ctx context.Context, token, webhookURL string) error {
	_, err := c.call(ctx, token, "setWebhook", map[string]any{
		"url": webhookURL,
	})
	return err
}

func (c *telegramClient) SendMessage(ctx context.Context, token string, chatID int64, text string) error {
	_, err := c.call(ctx, token, "sendMessage", map[string]any{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "Markdown",
	})
	return err
}

// call posts one Bot API method. The token never goes into error values;
// only the method name does.
func (c *telegramClient) call(ctx context.Context, token, method string, params map[string]any) (json.RawMessage, error) {
	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, token, method)

	var body io.Reader
	if params != nil {
		encoded, err := json.Marshal(params)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to encode request", goerr.V("method", method))
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("method", method))
	}
	if params != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to send request", goerr.V("method", method))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response", goerr.V("method", method))
	}

	var envelope apiResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, goerr.Wrap(err, "failed to parse response",
			goerr.V("method", method),
			goerr.V("status", resp.StatusCode),
		)
	}
	if resp.StatusCode != http.StatusOK || !envelope.OK {
		return nil, goerr.New("telegram api error",
			goerr.V("method", method),
			goerr.V("status", resp.StatusCode),
			goerr.V("description", envelope.Description),
		)
	}

	return envelope.Result, nil
}
