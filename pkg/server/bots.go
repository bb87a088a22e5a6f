package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mad-satoru/madai/pkg/model"
)

// botView is the wire shape of a bot. The model hides the token from JSON
// entirely; listings re-expose it here in masked form only.
type botView struct {
	ID            int64     `json:"id"`
	TelegramToken string    `json:"telegram_token"`
	Username      string    `json:"bot_username"`
	WebhookURL    string    `json:"webhook_url"`
	Active        bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

func viewOf(b *model.Bot) *botView {
	return &botView{
		ID:            b.ID,
		TelegramToken: b.MaskedToken(),
		Username:      b.Username,
		WebhookURL:    b.WebhookURL,
		Active:        b.Active,
		CreatedAt:     b.CreatedAt,
	}
}

func (s *Server) handleBotsList(w http.ResponseWriter, r *http.Request) {
	bots, err := s.bots.List(r.Context(), principalFrom(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}

	views := make([]*botView, 0, len(bots))
	for _, b := range bots {
		views = append(views, viewOf(b))
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleBotsRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TelegramToken string `json:"telegram_token"`
		WebhookURL    string `json:"webhook_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, goerr.Wrap(model.ErrInvalidArgument, "invalid request body"))
		return
	}

	registered, err := s.bots.Register(r.Context(), principalFrom(r.Context()), req.TelegramToken, req.WebhookURL)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, viewOf(registered))
}

func (s *Server) handleBotsToggle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BotID int64 `json:"bot_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BotID == 0 {
		respondError(w, r, goerr.Wrap(model.ErrInvalidArgument, "missing or invalid bot_id"))
		return
	}

	active, err := s.bots.Toggle(r.Context(), principalFrom(r.Context()), req.BotID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "bot_id": req.BotID, "is_active": active})
}
