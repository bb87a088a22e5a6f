package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mad-satoru/madai/pkg/adapter"
	"github.com/mad-satoru/madai/pkg/model"
)

// handleTelegramHook receives Telegram updates. The token travels as a query
// parameter set at webhook registration time; it selects the bot and proves
// the caller knows the bot's secret.
func (s *Server) handleTelegramHook(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing bot token"})
		return
	}

	var update adapter.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, r, goerr.Wrap(model.ErrInvalidArgument, "invalid update payload"))
		return
	}

	if err := s.bots.HandleUpdate(r.Context(), token, &update); err != nil {
		if errors.Is(err, model.ErrUnauthorized) {
			respondJSON(w, http.StatusForbidden, map[string]string{"error": "unknown or inactive bot"})
			return
		}
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
