package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mad-satoru/madai/pkg/model"
	"github.com/mad-satoru/madai/pkg/usecase/chat"
)

// chatRequest is the POST /api/chat body. ChatID arrives as a number from
// the Telegram webhook collaborator and as a string from browser clients.
type chatRequest struct {
	Message string          `json:"message"`
	ChatID  json.RawMessage `json:"chat_id"`
	Cleanup bool            `json:"cleanup"`
	Days    *int            `json:"days"`
}

func (req *chatRequest) chatID() string {
	if len(req.ChatID) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(req.ChatID, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(req.ChatID, &n); err == nil {
		return n.String()
	}
	return ""
}

func (s *Server) handleChatPost(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, goerr.Wrap(model.ErrInvalidArgument, "invalid request body"))
		return
	}

	if req.Cleanup {
		// The default applies only when the field is absent. An explicit
		// zero means "older than now", which deletes everything.
		days := 1
		if req.Days != nil {
			days = *req.Days
		}
		deleted, err := s.chat.Prune(r.Context(), time.Duration(days)*24*time.Hour)
		if err != nil {
			respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"success":          true,
			"deleted_messages": deleted,
			"message":          fmt.Sprintf("Удалено %d сообщений старше %d дн.", deleted, days),
		})
		return
	}

	out, err := s.chat.Resolve(r.Context(), chat.ResolveInput{
		Query:  req.Message,
		ChatID: req.chatID(),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"user_message": out.UserMessage,
		"ai_response":  out.AIMessage,
	})
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, r, goerr.Wrap(model.ErrInvalidArgument, "invalid limit"))
			return
		}
		limit = parsed
	}

	messages, err := s.chat.History(r.Context(), limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, messages)
}
