// Package server exposes the assistant over HTTP: the chat API, credential
// and bot administration, and the Telegram webhook intake.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mad-satoru/madai/pkg/usecase/apikey"
	"github.com/mad-satoru/madai/pkg/usecase/bot"
	"github.com/mad-satoru/madai/pkg/usecase/chat"
)

// Server holds the usecases behind the HTTP surface
type Server struct {
	chat    *chat.UseCase
	apiKeys *apikey.UseCase
	bots    *bot.UseCase
}

// New creates a new Server instance
func New(chatUC *chat.UseCase, keyUC *apikey.UseCase, botUC *bot.UseCase) *Server {
	return &Server{
		chat:    chatUC,
		apiKeys: keyUC,
		bots:    botUC,
	}
}

// Handler builds the route tree with all middleware attached.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger)

	// The original frontends are served from arbitrary origins, so CORS
	// stays permissive.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Api-Key"},
		MaxAge:         300,
	}))

	router.Get("/health", s.handleHealth)

	router.Route("/api", func(r chi.Router) {
		r.Route("/chat", func(r chi.Router) {
			r.Use(s.optionalAuth)
			r.Post("/", s.handleChatPost)
			r.Get("/", s.handleChatHistory)
		})

		r.Route("/keys", func(r chi.Router) {
			r.Get("/", s.handleKeysList)
			r.Post("/", s.handleKeysIssue)
			r.Delete("/", s.handleKeysRevoke)
		})

		r.Route("/bots", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleBotsList)
			r.Post("/", s.handleBotsRegister)
			r.Put("/", s.handleBotsToggle)
		})
	})

	router.Post("/hooks/telegram", s.handleTelegramHook)

	return router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
