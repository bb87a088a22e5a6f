package server

import (
	"context"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mad-satoru/madai/pkg/model"
	"github.com/mad-satoru/madai/pkg/utils/logging"
)

type principalKey struct{}

// principalFrom retrieves the authenticated principal, nil when the request
// came in without a key.
func principalFrom(ctx context.Context) *model.Principal {
	p, _ := ctx.Value(principalKey{}).(*model.Principal)
	return p
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logging.From(r.Context()).Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).String(),
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
	})
}

// optionalAuth validates X-Api-Key when present. A present but invalid key
// is rejected; an absent key passes through unauthenticated.
func (s *Server) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-Api-Key")
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		principal, err := s.apiKeys.Validate(r.Context(), key)
		if err != nil {
			respondError(w, r, err)
			return
		}
		s.apiKeys.RecordUsage(r.Context(), principal)

		ctx := context.WithValue(r.Context(), principalKey{}, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAuth rejects requests without a valid X-Api-Key.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-Api-Key")
		if key == "" {
			respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "X-Api-Key header is required"})
			return
		}

		principal, err := s.apiKeys.Validate(r.Context(), key)
		if err != nil {
			respondError(w, r, err)
			return
		}
		s.apiKeys.RecordUsage(r.Context(), principal)

		ctx := context.WithValue(r.Context(), principalKey{}, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
