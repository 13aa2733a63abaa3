package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/velmark/crm-backend/internal/entity"
	"github.com/velmark/crm-backend/internal/usecase"
)

type contextKey string

const actorKey contextKey = "actor"

// Actor resolves the acting user from the X-User-ID header and stores it in
// the request context. Real authentication (sessions, tokens) belongs to
// the hosting layer; this is only the seam it plugs into. Every route
// behind this middleware requires a known user.
func Actor(users usecase.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get("X-User-ID")
			if userID == "" {
				unauthorized(w, "missing X-User-ID header")
				return
			}

			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, entity.ErrUserNotFound) {
					unauthorized(w, "unknown user")
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"error": "failed to resolve user"})
				return
			}

			ctx := context.WithValue(r.Context(), actorKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFrom returns the user placed in the context by Actor, or nil.
func ActorFrom(ctx context.Context) *entity.User {
	user, _ := ctx.Value(actorKey).(*entity.User)
	return user
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
