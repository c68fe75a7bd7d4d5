package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/logger"
)

type contextKey string

const userIDKey contextKey = "session_user_id"

// WithUserID returns a context carrying the authenticated user ID
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user ID set by Middleware
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// Middleware rejects requests without a valid bearer session with 401
func Middleware(resolver *Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			userID, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				status := http.StatusUnauthorized
				msg := ErrMsgAuthRequired
				if errors.Is(err, domain.ErrSessionExpired) {
					msg = ErrMsgSessionExpired
				} else if !errors.Is(err, domain.ErrUnauthorized) {
					logger.FromContext(r.Context()).Error(LogMsgSessionRejected, "error", err)
					status = http.StatusInternalServerError
					msg = http.StatusText(status)
				}
				writeError(w, status, msg)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get(HeaderAuthorization)
	if len(h) < len(BearerPrefix) || !strings.EqualFold(h[:len(BearerPrefix)], BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(h[len(BearerPrefix):])
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   msg,
	})
}
