package middleware

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/AnshRaj112/mindfulspace-backend/internal/services"
)

// RequireSession rejects requests without a live session with 401 and puts
// the session's user id into the request context otherwise.
func RequireSession(sessions *services.SessionManager, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if c, err := r.Cookie(services.SessionCookieName); err == nil {
				token = c.Value
			}

			userID, err := sessions.Validate(r.Context(), token)
			if err != nil {
				if !errors.Is(err, services.ErrInvalidSession) {
					log.Error("session lookup failed",
						zap.Error(err),
						zap.String("request_id", RequestIDFromContext(r.Context())),
					)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"message":"Authentication required"}`))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the id stored by RequireSession.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
