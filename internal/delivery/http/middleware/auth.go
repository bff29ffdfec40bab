package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/user/bookmark-service/internal/auth"
	"github.com/user/bookmark-service/internal/repository"
)

const sessionCookieName = "session_token"

// Auth resolves the caller's identity from a session token and stores it in
// the request context. Requests without a valid session are rejected with
// 401 before any handler (and therefore any owner-scoped query) runs.
func Auth(sessions repository.SessionRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				writeUnauthorized(w)
				return
			}

			session, err := sessions.FindByToken(r.Context(), token)
			if err != nil {
				if !errors.Is(err, repository.ErrSessionNotFound) {
					slog.Error("Failed to resolve session", "error", err)
				}
				writeUnauthorized(w)
				return
			}
			// The store filters expired rows, but a session can lapse between
			// lookup and use; re-check against the wall clock.
			if session.Expired(time.Now()) {
				writeUnauthorized(w)
				return
			}

			ctx := auth.ContextWithUserID(r.Context(), session.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionToken extracts the token from the Authorization header, falling
// back to the session cookie set by the web client.
func sessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return token
		}
	}
	if c, err := r.Cookie(sessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}
