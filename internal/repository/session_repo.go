package repository

import (
	"context"
	"errors"

	"github.com/user/bookmark-service/internal/entity"
)

// ErrSessionNotFound is returned when no session exists for a token, or the
// session has expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository resolves caller identity from a bearer token. The
// sessions table belongs to the external auth provider; this service only
// reads it.
type SessionRepository interface {
	// FindByToken retrieves a live session. Expired sessions are treated as
	// absent and return ErrSessionNotFound.
	FindByToken(ctx context.Context, token string) (*entity.Session, error)
}
