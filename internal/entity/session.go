package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session mirrors the auth provider's `sessions` table. This service only
// reads sessions; creation and expiry are the provider's concern.
type Session struct {
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
