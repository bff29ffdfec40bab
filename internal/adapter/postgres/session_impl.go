package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/bookmark-service/internal/entity"
	"github.com/user/bookmark-service/internal/repository"
)

// SessionRepoImpl resolves sessions from the auth provider's table using
// PostgreSQL.
type SessionRepoImpl struct {
	db *pgxpool.Pool
}

// NewSessionRepo creates a new instance of SessionRepoImpl.
func NewSessionRepo(db *pgxpool.Pool) *SessionRepoImpl {
	return &SessionRepoImpl{db: db}
}

// FindByToken retrieves a live session. Expired rows are filtered out in
// SQL so callers never see them.
func (r *SessionRepoImpl) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	query := `
		SELECT token, user_id, expires_at
		FROM sessions
		WHERE token = $1 AND expires_at > NOW();
	`
	var s entity.Session
	err := r.db.QueryRow(ctx, query, token).Scan(&s.Token, &s.UserID, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}
