package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/bookmark-service/internal/entity"
	"github.com/user/bookmark-service/internal/repository"
)

const bookmarkColumns = `id, user_id, title, type, source_type, client_source, url, platform,
		ingest_status, COALESCE(ingest_error, ''), embedded, folder_id, created_at`

// BookmarkRepoImpl provides a concrete implementation for the
// BookmarkRepository interface using PostgreSQL.
type BookmarkRepoImpl struct {
	db *pgxpool.Pool
}

// NewBookmarkRepo creates a new instance of BookmarkRepoImpl.
func NewBookmarkRepo(db *pgxpool.Pool) *BookmarkRepoImpl {
	return &BookmarkRepoImpl{db: db}
}

// Create inserts a new bookmark row.
func (r *BookmarkRepoImpl) Create(ctx context.Context, b *entity.Bookmark) error {
	query := `
		INSERT INTO bookmarks (id, user_id, title, type, source_type, client_source, url, platform,
			ingest_status, ingest_error, embedded, folder_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11, $12, $13);
	`
	_, err := r.db.Exec(ctx, query,
		b.ID,
		b.UserID,
		b.Title,
		b.Type,
		b.SourceType,
		b.ClientSource,
		b.URL,
		b.Platform,
		b.IngestStatus,
		b.IngestError,
		b.Embedded,
		b.FolderID,
		b.CreatedAt,
	)
	return err
}

// FindByID retrieves a single bookmark scoped to its owner.
func (r *BookmarkRepoImpl) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Bookmark, error) {
	query := `SELECT ` + bookmarkColumns + ` FROM bookmarks WHERE user_id = $1 AND id = $2;`

	b, err := scanBookmark(r.db.QueryRow(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// ListHistory returns the owner's rows newest-first. The owner condition is
// always present; the status condition is appended only when the filter
// carries one.
func (r *BookmarkRepoImpl) ListHistory(ctx context.Context, userID uuid.UUID, filter repository.HistoryFilter) ([]*entity.Bookmark, error) {
	query := `SELECT ` + bookmarkColumns + ` FROM bookmarks WHERE user_id = $1`
	args := []any{userID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(` AND ingest_status = $%d`, len(args))
	}

	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookmarks []*entity.Bookmark
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

// FailStale forces the owner's abandoned pending/processing rows to failed.
// Terminal rows, young rows and other owners' rows are untouched by the
// WHERE clause, which makes repeated sweeps idempotent.
func (r *BookmarkRepoImpl) FailStale(ctx context.Context, userID uuid.UUID, threshold time.Time) error {
	query := `
		UPDATE bookmarks
		SET ingest_status = 'failed', ingest_error = $3
		WHERE user_id = $1
		  AND ingest_status IN ('pending', 'processing')
		  AND created_at < $2;
	`
	_, err := r.db.Exec(ctx, query, userID, threshold, entity.StaleIngestError)
	return err
}

// MarkProcessing moves a pending row to processing. The status guard in the
// WHERE clause keeps the transition monotonic: a row the sweep already
// failed is not resurrected, and two workers cannot both take it.
func (r *BookmarkRepoImpl) MarkProcessing(ctx context.Context, id uuid.UUID) (*entity.Bookmark, error) {
	query := `
		UPDATE bookmarks
		SET ingest_status = 'processing', ingest_error = NULL
		WHERE id = $1 AND ingest_status = 'pending'
		RETURNING ` + bookmarkColumns + `;
	`
	b, err := scanBookmark(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// Complete moves a processing row to completed, recording the extracted
// title and platform when present.
func (r *BookmarkRepoImpl) Complete(ctx context.Context, id uuid.UUID, title, platform string) error {
	query := `
		UPDATE bookmarks
		SET ingest_status = 'completed',
			title = CASE WHEN $2 <> '' THEN $2 ELSE title END,
			platform = CASE WHEN $3 <> '' THEN $3 ELSE platform END
		WHERE id = $1 AND ingest_status = 'processing';
	`
	tag, err := r.db.Exec(ctx, query, id, title, platform)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Fail moves a processing row to failed with the worker's reason.
func (r *BookmarkRepoImpl) Fail(ctx context.Context, id uuid.UUID, reason string) error {
	query := `
		UPDATE bookmarks
		SET ingest_status = 'failed', ingest_error = $2
		WHERE id = $1 AND ingest_status = 'processing';
	`
	tag, err := r.db.Exec(ctx, query, id, reason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanBookmark(row pgx.Row) (*entity.Bookmark, error) {
	var b entity.Bookmark
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.Title,
		&b.Type,
		&b.SourceType,
		&b.ClientSource,
		&b.URL,
		&b.Platform,
		&b.IngestStatus,
		&b.IngestError,
		&b.Embedded,
		&b.FolderID,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
