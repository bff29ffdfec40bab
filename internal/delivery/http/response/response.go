package response

import (
	"time"

	"github.com/user/bookmark-service/internal/entity"
)

// BookmarkItem is the DTO for one bookmark row. Only display columns are
// exposed; internal-only fields stay server-side. IngestError serializes as
// null for rows that have not failed.
type BookmarkItem struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Type         string    `json:"type"`
	SourceType   string    `json:"sourceType"`
	ClientSource string    `json:"clientSource"`
	IngestStatus string    `json:"ingestStatus"`
	IngestError  *string   `json:"ingestError"`
	URL          string    `json:"url"`
	Platform     string    `json:"platform"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewBookmarkItem maps one entity to the wire shape.
func NewBookmarkItem(b *entity.Bookmark) BookmarkItem {
	var ingestError *string
	if b.IngestError != "" {
		ingestError = &b.IngestError
	}
	return BookmarkItem{
		ID:           b.ID.String(),
		Title:        b.Title,
		Type:         b.Type,
		SourceType:   b.SourceType,
		ClientSource: b.ClientSource,
		IngestStatus: string(b.IngestStatus),
		IngestError:  ingestError,
		URL:          b.URL,
		Platform:     b.Platform,
		CreatedAt:    b.CreatedAt,
	}
}

// HistoryResponse wraps the page of history items.
type HistoryResponse struct {
	Items []BookmarkItem `json:"items"`
}

// NewHistoryResponse maps entities to the wire shape. Items is never nil so
// an empty page serializes as [].
func NewHistoryResponse(bookmarks []*entity.Bookmark) HistoryResponse {
	items := make([]BookmarkItem, 0, len(bookmarks))
	for _, b := range bookmarks {
		items = append(items, NewBookmarkItem(b))
	}
	return HistoryResponse{Items: items}
}

// SubmitBookmarkResponse acknowledges a submission accepted into the
// ingestion pipeline.
type SubmitBookmarkResponse struct {
	ID           string `json:"id"`
	IngestStatus string `json:"ingestStatus"`
	Message      string `json:"message"`
}
