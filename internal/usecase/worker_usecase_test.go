package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/user/bookmark-service/internal/entity"
	"github.com/user/bookmark-service/internal/repository"
)

type memQueue struct {
	ids     []uuid.UUID
	popErr  error
	pushErr error
}

func (q *memQueue) Push(_ context.Context, id uuid.UUID) error {
	if q.pushErr != nil {
		return q.pushErr
	}
	q.ids = append(q.ids, id)
	return nil
}

func (q *memQueue) Pop(_ context.Context) (uuid.UUID, error) {
	if q.popErr != nil {
		return uuid.Nil, q.popErr
	}
	if len(q.ids) == 0 {
		return uuid.Nil, repository.ErrQueueEmpty
	}
	id := q.ids[0]
	q.ids = q.ids[1:]
	return id, nil
}

func (q *memQueue) Size(_ context.Context) (int64, error) {
	return int64(len(q.ids)), nil
}

type stubFetcher struct {
	page *entity.PageData
	err  error
	urls []string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (*entity.PageData, error) {
	f.urls = append(f.urls, url)
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func TestProcessNext_EmptyQueueIsNotAnError(t *testing.T) {
	repo := &memBookmarkRepo{}
	worker := NewIngestWorker(&memQueue{}, repo, &stubFetcher{})

	if err := worker.ProcessNext(context.Background()); err != nil {
		t.Fatalf("ProcessNext on empty queue: %v", err)
	}
}

func TestProcessNext_SuccessfulIngest(t *testing.T) {
	user := uuid.New()
	b := newBookmark(user, entity.IngestPending, time.Minute)
	repo := &memBookmarkRepo{rows: []*entity.Bookmark{b}}
	queue := &memQueue{ids: []uuid.UUID{b.ID}}
	fetcher := &stubFetcher{page: &entity.PageData{
		URL:      b.URL,
		Title:    "Example Domain",
		Platform: "Example",
	}}

	worker := NewIngestWorker(queue, repo, fetcher)
	if err := worker.ProcessNext(context.Background()); err != nil {
		t.Fatalf("ProcessNext: %v", err)
	}

	if len(fetcher.urls) != 1 || fetcher.urls[0] != b.URL {
		t.Fatalf("fetched urls: %v", fetcher.urls)
	}
	if b.IngestStatus != entity.IngestCompleted {
		t.Fatalf("status: got %s, want completed", b.IngestStatus)
	}
	if b.Title != "Example Domain" || b.Platform != "Example" {
		t.Fatalf("metadata not recorded: %q/%q", b.Title, b.Platform)
	}
}

func TestProcessNext_FetchFailureRecordsReason(t *testing.T) {
	user := uuid.New()
	b := newBookmark(user, entity.IngestPending, time.Minute)
	repo := &memBookmarkRepo{rows: []*entity.Bookmark{b}}
	queue := &memQueue{ids: []uuid.UUID{b.ID}}
	fetcher := &stubFetcher{err: repository.ErrNavigationFailed}

	worker := NewIngestWorker(queue, repo, fetcher)
	if err := worker.ProcessNext(context.Background()); err != nil {
		t.Fatalf("ProcessNext: %v", err)
	}

	if b.IngestStatus != entity.IngestFailed {
		t.Fatalf("status: got %s, want failed", b.IngestStatus)
	}
	if b.IngestError == "" {
		t.Fatal("failure reason not recorded")
	}
}

func TestProcessNext_SweptRowIsNotResurrected(t *testing.T) {
	user := uuid.New()
	b := newBookmark(user, entity.IngestFailed, 10*time.Minute)
	b.IngestError = entity.StaleIngestError
	repo := &memBookmarkRepo{rows: []*entity.Bookmark{b}}
	queue := &memQueue{ids: []uuid.UUID{b.ID}}
	fetcher := &stubFetcher{page: &entity.PageData{Title: "late"}}

	worker := NewIngestWorker(queue, repo, fetcher)
	if err := worker.ProcessNext(context.Background()); err != nil {
		t.Fatalf("ProcessNext: %v", err)
	}

	if len(fetcher.urls) != 0 {
		t.Fatal("fetched a bookmark that was no longer pending")
	}
	if b.IngestStatus != entity.IngestFailed || b.IngestError != entity.StaleIngestError {
		t.Fatalf("swept row mutated: %s/%q", b.IngestStatus, b.IngestError)
	}
}

func TestProcessNext_QueueErrorPropagates(t *testing.T) {
	queue := &memQueue{popErr: errors.New("redis down")}
	worker := NewIngestWorker(queue, &memBookmarkRepo{}, &stubFetcher{})

	if err := worker.ProcessNext(context.Background()); err == nil {
		t.Fatal("expected error from queue failure")
	}
}

func TestPickTitle(t *testing.T) {
	if got := pickTitle("extracted", "submitted"); got != "extracted" {
		t.Fatalf("got %q", got)
	}
	if got := pickTitle("", "submitted"); got != "submitted" {
		t.Fatalf("got %q", got)
	}
}
