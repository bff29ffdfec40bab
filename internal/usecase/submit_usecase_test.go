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

type memSubmitted struct {
	marks   map[string]bool
	markErr error
}

func submittedKey(userID uuid.UUID, url string) string {
	return userID.String() + "|" + url
}

func (s *memSubmitted) MarkSubmitted(_ context.Context, userID uuid.UUID, url string, _ time.Duration) error {
	if s.markErr != nil {
		return s.markErr
	}
	if s.marks == nil {
		s.marks = map[string]bool{}
	}
	s.marks[submittedKey(userID, url)] = true
	return nil
}

func (s *memSubmitted) WasSubmitted(_ context.Context, userID uuid.UUID, url string) (bool, error) {
	return s.marks[submittedKey(userID, url)], nil
}

func (s *memSubmitted) ClearSubmitted(_ context.Context, userID uuid.UUID, url string) error {
	delete(s.marks, submittedKey(userID, url))
	return nil
}

func TestSubmit_CreatesPendingRowAndEnqueues(t *testing.T) {
	repo := &memBookmarkRepo{}
	queue := &memQueue{}
	user := uuid.New()

	uc := NewBookmarkManager(repo, queue, &memSubmitted{})
	b, err := uc.Submit(context.Background(), user, SubmitInput{URL: "https://example.com/a"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if b.IngestStatus != entity.IngestPending {
		t.Fatalf("status: got %s, want pending", b.IngestStatus)
	}
	if b.UserID != user {
		t.Fatal("bookmark not scoped to submitter")
	}
	if b.Type != "link" {
		t.Fatalf("default type: got %q", b.Type)
	}
	if len(repo.rows) != 1 {
		t.Fatalf("rows created: %d", len(repo.rows))
	}
	if len(queue.ids) != 1 || queue.ids[0] != b.ID {
		t.Fatalf("queued ids: %v", queue.ids)
	}
}

func TestGet_ScopedToOwner(t *testing.T) {
	repo := &memBookmarkRepo{}
	queue := &memQueue{}
	owner := uuid.New()

	uc := NewBookmarkManager(repo, queue, &memSubmitted{})
	b, err := uc.Submit(context.Background(), owner, SubmitInput{URL: "https://example.com/a"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	got, err := uc.Get(context.Background(), owner, b.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != b.ID {
		t.Fatalf("id: got %s, want %s", got.ID, b.ID)
	}

	if _, err := uc.Get(context.Background(), uuid.New(), b.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("cross-owner read: got %v, want ErrNotFound", err)
	}
}

func TestSubmit_DuplicateURLRejected(t *testing.T) {
	repo := &memBookmarkRepo{}
	queue := &memQueue{}
	submitted := &memSubmitted{}
	user := uuid.New()
	uc := NewBookmarkManager(repo, queue, submitted)

	if _, err := uc.Submit(context.Background(), user, SubmitInput{URL: "https://example.com"}); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	_, err := uc.Submit(context.Background(), user, SubmitInput{URL: "https://example.com"})
	if !errors.Is(err, ErrURLRecentlySubmitted) {
		t.Fatalf("second Submit: got %v, want ErrURLRecentlySubmitted", err)
	}
	if len(repo.rows) != 1 {
		t.Fatalf("duplicate created a row: %d", len(repo.rows))
	}

	// A different owner submitting the same URL is not a duplicate.
	if _, err := uc.Submit(context.Background(), uuid.New(), SubmitInput{URL: "https://example.com"}); err != nil {
		t.Fatalf("other owner's Submit: %v", err)
	}
}

func TestSubmit_ForceBypassesDedup(t *testing.T) {
	repo := &memBookmarkRepo{}
	queue := &memQueue{}
	submitted := &memSubmitted{}
	user := uuid.New()
	uc := NewBookmarkManager(repo, queue, submitted)

	if _, err := uc.Submit(context.Background(), user, SubmitInput{URL: "https://example.com"}); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	if _, err := uc.Submit(context.Background(), user, SubmitInput{URL: "https://example.com", Force: true}); err != nil {
		t.Fatalf("forced Submit: %v", err)
	}
	if len(repo.rows) != 2 {
		t.Fatalf("rows after forced resubmit: %d", len(repo.rows))
	}
}

func TestSubmit_DedupMarkFailureIsNotFatal(t *testing.T) {
	repo := &memBookmarkRepo{}
	queue := &memQueue{}
	uc := NewBookmarkManager(repo, queue, &memSubmitted{markErr: errors.New("redis down")})

	if _, err := uc.Submit(context.Background(), uuid.New(), SubmitInput{URL: "https://example.com"}); err != nil {
		t.Fatalf("Submit with failing dedup mark: %v", err)
	}
	if len(queue.ids) != 1 {
		t.Fatal("bookmark not queued")
	}
}
