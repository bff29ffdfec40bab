package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/user/bookmark-service/internal/auth"
	"github.com/user/bookmark-service/internal/entity"
	"github.com/user/bookmark-service/internal/repository"
)

type stubSessionRepo struct {
	sessions map[string]*entity.Session
	lookups  int
}

func (s *stubSessionRepo) FindByToken(_ context.Context, token string) (*entity.Session, error) {
	s.lookups++
	if sess, ok := s.sessions[token]; ok {
		return sess, nil
	}
	return nil, repository.ErrSessionNotFound
}

func TestAuth_MissingTokenRejectedBeforeLookup(t *testing.T) {
	sessions := &stubSessionRepo{}
	handler := Auth(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler reached without a session")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ingest/history", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"error":"Unauthorized"`) {
		t.Fatalf("body: %s", w.Body.String())
	}
	if sessions.lookups != 0 {
		t.Fatal("store queried for a request with no token")
	}
}

func TestAuth_UnknownTokenRejected(t *testing.T) {
	sessions := &stubSessionRepo{}
	handler := Auth(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler reached with an unknown token")
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer nope")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", w.Code)
	}
}

func TestAuth_ExpiredSessionRejected(t *testing.T) {
	sessions := &stubSessionRepo{sessions: map[string]*entity.Session{
		"tok": {Token: "tok", UserID: uuid.New(), ExpiresAt: time.Now().Add(-time.Minute)},
	}}
	handler := Auth(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler reached with an expired session")
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"error":"Unauthorized"`) {
		t.Fatalf("body: %s", w.Body.String())
	}
}

func TestAuth_ValidTokenScopesRequest(t *testing.T) {
	userID := uuid.New()
	sessions := &stubSessionRepo{sessions: map[string]*entity.Session{
		"tok": {Token: "tok", UserID: userID, ExpiresAt: time.Now().Add(time.Hour)},
	}}

	var gotUser uuid.UUID
	handler := Auth(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = auth.UserIDFromContext(r.Context())
	}))

	// Header first, then cookie; both carry the same token format.
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer tok")
	handler.ServeHTTP(httptest.NewRecorder(), r)
	if gotUser != userID {
		t.Fatalf("user from header token: got %s, want %s", gotUser, userID)
	}

	gotUser = uuid.Nil
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "tok"})
	handler.ServeHTTP(httptest.NewRecorder(), r)
	if gotUser != userID {
		t.Fatalf("user from cookie token: got %s, want %s", gotUser, userID)
	}
}
