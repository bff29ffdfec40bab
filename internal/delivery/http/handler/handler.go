package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/user/bookmark-service/internal/auth"
	"github.com/user/bookmark-service/internal/delivery/http/request"
	"github.com/user/bookmark-service/internal/delivery/http/response"
	"github.com/user/bookmark-service/internal/repository"
	"github.com/user/bookmark-service/internal/usecase"
)

type Handler struct {
	history   usecase.IngestHistory
	dashboard usecase.Dashboard
	bookmarks usecase.BookmarkManager
}

func NewHandler(history usecase.IngestHistory, dashboard usecase.Dashboard, bookmarks usecase.BookmarkManager) *Handler {
	return &Handler{
		history:   history,
		dashboard: dashboard,
		bookmarks: bookmarks,
	}
}

// HandleIngestHistory serves GET /api/ingest/history. Pagination and status
// parameters are sanitized by the use case, never rejected; the only error a
// well-formed authenticated request can see is a store failure.
func (h *Handler) HandleIngestHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	bookmarks, err := h.history.History(r.Context(), userID, q.Get("status"), q.Get("limit"), q.Get("offset"))
	if err != nil {
		slog.Error("Failed to load ingest history", "user_id", userID, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, response.NewHistoryResponse(bookmarks))
}

// HandleDashboard serves GET /api/dashboard.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	stats, err := h.dashboard.Stats(r.Context(), userID, r.URL.Query().Get("days"))
	if err != nil {
		slog.Error("Failed to load dashboard stats", "user_id", userID, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, stats)
}

// HandleSubmitBookmark serves POST /api/bookmarks.
func (h *Handler) HandleSubmitBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req request.SubmitBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := url.ParseRequestURI(req.URL); err != nil {
		h.writeJSONError(w, "Invalid URL format", http.StatusBadRequest)
		return
	}

	b, err := h.bookmarks.Submit(r.Context(), userID, usecase.SubmitInput{
		URL:          req.URL,
		Title:        req.Title,
		Type:         req.Type,
		SourceType:   req.SourceType,
		ClientSource: req.ClientSource,
		Platform:     req.Platform,
		Force:        req.Force,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrURLRecentlySubmitted) {
			h.writeJSONError(w, err.Error(), http.StatusConflict)
			return
		}
		slog.Error("Failed to submit bookmark", "user_id", userID, "url", req.URL, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusAccepted, response.SubmitBookmarkResponse{
		ID:           b.ID.String(),
		IngestStatus: string(b.IngestStatus),
		Message:      "Bookmark accepted for ingestion",
	})
}

// HandleGetBookmark serves GET /api/bookmarks/{id}.
func (h *Handler) HandleGetBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.writeJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.writeJSONError(w, "Invalid bookmark ID", http.StatusBadRequest)
		return
	}

	b, err := h.bookmarks.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.writeJSONError(w, "Bookmark not found", http.StatusNotFound)
			return
		}
		slog.Error("Failed to load bookmark", "user_id", userID, "id", id, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, response.NewBookmarkItem(b))
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
