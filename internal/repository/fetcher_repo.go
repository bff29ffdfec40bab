package repository

import (
	"context"
	"errors"

	"github.com/user/bookmark-service/internal/entity"
)

var (
	// ErrFetchTimeout indicates the page did not finish loading within the
	// configured deadline.
	ErrFetchTimeout = errors.New("page load timed out")
	// ErrNavigationFailed indicates the browser could not navigate to the URL.
	ErrNavigationFailed = errors.New("navigation failed")
	// ErrContentRestricted indicates the page answered with an auth wall or
	// an error status.
	ErrContentRestricted = errors.New("content is restricted or unavailable")
)

// PageFetcher defines the contract for rendering a bookmark URL and
// extracting its metadata.
type PageFetcher interface {
	// Fetch renders url and extracts page metadata from it.
	Fetch(ctx context.Context, url string) (*entity.PageData, error)
}
