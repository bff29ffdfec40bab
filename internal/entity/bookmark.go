package entity

import (
	"time"

	"github.com/google/uuid"
)

// IngestStatus is the lifecycle state of a bookmark's background ingestion.
type IngestStatus string

const (
	IngestPending    IngestStatus = "pending"
	IngestProcessing IngestStatus = "processing"
	IngestCompleted  IngestStatus = "completed"
	IngestFailed     IngestStatus = "failed"
)

// IngestStatuses is the closed set of valid lifecycle states.
var IngestStatuses = []IngestStatus{IngestPending, IngestProcessing, IngestCompleted, IngestFailed}

// IsValid reports whether s is a member of the closed status set.
func (s IngestStatus) IsValid() bool {
	switch s {
	case IngestPending, IngestProcessing, IngestCompleted, IngestFailed:
		return true
	}
	return false
}

// IsTerminal reports whether s ends an ingestion attempt. A terminal row is
// never touched again until a new attempt is started.
func (s IngestStatus) IsTerminal() bool {
	return s == IngestCompleted || s == IngestFailed
}

// StaleIngestError is written by the staleness sweep when a non-terminal
// attempt is presumed abandoned.
const StaleIngestError = "Ingest timed out"

// StaleTimeout is the window after which a pending/processing attempt is
// presumed abandoned by its worker.
const StaleTimeout = 5 * time.Minute

// Bookmark mirrors the `bookmarks` PostgreSQL table schema. The ingest
// tracker owns IngestStatus and IngestError; the descriptive fields are
// opaque payload written at submit time and by the worker.
type Bookmark struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Title        string
	Type         string
	SourceType   string
	ClientSource string
	URL          string
	Platform     string
	IngestStatus IngestStatus
	IngestError  string
	Embedded     bool
	FolderID     *uuid.UUID
	CreatedAt    time.Time
}
