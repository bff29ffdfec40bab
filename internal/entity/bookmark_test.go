package entity

import (
	"testing"
	"time"
)

func TestIngestStatusIsValid(t *testing.T) {
	for _, s := range IngestStatuses {
		if !s.IsValid() {
			t.Fatalf("%s should be valid", s)
		}
	}
	for _, s := range []IngestStatus{"", "bogus", "PENDING", "done"} {
		if s.IsValid() {
			t.Fatalf("%q should be invalid", s)
		}
	}
}

func TestIngestStatusIsTerminal(t *testing.T) {
	tests := map[IngestStatus]bool{
		IngestPending:    false,
		IngestProcessing: false,
		IngestCompleted:  true,
		IngestFailed:     true,
	}
	for s, want := range tests {
		if got := s.IsTerminal(); got != want {
			t.Fatalf("%s terminal: got %v, want %v", s, got, want)
		}
	}
}

func TestStaleTimeoutWindow(t *testing.T) {
	if StaleTimeout != 5*time.Minute {
		t.Fatalf("stale window: got %v", StaleTimeout)
	}
	if StaleIngestError != "Ingest timed out" {
		t.Fatalf("sentinel message: got %q", StaleIngestError)
	}
}
