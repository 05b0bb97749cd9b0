package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"stockmentions/internal"
)

// NewTestCatalog builds a small catalog covering the symbols the tests use
func NewTestCatalog() *internal.Catalog {
	return internal.NewCatalog(
		[]string{"GME", "AAPL", "TSLA", "AMC", "NVDA", "F", "A", "AND"},
		[]string{"AND", "I", "THE", "TO", "CALLS", "A"},
		1, 5,
	)
}

// NewTestResult builds a SessionResult created at the given time
func NewTestResult(createdAt time.Time, feed string, counts []internal.SymbolCount) *internal.SessionResult {
	return &internal.SessionResult{
		SessionID: internal.NewSessionID(createdAt),
		CreatedAt: createdAt.UTC(),
		Feed:      feed,
		Counts:    counts,
	}
}

// WriteSessionFixture writes a valid session result file under a local
// storage root and returns its session id
func WriteSessionFixture(t *testing.T, root string, result *internal.SessionResult) string {
	t.Helper()
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Failed to marshal session result: %v", err)
	}
	dir := filepath.Join(root, "results", filepath.FromSlash(result.SessionID))
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create session directory: %v", err)
	}
	path := filepath.Join(dir, internal.ResultFileJSON)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write session fixture: %v", err)
	}
	return result.SessionID
}

// WriteRawSessionFile writes arbitrary bytes as a session's result file,
// for malformed-file tests
func WriteRawSessionFile(t *testing.T, root, sessionID string, data []byte) {
	t.Helper()
	dir := filepath.Join(root, "results", filepath.FromSlash(sessionID))
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create session directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, internal.ResultFileJSON), data, 0644); err != nil {
		t.Fatalf("Failed to write session file: %v", err)
	}
}
