package internal

import "time"

// Shared helpers for tests in this package.

// newTestCatalog builds a small catalog covering the symbols the tests use.
// AND and A are deliberately both valid and excluded: exclusion must win.
func newTestCatalog() *Catalog {
	return NewCatalog(
		[]string{"GME", "AAPL", "TSLA", "AMC", "NVDA", "F", "A", "AND"},
		[]string{"AND", "I", "THE", "TO", "CALLS", "A"},
		1, 5,
	)
}

// newTestResult builds a SessionResult created at the given time
func newTestResult(createdAt time.Time, feed string, counts []SymbolCount) *SessionResult {
	return &SessionResult{
		SessionID: NewSessionID(createdAt),
		CreatedAt: createdAt.UTC(),
		Feed:      feed,
		Counts:    counts,
	}
}
