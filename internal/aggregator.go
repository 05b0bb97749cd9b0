package internal

import (
	"sort"
	"time"
)

// Run accumulates extractor output for one crawl. It is pure accumulation
// state: no network or storage calls happen here, and a single goroutine
// owns it for its lifetime.
type Run struct {
	feed      string
	catalog   *Catalog
	createdAt time.Time
	counts    map[string]int
	order     []string // first-insertion order, the tie-break for Finalize
}

// NewRun starts a new crawl run for the named feed
func NewRun(feed string, catalog *Catalog) *Run {
	return &Run{
		feed:      feed,
		catalog:   catalog,
		createdAt: time.Now().UTC(),
		counts:    make(map[string]int),
	}
}

// NewRunAt starts a run with an explicit creation time
func NewRunAt(feed string, catalog *Catalog, createdAt time.Time) *Run {
	r := NewRun(feed, catalog)
	r.createdAt = createdAt.UTC()
	return r
}

// SessionID returns the run's creation-time-derived session id
func (r *Run) SessionID() string {
	return NewSessionID(r.createdAt)
}

// CreatedAt returns the run's creation time
func (r *Run) CreatedAt() time.Time {
	return r.createdAt
}

// RecordText extracts mentions from one text unit and counts them.
// Repeats count separately: ten occurrences in one comment are ten
// mentions.
func (r *Run) RecordText(text string) int {
	symbols := ExtractSymbols(text, r.catalog)
	for _, symbol := range symbols {
		if _, seen := r.counts[symbol]; !seen {
			r.order = append(r.order, symbol)
		}
		r.counts[symbol]++
	}
	return len(symbols)
}

// TotalMentions returns the running mention total
func (r *Run) TotalMentions() int {
	total := 0
	for _, n := range r.counts {
		total += n
	}
	return total
}

// UniqueSymbols returns the number of distinct symbols seen so far
func (r *Run) UniqueSymbols() int {
	return len(r.counts)
}

// Finalize produces the immutable SessionResult: counts sorted descending
// by mentions, ties kept in first-insertion order.
func (r *Run) Finalize() *SessionResult {
	counts := make([]SymbolCount, 0, len(r.order))
	for _, symbol := range r.order {
		counts = append(counts, SymbolCount{Symbol: symbol, Mentions: r.counts[symbol]})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Mentions > counts[j].Mentions
	})

	return &SessionResult{
		SessionID: r.SessionID(),
		CreatedAt: r.createdAt,
		Feed:      r.feed,
		Counts:    counts,
	}
}
