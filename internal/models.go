package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Session id and timestamp formats. The session id is derived from the
// crawl's creation time; because every field is zero padded, descending
// lexicographic order over ids equals descending chronological order. Any
// future id scheme must keep that property or re-sort by parsed time.
const (
	sessionIDLayout = "2006-01-02/150405"
	compactTSLayout = "20060102_150405"
	ResultFileJSON  = "mentions.json"
	ResultFileCSV   = "mentions.csv"
	SessionLogFile  = "crawler.log"
	AreaResults     = "results/"
	AreaAnalysis    = "analysis/"
)

// NewSessionID derives the canonical session id, e.g. "2025-07-07/210032/"
func NewSessionID(t time.Time) string {
	return t.UTC().Format(sessionIDLayout) + "/"
}

// CompactTimestamp formats t in the session result's timestamp form,
// e.g. "20250707_210032"
func CompactTimestamp(t time.Time) string {
	return t.UTC().Format(compactTSLayout)
}

// ParseSessionID parses a session id back into its creation time
func ParseSessionID(id string) (time.Time, error) {
	trimmed := id
	if n := len(trimmed); n > 0 && trimmed[n-1] == '/' {
		trimmed = trimmed[:n-1]
	}
	t, err := time.Parse(sessionIDLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid session id %q: %w", id, err)
	}
	return t.UTC(), nil
}

// SymbolCount is one symbol's mention count within a session
type SymbolCount struct {
	Symbol   string
	Mentions int
}

// SessionResult is the immutable record of one completed crawl run.
// Counts are sorted descending by mention count, ties in first-insertion
// order.
type SessionResult struct {
	SessionID string
	CreatedAt time.Time
	Feed      string
	Counts    []SymbolCount
}

// TotalMentions returns the sum over all counts
func (r *SessionResult) TotalMentions() int {
	total := 0
	for _, c := range r.Counts {
		total += c.Mentions
	}
	return total
}

// UniqueSymbols returns the number of distinct symbols
func (r *SessionResult) UniqueSymbols() int {
	return len(r.Counts)
}

// Validate checks the record's structural invariants
func (r *SessionResult) Validate() error {
	if r.SessionID == "" {
		return fmt.Errorf("missing session id")
	}
	seen := make(map[string]struct{}, len(r.Counts))
	for _, c := range r.Counts {
		if c.Symbol == "" {
			return fmt.Errorf("empty symbol")
		}
		if c.Mentions < 0 {
			return fmt.Errorf("negative mention count for %s", c.Symbol)
		}
		if _, dup := seen[c.Symbol]; dup {
			return fmt.Errorf("duplicate symbol %s", c.Symbol)
		}
		seen[c.Symbol] = struct{}{}
	}
	return nil
}

// sessionResultWire is the session result file layout. "results" is an
// object whose key order carries the descending-count sort, so it is
// marshalled and unmarshalled by hand.
type sessionResultWire struct {
	Timestamp     string          `json:"timestamp"`
	CrawlDate     string          `json:"crawl_date"`
	TotalSymbols  int             `json:"total_symbols_found"`
	TotalMentions int             `json:"total_mentions"`
	Subreddit     string          `json:"subreddit"`
	Results       json.RawMessage `json:"results"`
}

// MarshalJSON writes the session result file format
func (r *SessionResult) MarshalJSON() ([]byte, error) {
	var results bytes.Buffer
	results.WriteByte('{')
	for i, c := range r.Counts {
		if i > 0 {
			results.WriteByte(',')
		}
		key, err := json.Marshal(c.Symbol)
		if err != nil {
			return nil, err
		}
		results.Write(key)
		fmt.Fprintf(&results, ":%d", c.Mentions)
	}
	results.WriteByte('}')

	return json.MarshalIndent(sessionResultWire{
		Timestamp:     CompactTimestamp(r.CreatedAt),
		CrawlDate:     r.CreatedAt.UTC().Format(time.RFC3339),
		TotalSymbols:  r.UniqueSymbols(),
		TotalMentions: r.TotalMentions(),
		Subreddit:     r.Feed,
		Results:       results.Bytes(),
	}, "", "  ")
}

// UnmarshalJSON reads the session result file format, preserving the order
// of the results object
func (r *SessionResult) UnmarshalJSON(data []byte) error {
	var wire sessionResultWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	createdAt, err := time.Parse(time.RFC3339, wire.CrawlDate)
	if err != nil {
		// Older files may only carry the compact timestamp
		createdAt, err = time.Parse(compactTSLayout, wire.Timestamp)
		if err != nil {
			return fmt.Errorf("no parseable crawl date: %w", err)
		}
	}

	counts, err := decodeOrderedCounts(wire.Results)
	if err != nil {
		return err
	}

	r.SessionID = NewSessionID(createdAt)
	r.CreatedAt = createdAt.UTC()
	r.Feed = wire.Subreddit
	r.Counts = counts
	return nil
}

// decodeOrderedCounts walks the results object token by token;
// encoding/json map decoding would lose the key order.
func decodeOrderedCounts(raw json.RawMessage) ([]SymbolCount, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("results is not an object")
	}

	var counts []SymbolCount
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		symbol, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected results key %v", keyTok)
		}
		var mentions int
		if err := dec.Decode(&mentions); err != nil {
			return nil, fmt.Errorf("count for %s: %w", symbol, err)
		}
		counts = append(counts, SymbolCount{Symbol: symbol, Mentions: mentions})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return counts, nil
}

// CombinedRecord is one (session, symbol) row used as the unit of
// aggregation across sessions. Derived, never persisted as its own entity.
type CombinedRecord struct {
	Date          time.Time // day granularity
	DateTime      time.Time
	Timestamp     string // compact session timestamp
	Symbol        string
	Mentions      int
	TotalMentions int // session total
	UniqueSymbols int // session unique count
}

// SummaryReport aggregates every loaded session into one overview record
type SummaryReport struct {
	ReportDate      string        `json:"report_date"`
	TotalSessions   int           `json:"total_crawls"`
	UniqueSymbols   int           `json:"unique_symbols"`
	TotalMentions   int           `json:"total_mentions"`
	DateRange       string        `json:"date_range,omitempty"`
	TopSymbols      []SymbolTotal `json:"top_symbols"`
	TrendingSymbols []SymbolTotal `json:"trending_symbols"`
}

// SymbolTotal is a symbol with its summed mentions across sessions
type SymbolTotal struct {
	Symbol   string `json:"Symbol"`
	Mentions int    `json:"Mentions"`
}
