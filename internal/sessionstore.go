package internal

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// SessionStore maps session records to and from a StorageBackend using the
// canonical key scheme <area>/<sessionID><filename>. It owns key
// construction exclusively; backends never interpret keys.
type SessionStore struct {
	backend  StorageBackend
	cacheDir string
}

// NewSessionStore creates a store over the given backend. cacheDir holds
// the local session index cache; empty disables caching.
func NewSessionStore(backend StorageBackend, cacheDir string) *SessionStore {
	return &SessionStore{backend: backend, cacheDir: cacheDir}
}

func (s *SessionStore) resultKey(sessionID string) string {
	return AreaResults + sessionID + ResultFileJSON
}

// SaveResult writes the session's structured record and its tabular dump
// under results/<sessionID>/. Each artifact's outcome is logged
// independently; partial writes are not rolled back, and the returned error
// is nil only if every write succeeded.
func (s *SessionStore) SaveResult(r *SessionResult) error {
	jsonData, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode session result: %w", err)
	}
	csvData, err := resultCSV(r)
	if err != nil {
		return fmt.Errorf("encode session csv: %w", err)
	}

	var firstErr error
	jsonKey := s.resultKey(r.SessionID)
	if err := s.backend.Put(jsonKey, jsonData); err != nil {
		LogError("Failed to save %s: %v", jsonKey, err)
		firstErr = err
	} else {
		LogInfo("Saved session result to %s", jsonKey)
		s.addToIndex(r.SessionID)
	}

	csvKey := AreaResults + r.SessionID + ResultFileCSV
	if err := s.backend.Put(csvKey, csvData); err != nil {
		LogError("Failed to save %s: %v", csvKey, err)
		if firstErr == nil {
			firstErr = err
		}
	} else {
		LogInfo("Saved session table to %s", csvKey)
	}

	return firstErr
}

// SaveLog persists a local log file under the session's results prefix.
// Returns nil only on a confirmed write, so callers can safely delete the
// local copy afterwards.
func (s *SessionStore) SaveLog(sessionID, localPath string) error {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return &NotFoundError{Kind: "file", Name: localPath}
	}
	key := AreaResults + sessionID + SessionLogFile
	if err := s.backend.Put(key, data); err != nil {
		return err
	}
	LogInfo("Saved session log to %s", key)
	return nil
}

// LoadResult loads exactly one session's result record. A missing or
// malformed file is fatal for this call.
func (s *SessionStore) LoadResult(sessionID string) (*SessionResult, error) {
	key := s.resultKey(sessionID)
	data, err := s.backend.Get(key)
	if err != nil {
		if IsNotFound(err) {
			return nil, &NotFoundError{Kind: "session", Name: sessionID}
		}
		return nil, err
	}

	var result SessionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, &ParseError{Source: "session", Key: key, Err: err}
	}
	// Keep the id the caller asked for; the file's own timestamp may have
	// been copied from another session
	result.SessionID = sessionID
	if err := result.Validate(); err != nil {
		return nil, &ParseError{Source: "session", Key: key, Err: err}
	}
	return &result, nil
}

// LoadAllResults enumerates and loads every session under results/.
// Malformed or missing files are skipped with a warning; the valid
// remainder is returned newest first. A partially written session from a
// concurrent crawl shows up here as one more skipped file.
func (s *SessionStore) LoadAllResults() ([]*SessionResult, error) {
	sessions, err := s.ListSessions(AreaResults)
	if err != nil {
		return nil, err
	}

	results := make([]*SessionResult, 0, len(sessions))
	for _, id := range sessions {
		result, err := s.LoadResult(id)
		if err != nil {
			LogWarn("Skipping session %s: %v", id, err)
			continue
		}
		results = append(results, result)
	}
	LogInfo("Loaded %d of %d session(s)", len(results), len(sessions))
	return results, nil
}

// ListSessions enumerates session ids under an area using two nested
// prefix scans: first the date-level prefixes (e.g. "2025-07-07/"), then
// the time-level prefixes beneath each (e.g. "210032/"). The concatenation
// with the area stripped is the session id. Ids are deduplicated and
// returned in descending lexicographic order, which the zero-padded id
// format makes equal to descending chronological order.
func (s *SessionStore) ListSessions(area string) ([]string, error) {
	dateDirs, err := s.backend.ListDirs(area)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, dateDir := range dateDirs {
		timeDirs, err := s.backend.ListDirs(dateDir)
		if err != nil {
			return nil, err
		}
		for _, timeDir := range timeDirs {
			seen[timeDir[len(area):]] = struct{}{}
		}
	}

	sessions := make([]string, 0, len(seen))
	for id := range seen {
		sessions = append(sessions, id)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(sessions)))

	if area == AreaResults {
		if err := s.writeIndex(sessions); err != nil {
			LogWarn("Failed to update session index cache: %v", err)
		}
	}
	return sessions, nil
}

// ExportSession downloads every artifact stored under the session's results
// prefix into destDir, keeping each key's base filename. Artifacts are best
// effort; the count of exported files and the first failure are returned.
func (s *SessionStore) ExportSession(sessionID, destDir string) (int, error) {
	keys, err := s.backend.List(AreaResults + sessionID)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, &NotFoundError{Kind: "session", Name: sessionID}
	}

	exported := 0
	var firstErr error
	for _, key := range keys {
		dest := filepath.Join(destDir, path.Base(key))
		if err := s.backend.Download(key, dest); err != nil {
			LogError("Failed to export %s: %v", key, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		LogInfo("Exported %s", dest)
		exported++
	}
	return exported, firstErr
}

// SaveAnalysis writes the analysis artifacts under analysis/<sessionID>/.
// Each artifact is best effort; every outcome is logged and the first
// failure is returned after all writes were attempted.
func (s *SessionStore) SaveAnalysis(sessionID string, records []CombinedRecord,
	top, trending []SymbolTotal, report *SummaryReport) error {

	artifacts := []struct {
		name   string
		encode func() ([]byte, error)
	}{
		{"combined_analysis.csv", func() ([]byte, error) { return combinedCSV(records) }},
		{"top_symbols.csv", func() ([]byte, error) { return totalsCSV(top) }},
		{"trending_symbols.csv", func() ([]byte, error) { return totalsCSV(trending) }},
		{"summary_report.json", func() ([]byte, error) {
			return json.MarshalIndent(report, "", "  ")
		}},
	}

	var firstErr error
	for _, artifact := range artifacts {
		key := AreaAnalysis + sessionID + artifact.name
		data, err := artifact.encode()
		if err == nil {
			err = s.backend.Put(key, data)
		}
		if err != nil {
			LogError("Failed to save %s: %v", key, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		LogInfo("Saved %s", key)
	}
	return firstErr
}

// sessionIndex is the local yaml cache of enumerated session ids, keyed by
// backend identity so a cache written against one store is never served for
// another
type sessionIndex struct {
	Backend     string    `yaml:"backend"`
	RefreshedAt time.Time `yaml:"refreshed_at"`
	Sessions    []string  `yaml:"sessions"`
}

func (s *SessionStore) indexPath() string {
	return filepath.Join(s.cacheDir, "sessions.yaml")
}

func (s *SessionStore) writeIndex(sessions []string) error {
	if s.cacheDir == "" {
		return nil
	}
	if err := os.MkdirAll(s.cacheDir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(sessionIndex{
		Backend:     s.backend.Identity(),
		RefreshedAt: time.Now().UTC(),
		Sessions:    sessions,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(s.indexPath(), data, 0644)
}

// addToIndex folds a newly written session into the cached listing so the
// cache stays accurate between full enumerations. A missing or foreign
// cache is left alone; the next ListSessions rebuilds it.
func (s *SessionStore) addToIndex(sessionID string) {
	sessions, ok := s.CachedSessions()
	if !ok {
		return
	}
	for _, id := range sessions {
		if id == sessionID {
			return
		}
	}
	sessions = append(sessions, sessionID)
	sort.Sort(sort.Reverse(sort.StringSlice(sessions)))
	if err := s.writeIndex(sessions); err != nil {
		LogWarn("Failed to update session index cache: %v", err)
	}
}

// CachedSessions returns the cached session listing for this backend, or
// false when no usable cache exists. The cache can be stale: it reflects
// the last full enumeration.
func (s *SessionStore) CachedSessions() ([]string, bool) {
	if s.cacheDir == "" {
		return nil, false
	}
	data, err := os.ReadFile(s.indexPath())
	if err != nil {
		return nil, false
	}
	var index sessionIndex
	if err := yaml.Unmarshal(data, &index); err != nil {
		LogWarn("Ignoring unreadable session index cache: %v", err)
		return nil, false
	}
	if index.Backend != s.backend.Identity() {
		return nil, false
	}
	return index.Sessions, true
}

// resultCSV renders the per-session tabular dump:
// Symbol,Mentions,Timestamp,Date
func resultCSV(r *SessionResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Symbol", "Mentions", "Timestamp", "Date"}); err != nil {
		return nil, err
	}
	timestamp := CompactTimestamp(r.CreatedAt)
	date := r.CreatedAt.UTC().Format("2006-01-02 15:04:05")
	for _, c := range r.Counts {
		row := []string{c.Symbol, strconv.Itoa(c.Mentions), timestamp, date}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// combinedCSV renders the long-form record set, one row per
// (session, symbol) pair
func combinedCSV(records []CombinedRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"Date", "DateTime", "Timestamp", "Symbol", "Mentions",
		"TotalMentions", "UniqueSymbols"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, rec := range records {
		row := []string{
			rec.Date.Format("2006-01-02"),
			rec.DateTime.Format("2006-01-02 15:04:05"),
			rec.Timestamp,
			rec.Symbol,
			strconv.Itoa(rec.Mentions),
			strconv.Itoa(rec.TotalMentions),
			strconv.Itoa(rec.UniqueSymbols),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// totalsCSV renders a Symbol,Mentions ranking table
func totalsCSV(totals []SymbolTotal) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Symbol", "Mentions"}); err != nil {
		return nil, err
	}
	for _, t := range totals {
		if err := w.Write([]string{t.Symbol, strconv.Itoa(t.Mentions)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
