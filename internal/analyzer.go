package internal

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// The analyzer is a set of stateless transforms over explicit inputs.
// Nothing here touches storage; callers load sessions through SessionStore
// and hand them in.

// Combine flattens every (symbol, count) pair of every session into one
// CombinedRecord, tagging it with the session's timestamp and totals. The
// result is sorted ascending by session time. An empty session list yields
// an empty result, not an error.
func Combine(sessions []*SessionResult) []CombinedRecord {
	var records []CombinedRecord
	for _, session := range sessions {
		dateTime := session.CreatedAt.UTC()
		date := dateTime.Truncate(24 * time.Hour)
		timestamp := CompactTimestamp(session.CreatedAt)
		total := session.TotalMentions()
		unique := session.UniqueSymbols()
		for _, c := range session.Counts {
			records = append(records, CombinedRecord{
				Date:          date,
				DateTime:      dateTime,
				Timestamp:     timestamp,
				Symbol:        c.Symbol,
				Mentions:      c.Mentions,
				TotalMentions: total,
				UniqueSymbols: unique,
			})
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].DateTime.Before(records[j].DateTime)
	})
	return records
}

// sumBySymbol groups records by symbol, sums mentions, and ranks them
// descending by sum with the symbol name as ascending tie-break
func sumBySymbol(records []CombinedRecord, limit int) []SymbolTotal {
	sums := make(map[string]int)
	for _, rec := range records {
		sums[rec.Symbol] += rec.Mentions
	}

	totals := make([]SymbolTotal, 0, len(sums))
	for symbol, mentions := range sums {
		totals = append(totals, SymbolTotal{Symbol: symbol, Mentions: mentions})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Mentions != totals[j].Mentions {
			return totals[i].Mentions > totals[j].Mentions
		}
		return totals[i].Symbol < totals[j].Symbol
	})

	if limit >= 0 && len(totals) > limit {
		totals = totals[:limit]
	}
	return totals
}

// TopOverall returns the top symbols by total mentions across all records
func TopOverall(records []CombinedRecord, limit int) []SymbolTotal {
	return sumBySymbol(records, limit)
}

// Trending returns the top symbols among records whose date falls within
// the trailing window of calendar days ending at now. The lower bound is
// inclusive.
func Trending(records []CombinedRecord, now time.Time, windowDays, limit int) []SymbolTotal {
	cutoff := now.UTC().Truncate(24 * time.Hour).AddDate(0, 0, -windowDays)
	var recent []CombinedRecord
	for _, rec := range records {
		if !rec.Date.Before(cutoff) {
			recent = append(recent, rec)
		}
	}
	if len(recent) == 0 {
		return nil
	}
	return sumBySymbol(recent, limit)
}

// Timeline returns the records for one symbol, sorted ascending by time
func Timeline(records []CombinedRecord, symbol string) []CombinedRecord {
	symbol = strings.ToUpper(symbol)
	var timeline []CombinedRecord
	for _, rec := range records {
		if rec.Symbol == symbol {
			timeline = append(timeline, rec)
		}
	}
	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].DateTime.Before(timeline[j].DateTime)
	})
	return timeline
}

// Summarize builds the summary report over the loaded sessions and their
// combined records. With sessions but no records (sessions whose symbol
// maps were all empty) the report still carries the session count and
// leaves the aggregate fields zero.
func Summarize(sessions []*SessionResult, records []CombinedRecord, now time.Time) *SummaryReport {
	report := &SummaryReport{
		ReportDate:      now.UTC().Format(time.RFC3339),
		TotalSessions:   len(sessions),
		TopSymbols:      []SymbolTotal{},
		TrendingSymbols: []SymbolTotal{},
	}
	if len(records) == 0 {
		return report
	}

	symbols := make(map[string]struct{})
	minDate := records[0].Date
	maxDate := records[0].Date
	totalMentions := 0
	for _, rec := range records {
		symbols[rec.Symbol] = struct{}{}
		totalMentions += rec.Mentions
		if rec.Date.Before(minDate) {
			minDate = rec.Date
		}
		if rec.Date.After(maxDate) {
			maxDate = rec.Date
		}
	}

	report.UniqueSymbols = len(symbols)
	report.TotalMentions = totalMentions
	report.DateRange = fmt.Sprintf("%s to %s",
		minDate.Format("2006-01-02"), maxDate.Format("2006-01-02"))
	report.TopSymbols = TopOverall(records, 10)
	report.TrendingSymbols = Trending(records, now, 7, 5)
	if report.TrendingSymbols == nil {
		report.TrendingSymbols = []SymbolTotal{}
	}
	return report
}
