package internal

import (
	"math/rand"
	"reflect"
	"testing"
	"time"
)

func testSessions() []*SessionResult {
	return []*SessionResult{
		newTestResult(time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC), "wsb", []SymbolCount{
			{Symbol: "GME", Mentions: 10},
			{Symbol: "AAPL", Mentions: 5},
		}),
		newTestResult(time.Date(2025, 7, 5, 12, 30, 0, 0, time.UTC), "wsb", []SymbolCount{
			{Symbol: "TSLA", Mentions: 8},
			{Symbol: "GME", Mentions: 2},
		}),
		newTestResult(time.Date(2025, 7, 7, 21, 0, 32, 0, time.UTC), "wsb", []SymbolCount{
			{Symbol: "AAPL", Mentions: 7},
		}),
	}
}

func TestCombine(t *testing.T) {
	sessions := testSessions()
	records := Combine(sessions)

	if len(records) != 5 {
		t.Fatalf("Combine() returned %d records, want 5", len(records))
	}
	// Sorted ascending by session time
	for i := 1; i < len(records); i++ {
		if records[i].DateTime.Before(records[i-1].DateTime) {
			t.Errorf("records out of order at %d: %v before %v",
				i, records[i].DateTime, records[i-1].DateTime)
		}
	}

	first := records[0]
	if first.Symbol != "GME" || first.Mentions != 10 {
		t.Errorf("first record = %+v", first)
	}
	if first.TotalMentions != 15 || first.UniqueSymbols != 2 {
		t.Errorf("session totals = (%d, %d), want (15, 2)", first.TotalMentions, first.UniqueSymbols)
	}
	if first.Timestamp != "20250701_100000" {
		t.Errorf("Timestamp = %s", first.Timestamp)
	}
}

func TestCombine_Empty(t *testing.T) {
	if records := Combine(nil); len(records) != 0 {
		t.Errorf("Combine(nil) = %v, want empty", records)
	}
	if records := Combine([]*SessionResult{}); len(records) != 0 {
		t.Errorf("Combine([]) = %v, want empty", records)
	}
}

func TestTopOverall(t *testing.T) {
	records := Combine(testSessions())

	got := TopOverall(records, 10)
	want := []SymbolTotal{
		{Symbol: "AAPL", Mentions: 12},
		{Symbol: "GME", Mentions: 12},
		{Symbol: "TSLA", Mentions: 8},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopOverall() = %v, want %v (ties alphabetical)", got, want)
	}

	if got := TopOverall(records, 1); len(got) != 1 || got[0].Symbol != "AAPL" {
		t.Errorf("TopOverall(limit 1) = %v", got)
	}
}

func TestTopOverall_OrderIndependent(t *testing.T) {
	records := Combine(testSessions())
	want := TopOverall(records, 10)

	shuffled := make([]CombinedRecord, len(records))
	copy(shuffled, records)
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 5; i++ {
		r.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if got := TopOverall(shuffled, 10); !reflect.DeepEqual(got, want) {
			t.Fatalf("TopOverall() depends on input order: %v != %v", got, want)
		}
	}
}

func TestTrending(t *testing.T) {
	records := Combine(testSessions())
	now := time.Date(2025, 7, 8, 15, 0, 0, 0, time.UTC)

	// Window of 3 days: cutoff 2025-07-05 inclusive. The 2025-07-01
	// session has the highest single count and must still be excluded.
	got := Trending(records, now, 3, 10)
	want := []SymbolTotal{
		{Symbol: "TSLA", Mentions: 8},
		{Symbol: "AAPL", Mentions: 7},
		{Symbol: "GME", Mentions: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Trending() = %v, want %v", got, want)
	}
}

func TestTrending_InclusiveLowerBound(t *testing.T) {
	records := Combine(testSessions())
	now := time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC)

	// Cutoff lands exactly on 2025-07-01: that day's records count
	got := Trending(records, now, 7, 10)
	if len(got) != 3 {
		t.Fatalf("Trending() = %v, want all three symbols", got)
	}
	var gme int
	for _, total := range got {
		if total.Symbol == "GME" {
			gme = total.Mentions
		}
	}
	if gme != 12 {
		t.Errorf("GME trending total = %d, want 12 (boundary day included)", gme)
	}
}

func TestTrending_EmptyWindow(t *testing.T) {
	records := Combine(testSessions())
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := Trending(records, now, 7, 10); got != nil {
		t.Errorf("Trending() = %v, want nil for an empty window", got)
	}
}

func TestTimeline(t *testing.T) {
	records := Combine(testSessions())

	got := Timeline(records, "gme")
	if len(got) != 2 {
		t.Fatalf("Timeline() returned %d records, want 2", len(got))
	}
	if got[0].Mentions != 10 || got[1].Mentions != 2 {
		t.Errorf("Timeline() = %v, want ascending by time", got)
	}

	if got := Timeline(records, "MSFT"); len(got) != 0 {
		t.Errorf("Timeline(MSFT) = %v, want empty", got)
	}
}

func TestSummarize(t *testing.T) {
	sessions := testSessions()
	records := Combine(sessions)
	now := time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC)

	report := Summarize(sessions, records, now)
	if report.TotalSessions != 3 {
		t.Errorf("TotalSessions = %d, want 3", report.TotalSessions)
	}
	if report.UniqueSymbols != 3 {
		t.Errorf("UniqueSymbols = %d, want 3", report.UniqueSymbols)
	}
	if report.TotalMentions != 32 {
		t.Errorf("TotalMentions = %d, want 32", report.TotalMentions)
	}
	if report.DateRange != "2025-07-01 to 2025-07-07" {
		t.Errorf("DateRange = %s", report.DateRange)
	}
	if len(report.TopSymbols) != 3 {
		t.Errorf("TopSymbols = %v", report.TopSymbols)
	}
}

func TestSummarize_Empty(t *testing.T) {
	report := Summarize(nil, nil, time.Now())
	if report.TotalSessions != 0 {
		t.Errorf("TotalSessions = %d, want 0", report.TotalSessions)
	}
	if len(report.TopSymbols) != 0 || len(report.TrendingSymbols) != 0 {
		t.Errorf("expected no rankings: %+v", report)
	}
}

func TestSummarize_SessionsWithoutRecords(t *testing.T) {
	// Sessions whose symbol maps were all empty: the report still counts
	// them and leaves the aggregates zero
	sessions := []*SessionResult{
		newTestResult(time.Date(2025, 7, 7, 21, 0, 32, 0, time.UTC), "wsb", nil),
	}
	report := Summarize(sessions, Combine(sessions), time.Now())
	if report.TotalSessions != 1 {
		t.Errorf("TotalSessions = %d, want 1", report.TotalSessions)
	}
	if report.TotalMentions != 0 || report.UniqueSymbols != 0 || report.DateRange != "" {
		t.Errorf("aggregates should stay zero: %+v", report)
	}
}
