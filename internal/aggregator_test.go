package internal

import (
	"testing"
	"time"
)

func TestRun_RecordText(t *testing.T) {
	tests := []struct {
		name          string
		texts         []string
		wantTotal     int
		wantUnique    int
		wantTopSymbol string
	}{
		{
			name:       "no texts",
			texts:      nil,
			wantTotal:  0,
			wantUnique: 0,
		},
		{
			name:          "repeats in one text count separately",
			texts:         []string{"AAPL AAPL"},
			wantTotal:     2,
			wantUnique:    1,
			wantTopSymbol: "AAPL",
		},
		{
			name:          "counts accumulate across texts",
			texts:         []string{"GME calls", "GME GME", "AAPL and GME"},
			wantTotal:     5,
			wantUnique:    2,
			wantTopSymbol: "GME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := NewRun("wallstreetbets", newTestCatalog())
			for _, text := range tt.texts {
				run.RecordText(text)
			}

			if got := run.TotalMentions(); got != tt.wantTotal {
				t.Errorf("TotalMentions() = %d, want %d", got, tt.wantTotal)
			}
			if got := run.UniqueSymbols(); got != tt.wantUnique {
				t.Errorf("UniqueSymbols() = %d, want %d", got, tt.wantUnique)
			}
			if tt.wantTopSymbol != "" {
				result := run.Finalize()
				if result.Counts[0].Symbol != tt.wantTopSymbol {
					t.Errorf("top symbol = %s, want %s", result.Counts[0].Symbol, tt.wantTopSymbol)
				}
			}
		})
	}
}

func TestRun_FinalizeInvariants(t *testing.T) {
	run := NewRun("wallstreetbets", newTestCatalog())
	run.RecordText("GME GME GME AAPL")
	run.RecordText("TSLA AAPL NVDA")
	result := run.Finalize()

	sum := 0
	for _, c := range result.Counts {
		sum += c.Mentions
	}
	if result.TotalMentions() != sum {
		t.Errorf("TotalMentions() = %d, want sum %d", result.TotalMentions(), sum)
	}
	if result.UniqueSymbols() != len(result.Counts) {
		t.Errorf("UniqueSymbols() = %d, want %d", result.UniqueSymbols(), len(result.Counts))
	}
	if err := result.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestRun_FinalizeSortOrder(t *testing.T) {
	run := NewRun("wallstreetbets", newTestCatalog())
	// TSLA first seen, then NVDA; both end at 2 mentions. GME ends at 3.
	run.RecordText("TSLA NVDA TSLA NVDA GME GME GME")
	result := run.Finalize()

	wantOrder := []string{"GME", "TSLA", "NVDA"}
	if len(result.Counts) != len(wantOrder) {
		t.Fatalf("got %d symbols, want %d", len(result.Counts), len(wantOrder))
	}
	for i, symbol := range wantOrder {
		if result.Counts[i].Symbol != symbol {
			t.Errorf("Counts[%d].Symbol = %s, want %s (descending count, ties in insertion order)",
				i, result.Counts[i].Symbol, symbol)
		}
	}
}

func TestRun_SessionID(t *testing.T) {
	createdAt := time.Date(2025, 7, 7, 21, 0, 32, 0, time.UTC)
	run := NewRunAt("wallstreetbets", newTestCatalog(), createdAt)

	if got := run.SessionID(); got != "2025-07-07/210032/" {
		t.Errorf("SessionID() = %s, want 2025-07-07/210032/", got)
	}

	result := run.Finalize()
	if result.SessionID != run.SessionID() {
		t.Errorf("result session id %s != run session id %s", result.SessionID, run.SessionID())
	}
	if result.Feed != "wallstreetbets" {
		t.Errorf("Feed = %s, want wallstreetbets", result.Feed)
	}
}
