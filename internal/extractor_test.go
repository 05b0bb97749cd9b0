package internal

import (
	"reflect"
	"testing"
)

func TestExtractSymbols(t *testing.T) {
	cat := newTestCatalog()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "no symbols",
			text: "nothing to see here",
			want: nil,
		},
		{
			name: "known symbols in occurrence order",
			text: "GME to the moon AND I sold AAPL calls",
			want: []string{"GME", "AAPL"},
		},
		{
			name: "lower case matches",
			text: "buying gme and aapl",
			want: []string{"GME", "AAPL"},
		},
		{
			name: "duplicates preserved",
			text: "AAPL AAPL AAPL",
			want: []string{"AAPL", "AAPL", "AAPL"},
		},
		{
			name: "excluded word that is also a valid symbol",
			text: "AND is a ticker but stays suppressed",
			want: nil,
		},
		{
			name: "runs longer than five letters are discarded whole",
			text: "AAPLGME AAPL",
			want: []string{"AAPL"},
		},
		{
			name: "symbols embedded in punctuation",
			text: "$GME,$AAPL!",
			want: []string{"GME", "AAPL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSymbols(tt.text, cat)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractSymbols(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractSymbols_LengthBounds(t *testing.T) {
	cat := NewCatalog([]string{"F", "GM", "GME", "AAPL", "TSLAQ"}, nil, 2, 4)

	got := ExtractSymbols("F GM GME AAPL TSLAQ", cat)
	want := []string{"GM", "GME", "AAPL"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractSymbols() = %v, want %v", got, want)
	}
	for _, symbol := range got {
		if len(symbol) < cat.MinLen || len(symbol) > cat.MaxLen {
			t.Errorf("symbol %q outside bounds [%d, %d]", symbol, cat.MinLen, cat.MaxLen)
		}
	}
}

func TestExtractSymbols_MembershipBeforeExclusion(t *testing.T) {
	// A word absent from the catalog is filtered regardless of the
	// exclusion set
	cat := NewCatalog([]string{"GME"}, []string{"MOON"}, 1, 5)
	got := ExtractSymbols("MOON SOON GME", cat)
	want := []string{"GME"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractSymbols() = %v, want %v", got, want)
	}
}
