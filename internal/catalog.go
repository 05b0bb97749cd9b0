package internal

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Catalog holds the set of valid ticker symbols and the exclusion set used
// to suppress false positives. Loaded once, read-only afterwards.
type Catalog struct {
	symbols  map[string]struct{}
	excluded map[string]struct{}
	MinLen   int
	MaxLen   int
}

// LoadCatalog loads symbols from a CSV file with a "Symbol" header column
func LoadCatalog(path string, excluded []string, minLen, maxLen int) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Kind: "file", Name: path}
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	cat, err := ReadCatalog(f, excluded, minLen, maxLen)
	if err != nil {
		return nil, &ParseError{Source: "catalog", Key: path, Err: err}
	}
	LogInfo("Loaded %d stock symbols from %s", cat.Len(), path)
	return cat, nil
}

// ReadCatalog parses CSV symbol data from a reader. Symbols are normalized
// to upper case and duplicates collapse into the set.
func ReadCatalog(r io.Reader, excluded []string, minLen, maxLen int) (*Catalog, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty symbol file")
	}
	if err != nil {
		return nil, err
	}

	symbolCol := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "Symbol") {
			symbolCol = i
			break
		}
	}
	if symbolCol < 0 {
		return nil, fmt.Errorf("no Symbol column in header %v", header)
	}

	symbols := make(map[string]struct{})
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if symbolCol >= len(record) {
			return nil, fmt.Errorf("row %v has no column %d", record, symbolCol)
		}
		symbol := strings.ToUpper(strings.TrimSpace(record[symbolCol]))
		if symbol == "" {
			continue
		}
		symbols[symbol] = struct{}{}
	}

	excludedSet := make(map[string]struct{}, len(excluded))
	for _, word := range excluded {
		excludedSet[strings.ToUpper(word)] = struct{}{}
	}

	return &Catalog{
		symbols:  symbols,
		excluded: excludedSet,
		MinLen:   minLen,
		MaxLen:   maxLen,
	}, nil
}

// NewCatalog builds a catalog directly from symbol and exclusion lists
func NewCatalog(symbols, excluded []string, minLen, maxLen int) *Catalog {
	symbolSet := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		symbolSet[strings.ToUpper(s)] = struct{}{}
	}
	excludedSet := make(map[string]struct{}, len(excluded))
	for _, w := range excluded {
		excludedSet[strings.ToUpper(w)] = struct{}{}
	}
	return &Catalog{symbols: symbolSet, excluded: excludedSet, MinLen: minLen, MaxLen: maxLen}
}

// Contains reports whether symbol is a known ticker
func (c *Catalog) Contains(symbol string) bool {
	_, ok := c.symbols[symbol]
	return ok
}

// Excluded reports whether the word is suppressed. Exclusion wins over
// validity when both match.
func (c *Catalog) Excluded(word string) bool {
	_, ok := c.excluded[word]
	return ok
}

// Len returns the number of known symbols
func (c *Catalog) Len() int {
	return len(c.symbols)
}
