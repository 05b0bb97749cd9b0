package internal

import (
	"regexp"
	"strings"
)

// tokenPattern matches maximal runs of letters; runs longer than five
// characters can never be tickers and are discarded whole, not truncated.
var tokenPattern = regexp.MustCompile(`[A-Z]+`)

const maxTickerLen = 5

// ExtractSymbols returns every valid symbol mention in text, in first
// occurrence order. Duplicates within one text unit are preserved; the
// caller counts them. Empty text yields nil.
func ExtractSymbols(text string, cat *Catalog) []string {
	if text == "" {
		return nil
	}

	text = strings.ToUpper(text)

	var found []string
	for _, token := range tokenPattern.FindAllString(text, -1) {
		if len(token) > maxTickerLen {
			continue
		}
		if len(token) < cat.MinLen || len(token) > cat.MaxLen {
			continue
		}
		// Exclusion is checked after membership: a word absent from the
		// catalog is already filtered regardless of the exclusion set.
		if !cat.Contains(token) {
			continue
		}
		if cat.Excluded(token) {
			continue
		}
		found = append(found, token)
	}
	return found
}
