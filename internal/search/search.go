// Package search ranks application entries against user queries. Queries
// and haystacks are case-folded and stripped of diacritics so "uberspace"
// finds "Überspace".
package search

import (
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"lumen/internal/apps"
)

var foldTransform = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold normalizes a string for matching: decompose, drop combining
// marks, lowercase.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransform, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Index is a prepared search corpus over an application list. Build one
// per scan; it is cheap and immutable.
type Index struct {
	entries  []apps.Entry
	haystack []string
}

// NewIndex prepares the fold of every entry. Name, keywords, and comment
// all participate in matching, with the name first so name hits rank
// higher through match position.
func NewIndex(entries []apps.Entry) *Index {
	haystack := make([]string, len(entries))
	for i, entry := range entries {
		parts := []string{entry.Name}
		parts = append(parts, entry.Keywords...)
		if entry.Comment != "" {
			parts = append(parts, entry.Comment)
		}
		haystack[i] = Fold(strings.Join(parts, " "))
	}
	return &Index{entries: entries, haystack: haystack}
}

// Query returns entries ranked by match quality, best first. An empty
// query returns the full list in scan order. A non-positive limit means
// no limit.
func (ix *Index) Query(query string, limit int) []apps.Entry {
	query = strings.TrimSpace(query)
	if query == "" {
		return clip(ix.entries, limit)
	}

	matches := fuzzy.Find(Fold(query), ix.haystack)
	ranked := make([]apps.Entry, 0, len(matches))
	for _, match := range matches {
		ranked = append(ranked, ix.entries[match.Index])
	}
	return clip(ranked, limit)
}

func clip(entries []apps.Entry, limit int) []apps.Entry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
