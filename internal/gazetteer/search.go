package gazetteer

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold strips diacritics and lowercases a name so that queries match across
// accent and case variants ("São Paulo" -> "sao paulo"). The transform chain
// is built per call; chained transformers carry state and are not safe to
// share.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// match buckets, in ranking priority order.
const (
	matchPrefix = iota
	matchWordStart
	matchSubstring
)

func isWordSeparator(r rune) bool {
	return r == ' ' || r == '-' || r == '\''
}

// classify returns the match bucket for a folded name against a folded
// query, or -1 for no match.
func classify(folded, query string) int {
	if strings.HasPrefix(folded, query) {
		return matchPrefix
	}
	if !strings.Contains(folded, query) {
		return -1
	}
	for _, word := range strings.FieldsFunc(folded, isWordSeparator) {
		if strings.HasPrefix(word, query) {
			return matchWordStart
		}
	}
	return matchSubstring
}

// Search returns cities whose folded name matches the folded query, ranked
// by bucket (exact prefix, then word start, then substring) and by
// population descending inside each bucket. Cities without population sort
// last in their bucket; ties keep load order. A non-positive limit returns
// all matches. Blank queries match nothing.
func (idx *Index) Search(query string, limit int) []City {
	q := Fold(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	buckets := make([][]int, 3)
	for i, folded := range idx.folded {
		bucket := classify(folded, q)
		if bucket < 0 {
			continue
		}
		buckets[bucket] = append(buckets[bucket], i)
	}

	var out []City
	for _, bucket := range buckets {
		sort.SliceStable(bucket, func(a, b int) bool {
			return idx.cities[bucket[a]].Population > idx.cities[bucket[b]].Population
		})
		for _, i := range bucket {
			out = append(out, idx.cities[i])
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
