// internal/search/subsequence.go
package search

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"pixisphere/internal/models"
)

// Subsequence ranks items by their best subsequence match over the
// searchable fields, highest score first.
type Subsequence struct{}

func NewSubsequence() *Subsequence {
	return &Subsequence{}
}

// valueSource flattens the field values of a collection so fuzzy.FindFrom
// can search all of them in one pass.
type valueSource struct {
	values []string
	owners []int
}

func newValueSource(items []models.Photographer) *valueSource {
	src := &valueSource{}
	for i := range items {
		for _, v := range fieldValues(&items[i]) {
			if v == "" {
				continue
			}
			src.values = append(src.values, strings.ToLower(v))
			src.owners = append(src.owners, i)
		}
	}
	return src
}

func (s *valueSource) String(i int) string { return s.values[i] }
func (s *valueSource) Len() int            { return len(s.values) }

func (s *Subsequence) Rank(items []models.Photographer, query string) []models.Photographer {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}

	src := newValueSource(items)
	best := make(map[int]int)
	for _, m := range fuzzy.FindFrom(q, src) {
		owner := src.owners[m.Index]
		if score, ok := best[owner]; !ok || m.Score > score {
			best[owner] = m.Score
		}
	}

	order := make([]int, 0, len(best))
	for i := range items {
		if _, ok := best[i]; ok {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return best[order[a]] > best[order[b]]
	})

	out := make([]models.Photographer, len(order))
	for i, idx := range order {
		out[i] = items[idx]
	}
	return out
}
