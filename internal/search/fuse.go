// internal/search/fuse.go
package search

import (
	"math"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"pixisphere/internal/models"
)

const (
	// locationDistance is how far into a value a match may start before
	// the position penalty alone reaches 1.
	locationDistance = 100

	// epsilon replaces a perfect field score so it still weighs in the
	// item product.
	epsilon = 2.220446049250313e-16
)

// Fuse is an approximate substring matcher. A field value matches when the
// best window of the value is within threshold, scored as
// edits/len(query) + start/locationDistance.
type Fuse struct {
	threshold float64
}

func NewFuse(threshold float64) *Fuse {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Fuse{threshold: threshold}
}

type scored struct {
	item  models.Photographer
	score float64
}

func (f *Fuse) Rank(items []models.Photographer, query string) []models.Photographer {
	q := []rune(strings.ToLower(strings.TrimSpace(query)))
	if len(q) == 0 {
		return items
	}

	var hits []scored
	for i := range items {
		if score, ok := f.itemScore(&items[i], q); ok {
			hits = append(hits, scored{item: items[i], score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score < hits[j].score
	})

	out := make([]models.Photographer, len(hits))
	for i, h := range hits {
		out[i] = h.item
	}
	return out
}

func (f *Fuse) itemScore(p *models.Photographer, q []rune) (float64, bool) {
	total := 1.0
	matched := false
	for _, value := range fieldValues(p) {
		if value == "" {
			continue
		}
		score, ok := f.fieldScore(value, q)
		if !ok {
			continue
		}
		matched = true
		if score == 0 {
			score = epsilon
		}
		total *= math.Pow(score, fieldNorm(value))
	}
	return total, matched
}

// fieldScore finds the lowest scoring window of value.
func (f *Fuse) fieldScore(value string, q []rune) (float64, bool) {
	text := []rune(strings.ToLower(value))
	m := len(q)
	maxErrors := int(math.Floor(f.threshold * float64(m)))

	best := math.Inf(1)
	for start := 0; start < len(text); start++ {
		position := float64(start) / locationDistance
		if position > f.threshold {
			break
		}
		for width := m - maxErrors; width <= m+maxErrors; width++ {
			if width <= 0 {
				continue
			}
			end := start + width
			if end > len(text) {
				end = len(text)
			}
			dist := fuzzy.LevenshteinDistance(string(q), string(text[start:end]))
			if score := float64(dist)/float64(m) + position; score < best {
				best = score
			}
			if end == len(text) {
				break
			}
		}
	}
	return best, best <= f.threshold
}

// fieldNorm dampens long values: 1/sqrt(token count), rounded to 3 places.
func fieldNorm(value string) float64 {
	tokens := len(strings.Fields(value))
	if tokens == 0 {
		tokens = 1
	}
	return math.Round(1000/math.Sqrt(float64(tokens))) / 1000
}
