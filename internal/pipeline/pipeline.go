// internal/pipeline/pipeline.go
package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"pixisphere/internal/models"
)

// TopCount is the size of the hero section on the listing page.
const TopCount = 3

// Apply filters and sorts a collection. The input slice is never modified
// and applying the same config to the result returns it unchanged.
func Apply(collection []models.Photographer, cfg models.FilterConfig) []models.Photographer {
	query := strings.ToLower(strings.TrimSpace(cfg.TextQuery))

	out := make([]models.Photographer, 0, len(collection))
	for i := range collection {
		if matches(&collection[i], cfg, query) {
			out = append(out, collection[i])
		}
	}

	sortBy(out, cfg.SortMode)
	return out
}

// Matches reports whether p passes every filter clause of cfg.
func Matches(p *models.Photographer, cfg models.FilterConfig) bool {
	return matches(p, cfg, strings.ToLower(strings.TrimSpace(cfg.TextQuery)))
}

func matches(p *models.Photographer, cfg models.FilterConfig, query string) bool {
	if query != "" && !textMatch(p, query) {
		return false
	}
	if p.Price < 0 || p.Price > cfg.PriceCeiling {
		return false
	}
	if p.Rating < cfg.MinRating {
		return false
	}
	if len(cfg.RequiredStyles) > 0 && !anyTag(p, cfg.RequiredStyles) {
		return false
	}
	if cfg.City != "" && p.Location != cfg.City {
		return false
	}
	return true
}

// textMatch is a case-insensitive substring check over name, location and
// tags. query must already be lowercased and trimmed.
func textMatch(p *models.Photographer, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Location), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func anyTag(p *models.Photographer, styles []string) bool {
	for _, s := range styles {
		if p.HasTag(s) {
			return true
		}
	}
	return false
}

func sortBy(items []models.Photographer, mode models.SortMode) {
	switch mode {
	case models.SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price < items[j].Price
		})
	case models.SortRatingDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Rating > items[j].Rating
		})
	case models.SortRecentFirst:
		// Numeric ids descending; non-numeric ids follow in input order.
		sort.SliceStable(items, func(i, j int) bool {
			a, okA := items[i].ID.Number()
			b, okB := items[j].ID.Number()
			if okA != okB {
				return okA
			}
			return okA && a > b
		})
	}
}

// TopRated returns the n highest rated items, ties in input order.
func TopRated(collection []models.Photographer, n int) []models.Photographer {
	sorted := make([]models.Photographer, len(collection))
	copy(sorted, collection)
	sortBy(sorted, models.SortRatingDesc)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Split divides a result into the hero section and the remainder.
func Split(result []models.Photographer) (top, rest []models.Photographer) {
	if len(result) <= TopCount {
		return result, nil
	}
	return result[:TopCount], result[TopCount:]
}

// CityOptions lists the distinct non-empty locations in first-seen order.
func CityOptions(collection []models.Photographer) []string {
	seen := make(map[string]struct{}, len(collection))
	var cities []string
	for _, p := range collection {
		if p.Location == "" {
			continue
		}
		if _, ok := seen[p.Location]; ok {
			continue
		}
		seen[p.Location] = struct{}{}
		cities = append(cities, p.Location)
	}
	return cities
}

// ResultMessage is the search-results banner. It is empty when no search
// is active.
func ResultMessage(cfg models.FilterConfig, resultCount int) string {
	if !cfg.SearchActive() {
		return ""
	}
	if resultCount == 0 {
		return fmt.Sprintf("No photographers found for \"%s\"", cfg.TextQuery)
	}
	return fmt.Sprintf("Showing results for \"%s\"", cfg.TextQuery)
}
