// internal/models/filter.go
package models

import "strings"

// SortMode selects the listing order.
type SortMode string

const (
	SortDefault     SortMode = "default"
	SortPriceAsc    SortMode = "priceAsc"
	SortRatingDesc  SortMode = "ratingDesc"
	SortRecentFirst SortMode = "recentFirst"
)

// sortAliases maps accepted names, including the listing page option values,
// to sort modes.
var sortAliases = map[string]SortMode{
	"":                SortDefault,
	"default":         SortDefault,
	"priceasc":        SortPriceAsc,
	"pricelowtohigh":  SortPriceAsc,
	"ratingdesc":      SortRatingDesc,
	"ratinghightolow": SortRatingDesc,
	"recentfirst":     SortRecentFirst,
	"recentlyadded":   SortRecentFirst,
}

// ParseSortMode resolves a sort name. Unknown names fall back to SortDefault.
func ParseSortMode(s string) SortMode {
	if m, ok := sortAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m
	}
	return SortDefault
}

// DefaultPriceCeiling is the top of the price slider.
const DefaultPriceCeiling = 100000

// FilterConfig is the listing page's filter and sort state. It is owned by
// the request and never persisted.
type FilterConfig struct {
	TextQuery      string
	PriceCeiling   float64
	MinRating      float64
	RequiredStyles []string
	City           string
	SortMode       SortMode
}

// DefaultFilterConfig matches the listing page's initial controls.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		PriceCeiling: DefaultPriceCeiling,
		SortMode:     SortDefault,
	}
}

// HasStyle reports whether style is among the required styles.
func (f FilterConfig) HasStyle(style string) bool {
	for _, s := range f.RequiredStyles {
		if s == style {
			return true
		}
	}
	return false
}

// SearchActive reports whether the page is in search-results mode. Any
// non-empty query counts, whitespace included.
func (f FilterConfig) SearchActive() bool {
	return f.TextQuery != ""
}
