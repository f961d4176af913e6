// internal/views/listing/filters.go
package listing

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"pixisphere/internal/models"
)

// ParseFilters reads the filter controls from query parameters. Missing or
// malformed values keep their defaults. The second result reports whether
// q was present.
func ParseFilters(values url.Values, priceMax float64) (models.FilterConfig, bool) {
	cfg := models.DefaultFilterConfig()
	cfg.PriceCeiling = priceMax

	_, hasQuery := values["q"]
	cfg.TextQuery = values.Get("q")

	if v, ok := parseFinite(values.Get("price")); ok && v >= 0 {
		cfg.PriceCeiling = v
	}
	if v, ok := parseFinite(values.Get("rating")); ok {
		cfg.MinRating = v
	}
	for _, s := range values["style"] {
		if s = strings.TrimSpace(s); s != "" && !cfg.HasStyle(s) {
			cfg.RequiredStyles = append(cfg.RequiredStyles, s)
		}
	}
	cfg.City = values.Get("city")
	cfg.SortMode = models.ParseSortMode(values.Get("sort"))
	return cfg, hasQuery
}

// parseFinite rejects NaN and infinities, which ParseFloat accepts.
func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Encode is the inverse of ParseFilters. Default values are omitted.
func Encode(cfg models.FilterConfig, priceMax float64) url.Values {
	v := url.Values{}
	if cfg.TextQuery != "" {
		v.Set("q", cfg.TextQuery)
	}
	if cfg.PriceCeiling != priceMax {
		v.Set("price", strconv.FormatFloat(cfg.PriceCeiling, 'f', -1, 64))
	}
	if cfg.MinRating != 0 {
		v.Set("rating", strconv.FormatFloat(cfg.MinRating, 'f', -1, 64))
	}
	for _, s := range cfg.RequiredStyles {
		v.Add("style", s)
	}
	if cfg.City != "" {
		v.Set("city", cfg.City)
	}
	if cfg.SortMode != models.SortDefault && cfg.SortMode != "" {
		v.Set("sort", string(cfg.SortMode))
	}
	return v
}
