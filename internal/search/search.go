// internal/search/search.go
package search

import (
	"fmt"
	"strings"

	"pixisphere/internal/models"
)

// Engine names accepted by New.
const (
	EngineFuse        = "fuse"
	EngineSubsequence = "subsequence"
)

// DefaultThreshold is the fuse engine's error tolerance.
const DefaultThreshold = 0.3

// TextSearch ranks a collection against a free-text query. Implementations
// return the matching subset best first; an empty query returns items as-is.
type TextSearch interface {
	Rank(items []models.Photographer, query string) []models.Photographer
}

// New builds the engine named by engine.
func New(engine string, threshold float64) (TextSearch, error) {
	switch strings.ToLower(engine) {
	case "", EngineFuse:
		return NewFuse(threshold), nil
	case EngineSubsequence:
		return NewSubsequence(), nil
	default:
		return nil, fmt.Errorf("unknown search engine %q", engine)
	}
}

// fieldValues returns the searchable values of p. Tags and styles contribute
// one value per element.
func fieldValues(p *models.Photographer) []string {
	values := make([]string, 0, 2+len(p.Tags)+len(p.Styles))
	values = append(values, p.Name, p.Location)
	values = append(values, p.Tags...)
	values = append(values, p.Styles...)
	return values
}
