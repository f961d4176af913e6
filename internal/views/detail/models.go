// internal/views/detail/models.go
package detail

import "pixisphere/internal/models"

// Page is the detail view model. While Loading is set nothing else is
// rendered.
type Page struct {
	Title     string
	Loading   bool
	Name      string
	Bio       string
	Price     float64
	Styles    []string
	Portfolio []string
	Reviews   []models.Review
}
