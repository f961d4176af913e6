// internal/views/listing/models.go
package listing

import "pixisphere/internal/models"

// Page is the listing view model.
type Page struct {
	Query        string
	Filters      models.FilterConfig
	Controls     Controls
	SearchActive bool
	Message      string

	Loading       bool
	SkeletonCount int

	// Top is the hero section; List is the rest, or every result in
	// search mode.
	Top        []Card
	List       []Card
	HasResults bool
	Total      int
}

type Controls struct {
	PriceMax  float64
	PriceStep float64
	Ratings   []Option
	Cities    []Option
	Sorts     []Option
	Styles    []Option
}

type Option struct {
	Value    interface{}
	Label    string
	Selected bool
}

// Card is one photographer as shown on the listing page, with display
// fallbacks already applied.
type Card struct {
	ID         string
	Name       string
	Bio        string
	Location   string
	Rating     float64
	Price      float64
	Tags       []string
	ProfilePic string
	URL        string
}
