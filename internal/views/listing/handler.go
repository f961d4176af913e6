// internal/views/listing/handler.go
package listing

import (
	"net/http"
	"net/url"

	"pixisphere/internal/common/logger"
	"pixisphere/internal/models"
	"pixisphere/internal/pipeline"
	"pixisphere/internal/store"
	"pixisphere/internal/views"

	"github.com/labstack/echo/v4"
)

const (
	TemplateName = "listing.html"

	bioFallbackTop  = "Top-rated photographer"
	bioFallbackList = "Photographer"
	locationMissing = "Location not specified"
)

// StateReader is the store as the listing page sees it.
type StateReader interface {
	State() store.State
}

type Handler struct {
	config *Config
	store  StateReader
	logger logger.Logger
}

func NewHandler(config *Config, st StateReader, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		store:  st,
		logger: log.WithFields(map[string]interface{}{"view": "listing"}),
	}
}

// Handle renders GET /. Search mode comes from the request's own q
// parameter only.
func (h *Handler) Handle(c echo.Context) error {
	filters, _ := ParseFilters(c.QueryParams(), h.config.PriceMax)

	page := BuildPage(h.store.State(), filters, h.config)

	h.logger.Debug("listing rendered", map[string]interface{}{
		"query":   filters.TextQuery,
		"total":   page.Total,
		"loading": page.Loading,
	})
	return c.Render(http.StatusOK, TemplateName, page)
}

// BuildPage derives the listing view model from a store snapshot.
func BuildPage(st store.State, filters models.FilterConfig, config *Config) Page {
	result := pipeline.Apply(st.Collection, filters)

	page := Page{
		Query:         filters.TextQuery,
		Filters:       filters,
		Controls:      buildControls(st.Collection, filters, config),
		SearchActive:  filters.SearchActive(),
		Message:       pipeline.ResultMessage(filters, len(result)),
		Loading:       st.IsLoading,
		SkeletonCount: config.SkeletonCount,
		HasResults:    len(result) > 0,
		Total:         len(result),
	}

	if page.SearchActive {
		page.List = cards(result, bioFallbackList)
		return page
	}

	top, rest := pipeline.Split(result)
	page.Top = cards(top, bioFallbackTop)
	page.List = cards(rest, bioFallbackList)
	return page
}

func cards(items []models.Photographer, bioFallback string) []Card {
	out := make([]Card, 0, len(items))
	for _, p := range items {
		c := Card{
			ID:         p.ID.String(),
			Name:       p.Name,
			Bio:        p.Bio,
			Location:   p.Location,
			Rating:     p.Rating,
			Price:      p.Price,
			Tags:       p.Tags,
			ProfilePic: p.ProfilePic,
			URL:        "/photographer/" + url.PathEscape(p.ID.String()),
		}
		if c.Bio == "" {
			c.Bio = bioFallback
		}
		if c.Location == "" {
			c.Location = locationMissing
		}
		out = append(out, c)
	}
	return out
}

var sortOptions = []struct {
	mode  models.SortMode
	label string
}{
	{models.SortDefault, "Default"},
	{models.SortPriceAsc, "Price: Low to High"},
	{models.SortRatingDesc, "Rating: High to Low"},
	{models.SortRecentFirst, "Recently Added"},
}

func buildControls(collection []models.Photographer, filters models.FilterConfig, config *Config) Controls {
	c := Controls{
		PriceMax:  config.PriceMax,
		PriceStep: config.PriceStep,
	}

	for _, r := range config.RatingOptions {
		label := "All Ratings"
		if r > 0 {
			label = views.FormatNumber(r) + "+"
		}
		c.Ratings = append(c.Ratings, Option{Value: r, Label: label, Selected: r == filters.MinRating})
	}
	for _, city := range pipeline.CityOptions(collection) {
		c.Cities = append(c.Cities, Option{Value: city, Label: city, Selected: city == filters.City})
	}
	for _, s := range sortOptions {
		c.Sorts = append(c.Sorts, Option{Value: string(s.mode), Label: s.label, Selected: s.mode == filters.SortMode})
	}
	for _, style := range config.Styles {
		c.Styles = append(c.Styles, Option{Value: style, Label: style, Selected: filters.HasStyle(style)})
	}
	return c
}
