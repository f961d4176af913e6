// internal/views/detail/handler.go
package detail

import (
	"context"
	"net/http"

	apperrors "pixisphere/internal/common/errors"
	"pixisphere/internal/common/logger"
	"pixisphere/internal/models"

	"github.com/labstack/echo/v4"
)

const (
	TemplateName = "detail.html"
	loadingTitle = "Loading..."
)

// Fetcher is the detail side of the upstream API.
type Fetcher interface {
	GetPhotographer(ctx context.Context, id string) (*models.Photographer, error)
}

type Handler struct {
	config  *Config
	fetcher Fetcher
	logger  logger.Logger
	errors  *apperrors.ErrorHandler
}

func NewHandler(config *Config, fetcher Fetcher, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"view": "detail"})
	return &Handler{
		config:  config,
		fetcher: fetcher,
		logger:  log,
		errors:  apperrors.NewErrorHandler(log),
	}
}

// Handle renders GET /photographer/:id. A failed or empty fetch renders the
// loading placeholder; it is never turned into an error response.
func (h *Handler) Handle(c echo.Context) error {
	id := c.Param("id")

	ctx := c.Request().Context()
	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}

	p, err := h.fetcher.GetPhotographer(ctx, id)
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		h.logger.Debug("photographer not found", map[string]interface{}{"id": id})
		return c.Render(http.StatusOK, TemplateName, LoadingPage())
	case err != nil:
		h.errors.Handle("detail.fetch", err, map[string]interface{}{"id": id})
		return c.Render(http.StatusOK, TemplateName, LoadingPage())
	}

	return c.Render(http.StatusOK, TemplateName, BuildPage(p))
}

// LoadingPage is the placeholder shown until a record is available.
func LoadingPage() Page {
	return Page{Title: loadingTitle, Loading: true}
}

func BuildPage(p *models.Photographer) Page {
	if p.IsEmpty() {
		return LoadingPage()
	}
	return Page{
		Title:     p.Name,
		Name:      p.Name,
		Bio:       p.Bio,
		Price:     p.Price,
		Styles:    p.Styles,
		Portfolio: p.Portfolio,
		Reviews:   p.Reviews,
	}
}
