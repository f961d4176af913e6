// internal/server/server.go
package server

import (
	"context"
	"errors"
	"net/http"

	"pixisphere/internal/common/config"
	"pixisphere/internal/common/logger"
	"pixisphere/internal/store"
	"pixisphere/internal/views"
	"pixisphere/internal/views/detail"
	"pixisphere/internal/views/listing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the components the routes are served from.
type Deps struct {
	Store     *store.Store
	SearchBar SearchInput
	Fetcher   detail.Fetcher
	Broker    *Broker
	// Metrics serves the metrics route. Nil uses the default registry.
	Metrics http.Handler
}

// SearchInput is the search bar as the HTTP layer drives it.
type SearchInput interface {
	Input(value string)
	Value() string
}

type Server struct {
	echo   *echo.Echo
	config *config.Config
	deps   Deps
	logger logger.Logger

	unsubscribe func()
}

func New(cfg *config.Config, deps Deps, log logger.Logger) *Server {
	log = log.WithFields(map[string]interface{}{"component": "server"})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = views.MustRenderer()

	e.Use(middleware.Recover())
	e.Use(requestID())
	e.Use(requestLogger(log))

	if deps.Broker == nil {
		deps.Broker = NewBroker()
	}
	if deps.Metrics == nil {
		deps.Metrics = promhttp.Handler()
	}

	s := &Server{
		echo:   e,
		config: cfg,
		deps:   deps,
		logger: log,
	}
	s.unsubscribe = deps.Store.Subscribe(deps.Broker.StateChanged)
	s.routes()
	return s
}

func (s *Server) routes() {
	listingHandler := listing.NewHandler(listing.LoadConfig(s.config.Listing), s.deps.Store, s.logger)
	detailHandler := detail.NewHandler(detail.LoadConfig(), s.deps.Fetcher, s.logger)

	s.echo.GET("/", listingHandler.Handle)
	s.echo.GET("/photographer/:id", detailHandler.Handle)
	s.echo.POST("/search/input", s.handleSearchInput)
	s.echo.GET("/events", s.handleEvents)
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/ready", s.handleReady)

	if s.config.Metrics.Enabled {
		s.echo.GET(s.config.Metrics.Path, echo.WrapHandler(s.deps.Metrics))
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("server starting", map[string]interface{}{
		"address": s.config.Server.Address,
	})
	if err := s.echo.Start(s.config.Server.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown closes event streams and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.deps.Broker.Close()
	s.logger.Info("server stopping", nil)
	return s.echo.Shutdown(ctx)
}
