// internal/searchbar/searchbar.go
package searchbar

import (
	"context"
	"sync"
	"time"

	"pixisphere/internal/common/logger"
	"pixisphere/internal/common/metrics"
	"pixisphere/internal/debounce"
)

// DefaultDelay is the quiet period before a query is submitted.
const DefaultDelay = 300 * time.Millisecond

// Loader is the store operation a settled query triggers.
type Loader interface {
	Load(ctx context.Context, query string)
}

// SearchBar buffers keystrokes and submits the last value once input has
// been quiet for the delay: first to the loader, then to onChange.
type SearchBar struct {
	loader   Loader
	onChange func(string)
	logger   logger.Logger
	ctx      context.Context

	debouncer *debounce.Debouncer[string]

	mu      sync.RWMutex
	pending string
	value   string
}

type Option func(*config)

type config struct {
	clock    debounce.Clock
	delay    time.Duration
	onChange func(string)
	ctx      context.Context
}

// WithClock sets the clock the debounce timer runs on.
func WithClock(clock debounce.Clock) Option {
	return func(c *config) { c.clock = clock }
}

func WithDelay(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithOnChange registers the settled-value notification.
func WithOnChange(fn func(string)) Option {
	return func(c *config) { c.onChange = fn }
}

// WithContext sets the context loads run under.
func WithContext(ctx context.Context) Option {
	return func(c *config) { c.ctx = ctx }
}

func New(loader Loader, log logger.Logger, opts ...Option) *SearchBar {
	cfg := &config{
		clock: debounce.RealClock{},
		delay: DefaultDelay,
		ctx:   context.Background(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	sb := &SearchBar{
		loader:   loader,
		onChange: cfg.onChange,
		logger:   log.WithFields(map[string]interface{}{"component": "searchbar"}),
		ctx:      cfg.ctx,
	}
	sb.debouncer = debounce.New(cfg.clock, cfg.delay, sb.settle)
	return sb
}

// Input records a keystroke and restarts the quiet period.
func (sb *SearchBar) Input(value string) {
	metrics.SearchInputs.WithLabelValues("received").Inc()
	sb.mu.Lock()
	sb.pending = value
	sb.mu.Unlock()
	sb.debouncer.Call(value)
}

// Pending is the latest raw input, settled or not.
func (sb *SearchBar) Pending() string {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return sb.pending
}

// Value is the last settled query.
func (sb *SearchBar) Value() string {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return sb.value
}

// Stop cancels a query that has not settled yet.
func (sb *SearchBar) Stop() {
	sb.debouncer.Stop()
}

func (sb *SearchBar) settle(value string) {
	metrics.SearchInputs.WithLabelValues("fired").Inc()
	sb.mu.Lock()
	sb.value = value
	sb.mu.Unlock()

	sb.logger.Debug("search settled", map[string]interface{}{"query": value})

	sb.loader.Load(sb.ctx, value)
	if sb.onChange != nil {
		sb.onChange(value)
	}
}
