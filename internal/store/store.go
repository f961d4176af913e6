// internal/store/store.go
package store

import (
	"context"
	"sync"
	"time"

	apperrors "pixisphere/internal/common/errors"
	"pixisphere/internal/common/logger"
	"pixisphere/internal/common/metrics"
	"pixisphere/internal/common/observability"
	"pixisphere/internal/models"
	"pixisphere/internal/pipeline"
	"pixisphere/internal/search"

	"github.com/google/uuid"
)

const (
	modeAll   = "all"
	modeQuery = "query"
)

// Collection is the part of the upstream API the store reads.
type Collection interface {
	ListPhotographers(ctx context.Context) ([]models.Photographer, error)
}

// State is a snapshot of the listing. Slices are replaced on every load and
// never modified afterwards, so snapshots may be shared freely.
type State struct {
	Collection []models.Photographer
	Featured   []models.Photographer
	IsLoading  bool
	Query      string
	Err        error

	// Version increases with every published change.
	Version uint64
	// Loaded is set once any load has resolved.
	Loaded bool
}

// Subscriber is called with the new state after every change.
type Subscriber func(State)

// Store holds the listing state for the whole application. Loads are not
// sequenced: when loads overlap, the one that resolves last wins.
type Store struct {
	source   Collection
	matcher  search.TextSearch
	featured int
	logger   logger.Logger
	errors   *apperrors.ErrorHandler
	obs      *observability.Observability

	mu     sync.Mutex
	state  State
	nextID int
	subs   map[int]Subscriber

	// notifyMu is held from mutation through delivery so subscribers see
	// snapshots in Version order and end on the same state as State().
	notifyMu sync.Mutex
}

type Option func(*Store)

// WithFeaturedCount overrides how many top rated records are featured.
func WithFeaturedCount(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.featured = n
		}
	}
}

func WithObservability(obs *observability.Observability) Option {
	return func(s *Store) {
		s.obs = obs
	}
}

func New(source Collection, matcher search.TextSearch, log logger.Logger, opts ...Option) *Store {
	log = log.WithFields(map[string]interface{}{"component": "store"})
	s := &Store{
		source:   source,
		matcher:  matcher,
		featured: pipeline.TopCount,
		logger:   log,
		errors:   apperrors.NewErrorHandler(log),
		subs:     make(map[int]Subscriber),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Load fetches the collection and publishes it. A non-empty query narrows
// and reorders the collection through the text matcher; featured is always
// computed from the full fetch. Fetch failures are logged and leave an
// empty listing. Load never returns an error.
func (s *Store) Load(ctx context.Context, query string) {
	loadID := uuid.NewString()
	mode := modeAll
	if query != "" {
		mode = modeQuery
	}
	log := s.logger.WithFields(map[string]interface{}{
		"loadId": loadID,
		"mode":   mode,
	})

	start := time.Now()
	metrics.StoreLoadsInFlight.Inc()
	defer metrics.StoreLoadsInFlight.Dec()

	s.update(func(st *State) {
		st.IsLoading = true
	})

	fetched, err := s.source.ListPhotographers(ctx)
	if err != nil {
		s.errors.Handle("store.load", err, map[string]interface{}{
			"loadId": loadID,
			"query":  query,
		})
		s.update(func(st *State) {
			st.Collection = []models.Photographer{}
			st.Featured = []models.Photographer{}
			st.IsLoading = false
			st.Query = query
			st.Err = err
			st.Loaded = true
		})
		s.record(ctx, mode, metrics.OutcomeFailure, start, 0)
		return
	}

	collection := fetched
	if query != "" {
		collection = s.matcher.Rank(fetched, query)
	}
	featured := pipeline.TopRated(fetched, s.featured)

	s.update(func(st *State) {
		st.Collection = collection
		st.Featured = featured
		st.IsLoading = false
		st.Query = query
		st.Err = nil
		st.Loaded = true
	})
	s.record(ctx, mode, metrics.OutcomeSuccess, start, len(collection))

	log.Info("listing loaded", map[string]interface{}{
		"fetched":    len(fetched),
		"collection": len(collection),
		"durationMs": time.Since(start).Milliseconds(),
	})
}

// update applies fn under the lock and notifies subscribers outside it.
// Subscribers must not call Load synchronously.
func (s *Store) update(fn func(*State)) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	fn(&s.state)
	s.state.Version++
	snapshot := s.state
	subs := make([]Subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snapshot)
	}
}

func (s *Store) record(ctx context.Context, mode, outcome string, start time.Time, size int) {
	metrics.StoreLoads.WithLabelValues(mode, outcome).Inc()
	metrics.StoreCollectionSize.Set(float64(size))
	s.obs.RecordLoad(ctx, mode, outcome, time.Since(start))
}
