package schedule

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Engine pairs one manager's ledger with its poller.
type Engine struct {
	Ledger *DefaultLedger
	Poller *Poller
}

// SelectVenue points the engine at a venue and (re)starts its poller.
func (e *Engine) SelectVenue(venueID string) {
	e.Poller.Start(venueID)
}

// VenueSelected reports whether the engine is currently bound to a venue.
func (e *Engine) VenueSelected() bool {
	return e.Poller.VenueID() != ""
}

// Registry hands out one engine per venue manager. Engines are created
// lazily on first use and torn down together on shutdown.
type Registry struct {
	API      LedgerAPI
	Cache    FallbackCache
	Interval time.Duration
	Logger   *zap.Logger

	mu      sync.Mutex
	engines map[string]*Engine
}

func NewRegistry(api LedgerAPI, cache FallbackCache, interval time.Duration, logger *zap.Logger) *Registry {
	return &Registry{
		API:      api,
		Cache:    cache,
		Interval: interval,
		Logger:   logger,
		engines:  make(map[string]*Engine),
	}
}

// Get returns the engine for a manager, creating it if needed.
func (r *Registry) Get(managerID string) *Engine {
	r.mu.Lock()
	defer r.mu.Unlock()
	if eng, ok := r.engines[managerID]; ok {
		return eng
	}
	ledger := NewLedger(managerID, r.API, r.Cache, r.Logger)
	eng := &Engine{
		Ledger: ledger,
		Poller: NewPoller(ledger, r.Interval, r.Logger),
	}
	r.engines[managerID] = eng
	return eng
}

// Shutdown stops every poller. Called on process teardown.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, eng := range r.engines {
		eng.Poller.Stop()
	}
}
