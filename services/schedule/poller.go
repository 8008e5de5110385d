package schedule

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Refresher is what the poller drives; the ledger satisfies it.
type Refresher interface {
	Refresh(ctx context.Context) error
	RefreshDetailed(ctx context.Context) error
}

// Poller keeps a ledger converged with the server while a venue is
// selected: an immediate fetch on start, a fetch every interval after that,
// and a fetch whenever the app returns to the foreground. Polling stands in
// for a push channel, so clients sharing a venue converge within one poll
// interval rather than instantaneously.
type Poller struct {
	Ledger   Refresher
	Interval time.Duration
	Logger   *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	wake    chan struct{}
	venueID string
}

func NewPoller(ledger Refresher, interval time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Poller{
		Ledger:   ledger,
		Interval: interval,
		Logger:   logger,
	}
}

// Start begins polling for the given venue. A running loop for a previous
// venue is stopped first, so switching venues restarts the timer.
func (p *Poller) Start(venueID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.wake = make(chan struct{}, 1)
	p.venueID = venueID
	go p.loop(ctx, p.wake)
}

// Stop halts the polling loop. Safe to call repeatedly.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.venueID = ""
}

// Wake forces an immediate refresh, used on app-foreground transitions.
func (p *Poller) Wake() {
	p.mu.Lock()
	wake := p.wake
	p.mu.Unlock()
	if wake == nil {
		return
	}
	select {
	case wake <- struct{}{}:
	default:
	}
}

// VenueID returns the venue currently being polled, or "".
func (p *Poller) VenueID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel == nil {
		return ""
	}
	return p.venueID
}

func (p *Poller) loop(ctx context.Context, wake <-chan struct{}) {
	p.refresh(ctx)

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh(ctx)
		case <-wake:
			p.refresh(ctx)
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	if err := p.Ledger.Refresh(ctx); err != nil {
		if p.Logger != nil {
			p.Logger.Debug("poll refresh failed", zap.Error(err))
		}
		return
	}
	if err := p.Ledger.RefreshDetailed(ctx); err != nil && p.Logger != nil {
		p.Logger.Debug("poll detailed refresh failed", zap.Error(err))
	}
}
