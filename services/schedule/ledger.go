package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"palco/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultLedger holds one manager's blocked slots in memory. Reads never
// touch the network; the poller and explicit refreshes keep the copy within
// one poll interval of the server.
type DefaultLedger struct {
	API    LedgerAPI
	Cache  FallbackCache
	Logger *zap.Logger

	managerID string

	mu       sync.RWMutex
	entries  []models.BlockedSlot
	detailed map[string][]models.BlockedSlot
	subs     map[int]chan LedgerUpdate
	nextSub  int
}

// NewLedger constructs a ledger bound to one venue manager.
func NewLedger(managerID string, api LedgerAPI, cache FallbackCache, logger *zap.Logger) *DefaultLedger {
	return &DefaultLedger{
		API:       api,
		Cache:     cache,
		Logger:    logger,
		managerID: managerID,
		subs:      make(map[int]chan LedgerUpdate),
	}
}

func (l *DefaultLedger) ManagerID() string {
	return l.managerID
}

// Snapshot returns a copy of the in-memory ledger.
func (l *DefaultLedger) Snapshot() []models.BlockedSlot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.BlockedSlot, len(l.entries))
	copy(out, l.entries)
	return out
}

// Detailed returns the last fetched date-grouped view of the ledger.
func (l *DefaultLedger) Detailed() map[string][]models.BlockedSlot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string][]models.BlockedSlot, len(l.detailed))
	for date, blocks := range l.detailed {
		out[date] = append([]models.BlockedSlot(nil), blocks...)
	}
	return out
}

// IsBlocked reports whether any ledger entry blocks the given hour. The
// check matches on hour alone, independent of date: once an hour is blocked
// anywhere in the ledger the manager grid shows it blocked on every date.
// The resolver's date-aware matching is unaffected.
func (l *DefaultLedger) IsBlocked(hour int) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, b := range l.entries {
		if b.Hour == hour {
			return true
		}
	}
	return false
}

// Blocks satisfies the availability resolver's BlockSource. It serves the
// in-memory copy and only fetches when the ledger has never been loaded.
func (l *DefaultLedger) Blocks(ctx context.Context) ([]models.BlockedSlot, error) {
	l.mu.RLock()
	loaded := l.entries != nil
	l.mu.RUnlock()
	if !loaded {
		if err := l.Refresh(ctx); err != nil {
			return l.Snapshot(), err
		}
	}
	return l.Snapshot(), nil
}

// Toggle flips the blocked state of one hour. The new state is applied to
// the in-memory ledger and the fallback cache immediately, then confirmed by
// an authoritative refetch on success or undone by an inverse apply when the
// remote call is rejected.
func (l *DefaultLedger) Toggle(ctx context.Context, date string, hour int) (bool, error) {
	if l.managerID == "" {
		return false, ErrNoVenueSelected
	}
	if hour < 0 || hour > 23 {
		return false, NewPreconditionError(fmt.Sprintf("hour %d out of range", hour))
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return false, NewPreconditionError(fmt.Sprintf("invalid date %q", date))
	}

	wasBlocked := l.IsBlocked(hour)

	// Optimistic apply: make the new state visible before the round trip.
	var removed []models.BlockedSlot
	var pending models.BlockedSlot
	l.mu.Lock()
	if wasBlocked {
		kept := l.entries[:0]
		for _, b := range l.entries {
			if b.Hour == hour {
				removed = append(removed, b)
				continue
			}
			kept = append(kept, b)
		}
		l.entries = kept
	} else {
		pending = models.NewSpecificBlock(l.managerID, date, hour)
		pending.ID = "pending-" + uuid.New().String()
		l.entries = append(l.entries, pending)
	}
	l.mu.Unlock()
	l.storeFallback(ctx)
	l.notify()

	var err error
	if wasBlocked {
		err = l.API.UnblockSlot(ctx, l.managerID, date, hour)
	} else {
		err = l.API.BlockSlot(ctx, l.managerID, date, hour)
	}

	if err != nil {
		// Compensate: inverse-apply the optimistic change rather than
		// discarding unrelated local state with a blind refetch.
		l.mu.Lock()
		if wasBlocked {
			l.entries = append(l.entries, removed...)
		} else {
			kept := l.entries[:0]
			for _, b := range l.entries {
				if b.ID == pending.ID {
					continue
				}
				kept = append(kept, b)
			}
			l.entries = kept
		}
		l.mu.Unlock()
		l.storeFallback(ctx)
		l.notify()
		if l.Logger != nil {
			l.Logger.Warn("slot toggle rejected by server",
				zap.String("managerId", l.managerID),
				zap.String("date", date),
				zap.Int("hour", hour),
				zap.Error(err))
		}
		return wasBlocked, NewSyncError(fmt.Sprintf("failed to %s slot: %v", verb(wasBlocked), err))
	}

	// Reconcile: replace local state with the authoritative ledger. The
	// detailed view is refreshed on every toggle so date-grouped screens
	// stay consistent.
	if err := l.Refresh(ctx); err != nil && l.Logger != nil {
		l.Logger.Warn("post-toggle refresh failed", zap.Error(err))
	}
	if err := l.RefreshDetailed(ctx); err != nil && l.Logger != nil {
		l.Logger.Warn("post-toggle detailed refresh failed", zap.Error(err))
	}
	return !wasBlocked, nil
}

func verb(wasBlocked bool) string {
	if wasBlocked {
		return "unblock"
	}
	return "block"
}

// UnblockByID removes one ledger entry by id and reconciles.
func (l *DefaultLedger) UnblockByID(ctx context.Context, id string) error {
	if id == "" {
		return NewPreconditionError("missing block id")
	}
	if err := l.API.UnblockSlotByID(ctx, id); err != nil {
		return NewSyncError(fmt.Sprintf("failed to unblock slot %s: %v", id, err))
	}
	if err := l.Refresh(ctx); err != nil {
		return err
	}
	return l.RefreshDetailed(ctx)
}

// Reset deletes every block for the venue and reconciles.
func (l *DefaultLedger) Reset(ctx context.Context) error {
	if l.managerID == "" {
		return ErrNoVenueSelected
	}
	if err := l.API.ResetConfiguration(ctx, l.managerID); err != nil {
		return NewSyncError(fmt.Sprintf("failed to reset configuration: %v", err))
	}
	if err := l.Refresh(ctx); err != nil {
		return err
	}
	return l.RefreshDetailed(ctx)
}

// Refresh replaces the in-memory ledger with the server copy. On failure it
// retries once, then falls back to the cached copy, then to an empty ledger;
// the error is still returned so callers can surface a non-blocking alert.
func (l *DefaultLedger) Refresh(ctx context.Context) error {
	blocks, err := l.API.BlockedSlots(ctx, l.managerID)
	if err != nil {
		blocks, err = l.API.BlockedSlots(ctx, l.managerID)
	}
	if err == nil {
		l.mu.Lock()
		l.entries = blocks
		l.mu.Unlock()
		l.storeFallback(ctx)
		l.notify()
		return nil
	}

	cached, cacheErr := l.Cache.Load(ctx, l.managerID)
	if cacheErr != nil {
		cached = nil
	}
	l.mu.Lock()
	l.entries = cached
	l.mu.Unlock()
	l.notify()
	if l.Logger != nil {
		l.Logger.Warn("ledger fetch failed, serving fallback cache",
			zap.String("managerId", l.managerID),
			zap.Int("cachedBlocks", len(cached)),
			zap.Error(err))
	}
	return NewSyncError(fmt.Sprintf("failed to fetch blocked slots: %v", err))
}

// RefreshDetailed replaces the date-grouped view with the server copy.
func (l *DefaultLedger) RefreshDetailed(ctx context.Context) error {
	grouped, err := l.API.BlockedSlotsDetailed(ctx, l.managerID)
	if err != nil {
		return NewSyncError(fmt.Sprintf("failed to fetch detailed blocked slots: %v", err))
	}
	l.mu.Lock()
	l.detailed = grouped
	l.mu.Unlock()
	return nil
}

// Subscribe registers a listener for ledger changes. The returned function
// cancels the subscription. Slow listeners miss intermediate updates rather
// than blocking the ledger.
func (l *DefaultLedger) Subscribe() (<-chan LedgerUpdate, func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextSub
	l.nextSub++
	ch := make(chan LedgerUpdate, 1)
	l.subs[id] = ch
	cancel := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if sub, ok := l.subs[id]; ok {
			delete(l.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (l *DefaultLedger) notify() {
	l.mu.RLock()
	defer l.mu.RUnlock()
	update := LedgerUpdate{Blocks: append([]models.BlockedSlot(nil), l.entries...)}
	for _, ch := range l.subs {
		select {
		case ch <- update:
		default:
		}
	}
}

func (l *DefaultLedger) storeFallback(ctx context.Context) {
	if l.Cache == nil {
		return
	}
	if err := l.Cache.Store(ctx, l.managerID, l.Snapshot()); err != nil && l.Logger != nil {
		l.Logger.Warn("failed to store fallback ledger copy", zap.Error(err))
	}
}
