package schedule

import (
	"context"

	"palco/models"
)

// LedgerAPI is the slice of the upstream client the ledger mutates through.
type LedgerAPI interface {
	BlockedSlots(ctx context.Context, managerID string) ([]models.BlockedSlot, error)
	BlockedSlotsDetailed(ctx context.Context, managerID string) (map[string][]models.BlockedSlot, error)
	BlockSlot(ctx context.Context, managerID, date string, hour int) error
	UnblockSlot(ctx context.Context, managerID, date string, hour int) error
	UnblockSlotByID(ctx context.Context, id string) error
	ResetConfiguration(ctx context.Context, managerID string) error
}

// FallbackCache is the device-local copy of the ledger, read only when the
// remote fetch fails. It is never invalidated by other clients' writes, so
// a client running on cache alone can show stale blocks until its next
// successful fetch.
type FallbackCache interface {
	Store(ctx context.Context, managerID string, blocks []models.BlockedSlot) error
	Load(ctx context.Context, managerID string) ([]models.BlockedSlot, error)
}

// LedgerUpdate is pushed to subscribers whenever the in-memory ledger
// changes, whether from a poll, a toggle, or a compensation.
type LedgerUpdate struct {
	Blocks []models.BlockedSlot
}

// LedgerService is the manager-facing blocked-slot ledger. It applies
// mutations optimistically, reconciles against the authoritative server
// copy, and notifies subscribers on every change so a push transport could
// replace the poller without touching resolver or selector logic.
type LedgerService interface {
	ManagerID() string
	Snapshot() []models.BlockedSlot
	Detailed() map[string][]models.BlockedSlot
	IsBlocked(hour int) bool
	Toggle(ctx context.Context, date string, hour int) (bool, error)
	UnblockByID(ctx context.Context, id string) error
	Reset(ctx context.Context) error
	Refresh(ctx context.Context) error
	RefreshDetailed(ctx context.Context) error
	Blocks(ctx context.Context) ([]models.BlockedSlot, error)
	Subscribe() (<-chan LedgerUpdate, func())
}
