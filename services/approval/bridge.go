package approval

import (
	"context"
	"encoding/json"
	"fmt"

	"palco/models"
	"palco/services/schedule"
	"palco/venueapi"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeDerivedBlock is the asynq task type for approval-derived blocks.
const TypeDerivedBlock = "approval:block"

// API is the slice of the upstream client the bridge consumes.
type API interface {
	ApproveRequest(ctx context.Context, requestID string) error
	CreateEventBlock(ctx context.Context, payload venueapi.EventBlockPayload) error
}

// Enqueuer is the slice of the asynq client the bridge enqueues through.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// DerivedBlockPayload is the asynq task body for a derived block.
type DerivedBlockPayload struct {
	ManagerID     string `json:"managerId"`
	Date          string `json:"date"`
	Hour          int    `json:"hour"`
	SourceEventID string `json:"sourceEventId"`
}

// NewDerivedBlockTask wraps a payload into an asynq task.
func NewDerivedBlockTask(p DerivedBlockPayload) (*asynq.Task, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeDerivedBlock, raw), nil
}

// Bridge turns a successful event-request approval into a specific blocked
// slot for the requested date and hour. A failed block never rolls back the
// approval; it surfaces as a warning on an otherwise successful result.
type Bridge struct {
	API      API
	Registry *schedule.Registry
	Queue    Enqueuer
	Logger   *zap.Logger
}

// Approve approves the request upstream and then derives the block. An
// approval failure is a real error; everything after it degrades to a
// warning.
func (b *Bridge) Approve(ctx context.Context, req models.EventRequest) (models.BlockResult, error) {
	if req.ID == "" {
		return models.BlockResult{}, fmt.Errorf("missing request id")
	}
	if err := b.API.ApproveRequest(ctx, req.ID); err != nil {
		return models.BlockResult{}, fmt.Errorf("failed to approve request %s: %w", req.ID, err)
	}
	return b.OnRequestApproved(ctx, req), nil
}

// OnRequestApproved derives the calendar block for an already-approved
// request. The block is tagged with the request id, and the requesting
// manager's ledger is checked for that tag first, so a re-run is a no-op
// instead of a duplicate ledger entry.
func (b *Bridge) OnRequestApproved(ctx context.Context, req models.EventRequest) models.BlockResult {
	result := models.BlockResult{Approved: true}

	ledger := b.ledgerFor(req.ManagerID)
	if ledger != nil && alreadyBlocked(ctx, ledger, req.ID) {
		result.BlockCreated = true
		return result
	}

	payload := DerivedBlockPayload{
		ManagerID:     req.ManagerID,
		Date:          req.Date,
		Hour:          req.Hour,
		SourceEventID: req.ID,
	}

	if b.Queue != nil {
		if task, err := NewDerivedBlockTask(payload); err == nil {
			if _, err := b.Queue.EnqueueContext(ctx, task, asynq.MaxRetry(5)); err == nil {
				// The worker confirms creation; until it does the block is
				// only queued, not on the calendar.
				result.BlockQueued = true
				return result
			} else if b.Logger != nil {
				b.Logger.Warn("failed to enqueue derived block, falling back to direct call",
					zap.String("requestId", req.ID), zap.Error(err))
			}
		}
	}

	if err := b.CreateDerivedBlock(ctx, payload); err != nil {
		if b.Logger != nil {
			b.Logger.Warn("approval succeeded but derived block failed",
				zap.String("requestId", req.ID),
				zap.String("date", req.Date),
				zap.Int("hour", req.Hour),
				zap.Error(err))
		}
		result.Warning = "request approved, but the calendar slot may not be blocked"
		return result
	}
	result.BlockCreated = true
	if ledger != nil {
		if err := ledger.Refresh(ctx); err != nil && b.Logger != nil {
			b.Logger.Warn("post-block ledger refresh failed",
				zap.String("requestId", req.ID), zap.Error(err))
		}
	}
	return result
}

// CreateDerivedBlock submits the specific block through the same upstream
// block endpoint manual toggles use.
func (b *Bridge) CreateDerivedBlock(ctx context.Context, p DerivedBlockPayload) error {
	return b.API.CreateEventBlock(ctx, venueapi.EventBlockPayload{
		ManagerID:     p.ManagerID,
		Date:          p.Date,
		Hour:          p.Hour,
		SourceEventID: p.SourceEventID,
	})
}

func (b *Bridge) ledgerFor(managerID string) *schedule.DefaultLedger {
	if b.Registry == nil || managerID == "" {
		return nil
	}
	return b.Registry.Get(managerID).Ledger
}

func alreadyBlocked(ctx context.Context, ledger *schedule.DefaultLedger, requestID string) bool {
	blocks, _ := ledger.Blocks(ctx)
	for _, blk := range blocks {
		if blk.SourceEventID != "" && blk.SourceEventID == requestID {
			return true
		}
	}
	return false
}
