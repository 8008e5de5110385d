package models

import "time"

// BlockKind discriminates the two blocked-slot variants. A block is either
// recurring (tied to a weekday, repeating every week) or specific (tied to
// one exact calendar date), never both and never neither.
type BlockKind string

const (
	BlockRecurring BlockKind = "recurring"
	BlockSpecific  BlockKind = "specific"
)

// BlockedSlot marks one hour of a venue's calendar as unavailable.
type BlockedSlot struct {
	ID            string       `json:"id"`
	ManagerID     string       `json:"managerId"`
	Hour          int          `json:"hour"` // 0-23
	Kind          BlockKind    `json:"kind"`
	Weekday       time.Weekday `json:"dayOfWeek"`               // meaningful when Kind == BlockRecurring
	Date          string       `json:"date,omitempty"`          // "2006-01-02", set when Kind == BlockSpecific
	SourceEventID string       `json:"sourceEventId,omitempty"` // set when derived from an approved event request
	CreatedAt     time.Time    `json:"createdAt,omitempty"`
}

// NewRecurringBlock builds a weekly block for the given weekday and hour.
func NewRecurringBlock(managerID string, weekday time.Weekday, hour int) BlockedSlot {
	return BlockedSlot{
		ManagerID: managerID,
		Hour:      hour,
		Kind:      BlockRecurring,
		Weekday:   weekday,
		CreatedAt: time.Now(),
	}
}

// NewSpecificBlock builds a one-off block for the given date and hour.
func NewSpecificBlock(managerID, date string, hour int) BlockedSlot {
	return BlockedSlot{
		ManagerID: managerID,
		Hour:      hour,
		Kind:      BlockSpecific,
		Date:      date,
		CreatedAt: time.Now(),
	}
}

// AppliesOn reports whether the block removes its hour on the given date.
// Recurring blocks match every date falling on their weekday; specific
// blocks match their exact date only.
func (b BlockedSlot) AppliesOn(date string) bool {
	switch b.Kind {
	case BlockRecurring:
		d, err := time.Parse(DateLayout, date)
		if err != nil {
			return false
		}
		return d.Weekday() == b.Weekday
	case BlockSpecific:
		return b.Date == date
	}
	return false
}
