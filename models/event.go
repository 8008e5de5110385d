package models

// EventRequest is an artist's proposal to use a venue at a given date and
// start hour, pending manager approval.
type EventRequest struct {
	ID         string `json:"id"`
	VenueID    string `json:"venueId"`
	ManagerID  string `json:"managerId"`
	ArtistID   string `json:"artistId,omitempty"`
	ArtistName string `json:"artistName,omitempty"`
	Title      string `json:"title,omitempty"`
	Date       string `json:"date"` // "2006-01-02"
	Hour       int    `json:"hour"` // start hour, 0-23
	Duration   int    `json:"durationHours,omitempty"`
	Status     string `json:"status,omitempty"` // "pending", "approved", "rejected"
}

// ScheduledEvent is an already-approved event sitting on the venue calendar.
// Its hour is implicitly unavailable without being stored as a BlockedSlot.
type ScheduledEvent struct {
	ID      string `json:"id"`
	VenueID string `json:"venueId"`
	Title   string `json:"title,omitempty"`
	Date    string `json:"date"`
	Hour    int    `json:"hour"`
}

// OccupiedHours derives the implicitly unavailable hours for one date from
// the scheduled events of a venue.
func OccupiedHours(events []ScheduledEvent, date string) []int {
	var hours []int
	for _, ev := range events {
		if ev.Date == date {
			hours = append(hours, ev.Hour)
		}
	}
	return hours
}

// BlockResult reports the outcome of deriving a calendar block from an
// approved event request. Approval is never rolled back when the derived
// block fails; the failure surfaces as a warning instead. BlockQueued means
// the block was handed to the async worker and is not on the calendar yet.
type BlockResult struct {
	Approved     bool   `json:"approved"`
	BlockCreated bool   `json:"blockCreated"`
	BlockQueued  bool   `json:"blockQueued,omitempty"`
	Warning      string `json:"warning,omitempty"`
}
