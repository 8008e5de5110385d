package schedule

import "fmt"

// ScheduleError carries a stable code alongside the human-readable message
// so handlers can map failures onto non-blocking client alerts.
type ScheduleError struct {
	Code    string
	Message string
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewSyncError(msg string) error {
	return &ScheduleError{Code: "syncError", Message: msg}
}

func NewPreconditionError(msg string) error {
	return &ScheduleError{Code: "precondition", Message: msg}
}

// ErrNoVenueSelected guards mutating calls issued before a venue was picked.
var ErrNoVenueSelected = &ScheduleError{Code: "noVenueSelected", Message: "no venue is selected"}
