package models

import "fmt"

// DateLayout is the calendar-date wire format used across the venue API.
const DateLayout = "2006-01-02"

// SlotDescriptor is one bookable hour as rendered on the day grid.
type SlotDescriptor struct {
	Hour  int    `json:"hour"`  // 0-23
	Label string `json:"label"` // 12-hour display form, e.g. "9:00 AM"
	Start string `json:"start"` // ISO time of the hour start, e.g. "09:00:00"
	End   string `json:"end"`   // ISO time of the hour end, e.g. "10:00:00"
}

// NewSlotDescriptor builds the descriptor for a one-hour slot starting at hour.
func NewSlotDescriptor(hour int) SlotDescriptor {
	return SlotDescriptor{
		Hour:  hour,
		Label: FormatHour(hour),
		Start: fmt.Sprintf("%02d:00:00", hour),
		End:   fmt.Sprintf("%02d:00:00", hour+1),
	}
}

// FormatHour renders a 0-23 hour in 12-hour clock form with AM/PM.
func FormatHour(hour int) string {
	period := "AM"
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour == 12:
		period = "PM"
	case hour > 12:
		display = hour - 12
		period = "PM"
	}
	return fmt.Sprintf("%d:00 %s", display, period)
}
