package models

// Venue represents a bookable cultural space. Operating hours are the
// half-open interval [OpeningHour, ClosingHour) in whole hours.
type Venue struct {
	ID          string `json:"id"`
	ManagerID   string `json:"managerId"`
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	Capacity    int    `json:"capacity,omitempty"`
	OpeningHour int    `json:"openingHour"` // e.g., 8 for 8:00 AM
	ClosingHour int    `json:"closingHour"` // e.g., 20 for 8:00 PM
	ImageURL    string `json:"imageUrl,omitempty"`
}

// WithinOperatingHours reports whether the hour falls inside the venue's
// operating window.
func (v Venue) WithinOperatingHours(hour int) bool {
	return hour >= v.OpeningHour && hour < v.ClosingHour
}
