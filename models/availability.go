package models

import "time"

// GeneralRule is the manager-configured set of bookable hours for one
// weekday, repeating every week.
type GeneralRule struct {
	Weekday time.Weekday `json:"dayOfWeek"`
	Hours   []int        `json:"hours"`
}

// DateOverride replaces the general rule for one exact date. It replaces,
// it does not merge: the general rule for that weekday is ignored entirely.
type DateOverride struct {
	Date  string `json:"date"`
	Hours []int  `json:"hours"`
}

// RuleSet bundles the availability rules the resolver consumes for a venue.
type RuleSet struct {
	Override *DateOverride
	General  map[time.Weekday]GeneralRule
}

// HoursFor returns the candidate bookable hours for date. A matching date
// override wins outright; otherwise the weekday's general rule applies. A
// day with no rule at all yields no hours (fail-closed).
func (rs RuleSet) HoursFor(date string) []int {
	if rs.Override != nil && rs.Override.Date == date {
		return rs.Override.Hours
	}
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return nil
	}
	if rule, ok := rs.General[d.Weekday()]; ok {
		return rule.Hours
	}
	return nil
}
