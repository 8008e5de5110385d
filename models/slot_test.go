package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatHour(t *testing.T) {
	cases := map[int]string{
		0:  "12:00 AM",
		1:  "1:00 AM",
		9:  "9:00 AM",
		11: "11:00 AM",
		12: "12:00 PM",
		13: "1:00 PM",
		23: "11:00 PM",
	}
	for hour, want := range cases {
		assert.Equal(t, want, FormatHour(hour))
	}
}

func TestNewSlotDescriptor(t *testing.T) {
	slot := NewSlotDescriptor(9)
	assert.Equal(t, 9, slot.Hour)
	assert.Equal(t, "9:00 AM", slot.Label)
	assert.Equal(t, "09:00:00", slot.Start)
	assert.Equal(t, "10:00:00", slot.End)
}

func TestBlockedSlotAppliesOn(t *testing.T) {
	recurring := NewRecurringBlock("manager-1", time.Monday, 10)
	assert.True(t, recurring.AppliesOn("2025-03-03"))  // a Monday
	assert.True(t, recurring.AppliesOn("2025-03-10"))  // the next Monday too
	assert.False(t, recurring.AppliesOn("2025-03-04")) // Tuesday
	assert.False(t, recurring.AppliesOn("not-a-date"))

	specific := NewSpecificBlock("manager-1", "2025-03-03", 10)
	assert.True(t, specific.AppliesOn("2025-03-03"))
	assert.False(t, specific.AppliesOn("2025-03-10"))
}

func TestRuleSetHoursFor(t *testing.T) {
	rs := RuleSet{
		General: map[time.Weekday]GeneralRule{
			time.Monday: {Weekday: time.Monday, Hours: []int{9, 10}},
		},
	}

	assert.Equal(t, []int{9, 10}, rs.HoursFor("2025-03-03"))
	assert.Nil(t, rs.HoursFor("2025-03-04")) // no Tuesday rule

	rs.Override = &DateOverride{Date: "2025-03-03", Hours: []int{14}}
	assert.Equal(t, []int{14}, rs.HoursFor("2025-03-03"))
	// The override binds to its date only.
	assert.Equal(t, []int{9, 10}, rs.HoursFor("2025-03-10"))
}

func TestOccupiedHoursFiltersByDate(t *testing.T) {
	events := []ScheduledEvent{
		{ID: "ev-1", Date: "2025-03-03", Hour: 11},
		{ID: "ev-2", Date: "2025-03-04", Hour: 9},
	}
	assert.Equal(t, []int{11}, OccupiedHours(events, "2025-03-03"))
	assert.Empty(t, OccupiedHours(events, "2025-03-05"))
}
