package availability

import (
	"testing"
	"time"

	"palco/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-03-03 is a Monday; 2025-03-10 is the following Monday.
const (
	monday     = "2025-03-03"
	nextMonday = "2025-03-10"
	tuesday    = "2025-03-04"
)

func testVenue() models.Venue {
	return models.Venue{
		ID:          "venue-1",
		ManagerID:   "manager-1",
		Name:        "Casa da Cultura",
		OpeningHour: 8,
		ClosingHour: 20,
	}
}

func mondayRules(hours ...int) models.RuleSet {
	return models.RuleSet{
		General: map[time.Weekday]models.GeneralRule{
			time.Monday: {Weekday: time.Monday, Hours: hours},
		},
	}
}

func slotHours(slots []models.SlotDescriptor) []int {
	hours := make([]int, 0, len(slots))
	for _, s := range slots {
		hours = append(hours, s.Hour)
	}
	return hours
}

func TestResolveGeneralRule(t *testing.T) {
	slots := Resolve(testVenue(), monday, mondayRules(9, 10, 11), nil, nil)

	require.Len(t, slots, 3)
	assert.Equal(t, []int{9, 10, 11}, slotHours(slots))
	assert.Equal(t, "9:00 AM", slots[0].Label)
	assert.Equal(t, "10:00 AM", slots[1].Label)
	assert.Equal(t, "11:00 AM", slots[2].Label)
	assert.Equal(t, "09:00:00", slots[0].Start)
	assert.Equal(t, "10:00:00", slots[0].End)
}

func TestResolveClampsToOperatingHours(t *testing.T) {
	// Hours outside [open, close) never survive, however the rule is set up.
	slots := Resolve(testVenue(), monday, mondayRules(6, 7, 9, 20, 23), nil, nil)
	assert.Equal(t, []int{9}, slotHours(slots))
}

func TestResolveUnconfiguredDayFailsClosed(t *testing.T) {
	// No rule for Tuesday: the day shows no bookable hours, not a fully
	// open day.
	slots := Resolve(testVenue(), tuesday, mondayRules(9, 10), nil, nil)
	assert.Empty(t, slots)
}

func TestResolveOverrideReplacesGeneralRule(t *testing.T) {
	rules := mondayRules(9, 10, 11)
	rules.Override = &models.DateOverride{Date: monday, Hours: []int{14}}

	slots := Resolve(testVenue(), monday, rules, nil, nil)

	require.Len(t, slots, 1)
	assert.Equal(t, 14, slots[0].Hour)
	assert.Equal(t, "2:00 PM", slots[0].Label)
}

func TestResolveRecurringBlockMatchesWeekdayOnly(t *testing.T) {
	rules := models.RuleSet{
		General: map[time.Weekday]models.GeneralRule{
			time.Monday:  {Weekday: time.Monday, Hours: []int{9, 10}},
			time.Tuesday: {Weekday: time.Tuesday, Hours: []int{9, 10}},
		},
	}
	blocks := []models.BlockedSlot{models.NewRecurringBlock("manager-1", time.Monday, 10)}

	assert.Equal(t, []int{9}, slotHours(Resolve(testVenue(), monday, rules, blocks, nil)))
	assert.Equal(t, []int{9}, slotHours(Resolve(testVenue(), nextMonday, rules, blocks, nil)))
	assert.Equal(t, []int{9, 10}, slotHours(Resolve(testVenue(), tuesday, rules, blocks, nil)))
}

func TestResolveSpecificBlockMatchesExactDateOnly(t *testing.T) {
	blocks := []models.BlockedSlot{models.NewSpecificBlock("manager-1", monday, 10)}

	assert.Equal(t, []int{9, 11}, slotHours(Resolve(testVenue(), monday, mondayRules(9, 10, 11), blocks, nil)))
	// Same weekday, different date: the block does not apply.
	assert.Equal(t, []int{9, 10, 11}, slotHours(Resolve(testVenue(), nextMonday, mondayRules(9, 10, 11), blocks, nil)))
}

func TestResolveExcludesEventOccupancy(t *testing.T) {
	slots := Resolve(testVenue(), monday, mondayRules(9, 10, 11), nil, []int{10})
	assert.Equal(t, []int{9, 11}, slotHours(slots))
}

func TestResolveSortsAndDeduplicates(t *testing.T) {
	slots := Resolve(testVenue(), monday, mondayRules(11, 9, 10, 9), nil, nil)
	assert.Equal(t, []int{9, 10, 11}, slotHours(slots))
}
