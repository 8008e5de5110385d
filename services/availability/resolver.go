package availability

import (
	"sort"

	"palco/models"
)

// Resolve combines a venue's operating hours, its availability rules, the
// blocked-slot ledger and existing scheduled events into the bookable slot
// set for one date. Pure given its inputs: no side effects, safe to call
// repeatedly.
//
// A date override replaces the general rule outright, and a day with no rule
// resolves to no hours at all rather than a fully open day.
func Resolve(venue models.Venue, date string, rules models.RuleSet, blocks []models.BlockedSlot, occupied []int) []models.SlotDescriptor {
	candidates := rules.HoursFor(date)
	if len(candidates) == 0 {
		return []models.SlotDescriptor{}
	}

	taken := make(map[int]bool, len(occupied))
	for _, h := range occupied {
		taken[h] = true
	}

	seen := make(map[int]bool, len(candidates))
	hours := make([]int, 0, len(candidates))
	for _, h := range candidates {
		if seen[h] {
			continue
		}
		seen[h] = true
		if !venue.WithinOperatingHours(h) {
			continue
		}
		if taken[h] {
			continue
		}
		if blockedOn(blocks, date, h) {
			continue
		}
		hours = append(hours, h)
	}
	sort.Ints(hours)

	slots := make([]models.SlotDescriptor, 0, len(hours))
	for _, h := range hours {
		slots = append(slots, models.NewSlotDescriptor(h))
	}
	return slots
}

func blockedOn(blocks []models.BlockedSlot, date string, hour int) bool {
	for _, b := range blocks {
		if b.Hour == hour && b.AppliesOn(date) {
			return true
		}
	}
	return false
}
