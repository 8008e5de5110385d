package availability

import (
	"context"
	"fmt"
	"time"

	"palco/models"
)

// API is the slice of the upstream client the availability service consumes.
type API interface {
	ListVenues(ctx context.Context) ([]models.Venue, error)
	DateAvailability(ctx context.Context, managerID, date string) (*models.DateOverride, error)
	GeneralAvailability(ctx context.Context, managerID string) ([]models.GeneralRule, error)
	ScheduledEvents(ctx context.Context, managerID, date string) ([]models.ScheduledEvent, error)
}

// BlockSource supplies the current blocked-slot ledger. The schedule ledger
// implements this, so resolver output tracks whatever the poller last saw.
type BlockSource interface {
	Blocks(ctx context.Context) ([]models.BlockedSlot, error)
}

// Service computes the bookable day grid for a venue.
type Service interface {
	GetDaySlots(ctx context.Context, managerID, venueID, date string) ([]models.SlotDescriptor, error)
}

// DefaultAvailabilityService is the production implementation.
type DefaultAvailabilityService struct {
	API    API
	Blocks BlockSource
}

// GetDaySlots fetches the resolver inputs from the upstream API and the
// ledger, then resolves them into the ordered bookable slot list.
func (s *DefaultAvailabilityService) GetDaySlots(ctx context.Context, managerID, venueID, date string) ([]models.SlotDescriptor, error) {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	venues, err := s.API.ListVenues(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	var venue *models.Venue
	for i := range venues {
		if venues[i].ID == venueID {
			venue = &venues[i]
			break
		}
	}
	if venue == nil {
		return nil, fmt.Errorf("venue %s not found", venueID)
	}

	rules, err := s.ruleSet(ctx, managerID, date)
	if err != nil {
		return nil, err
	}

	blocks, err := s.Blocks.Blocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load blocked slots: %w", err)
	}

	events, err := s.API.ScheduledEvents(ctx, managerID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load scheduled events: %w", err)
	}

	return Resolve(*venue, date, rules, blocks, models.OccupiedHours(events, date)), nil
}

// ruleSet assembles the rules for one date: the override wins when present,
// otherwise the weekly rules are consulted.
func (s *DefaultAvailabilityService) ruleSet(ctx context.Context, managerID, date string) (models.RuleSet, error) {
	override, err := s.API.DateAvailability(ctx, managerID, date)
	if err != nil {
		return models.RuleSet{}, fmt.Errorf("failed to load date availability: %w", err)
	}
	if override != nil {
		return models.RuleSet{Override: override}, nil
	}

	general, err := s.API.GeneralAvailability(ctx, managerID)
	if err != nil {
		return models.RuleSet{}, fmt.Errorf("failed to load general availability: %w", err)
	}
	byDay := make(map[time.Weekday]models.GeneralRule, len(general))
	for _, rule := range general {
		byDay[rule.Weekday] = rule
	}
	return models.RuleSet{General: byDay}, nil
}
