package selection

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"palco/models"

	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound means the selection session expired or never existed.
	ErrSessionNotFound = errors.New("selection session not found")
	// ErrSlotUnavailable rejects picks on hours the resolver did not offer.
	ErrSlotUnavailable = errors.New("slot is not available for booking")
	// ErrEmptySelection rejects submitting a session with nothing selected.
	ErrEmptySelection = errors.New("no slots selected")
)

// SlotSource supplies the resolver's currently-available slots for a day.
type SlotSource interface {
	GetDaySlots(ctx context.Context, managerID, venueID, date string) ([]models.SlotDescriptor, error)
}

// Session is one event-creation flow's ephemeral selection state. It is
// discarded on submit or cancel, or swept after SelectionSessionTTL.
type Session struct {
	ID        string
	ManagerID string
	VenueID   string
	Date      string
	Range     Range
	Available map[int]bool
	UpdatedAt time.Time
}

// EventWindow is the time span a submitted selection books: the first
// slot's start through the last slot's end.
type EventWindow struct {
	Date      string `json:"date"`
	StartHour int    `json:"startHour"`
	EndHour   int    `json:"endHour"` // exclusive, last slot's end
	Start     string `json:"start"`   // e.g. "09:00:00"
	End       string `json:"end"`     // e.g. "12:00:00"
}

// Service manages contiguous-range selection sessions.
type Service interface {
	Begin(ctx context.Context, managerID, venueID, date string) (*Session, error)
	Pick(sessionID string, hour int) (*Session, error)
	Get(sessionID string) (*Session, error)
	Cancel(sessionID string) error
	Submit(sessionID string) (*EventWindow, error)
}

// DefaultSelectionService is the production implementation, backed by an
// in-memory session store.
type DefaultSelectionService struct {
	Slots SlotSource
	TTL   time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSelectionService(slots SlotSource, ttl time.Duration) *DefaultSelectionService {
	return &DefaultSelectionService{
		Slots:    slots,
		TTL:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Begin opens a selection session for one venue and date, capturing the
// currently-available slots the picks are validated against.
func (s *DefaultSelectionService) Begin(ctx context.Context, managerID, venueID, date string) (*Session, error) {
	if venueID == "" {
		return nil, fmt.Errorf("missing venue id")
	}
	slots, err := s.Slots.GetDaySlots(ctx, managerID, venueID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load available slots: %w", err)
	}
	available := make(map[int]bool, len(slots))
	for _, slot := range slots {
		available[slot.Hour] = true
	}

	session := &Session{
		ID:        uuid.New().String(),
		ManagerID: managerID,
		VenueID:   venueID,
		Date:      date,
		Available: available,
		UpdatedAt: time.Now(),
	}
	s.mu.Lock()
	s.sweepLocked()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	return session, nil
}

// Pick applies one slot tap to a session's range. Invalid picks are
// rejected synchronously and leave the selection unchanged.
func (s *DefaultSelectionService) Pick(sessionID string, hour int) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	// Extending onto an hour the resolver did not offer is rejected before
	// the contiguity rules run; removals of already-selected hours pass.
	if !session.Range.Contains(hour) && !session.Available[hour] {
		return nil, ErrSlotUnavailable
	}
	next, err := session.Range.Pick(hour)
	if err != nil {
		return session.copy(), err
	}
	session.Range = next
	session.UpdatedAt = time.Now()
	return session.copy(), nil
}

func (s *DefaultSelectionService) Get(sessionID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session.copy(), nil
}

// Cancel discards a session.
func (s *DefaultSelectionService) Cancel(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}

// Submit derives the event window from the selection and discards the
// session. The window runs from the first slot's start to the last slot's
// end.
func (s *DefaultSelectionService) Submit(sessionID string) (*EventWindow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	first, last, ok := session.Range.Bounds()
	if !ok {
		return nil, ErrEmptySelection
	}
	delete(s.sessions, sessionID)
	return &EventWindow{
		Date:      session.Date,
		StartHour: first,
		EndHour:   last + 1,
		Start:     models.NewSlotDescriptor(first).Start,
		End:       models.NewSlotDescriptor(last).End,
	}, nil
}

// sweepLocked drops sessions idle past the TTL. Caller holds s.mu.
func (s *DefaultSelectionService) sweepLocked() {
	if s.TTL <= 0 {
		return
	}
	cutoff := time.Now().Add(-s.TTL)
	for id, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

func (sn *Session) copy() *Session {
	dup := *sn
	dup.Available = make(map[int]bool, len(sn.Available))
	for h, ok := range sn.Available {
		dup.Available[h] = ok
	}
	return &dup
}
