package selection

import (
	"context"
	"testing"
	"time"

	"palco/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSlotSource struct {
	hours []int
}

func (f *fakeSlotSource) GetDaySlots(ctx context.Context, managerID, venueID, date string) ([]models.SlotDescriptor, error) {
	slots := make([]models.SlotDescriptor, 0, len(f.hours))
	for _, h := range f.hours {
		slots = append(slots, models.NewSlotDescriptor(h))
	}
	return slots, nil
}

func newTestService() *DefaultSelectionService {
	return NewSelectionService(&fakeSlotSource{hours: []int{9, 10, 11}}, time.Minute)
}

func beginSession(t *testing.T, svc *DefaultSelectionService) *Session {
	t.Helper()
	session, err := svc.Begin(context.Background(), "manager-1", "venue-1", "2025-03-03")
	require.NoError(t, err)
	return session
}

func TestSelectionFlow(t *testing.T) {
	svc := newTestService()
	session := beginSession(t, svc)

	for _, hour := range []int{9, 10, 11} {
		_, err := svc.Pick(session.ID, hour)
		require.NoError(t, err)
	}

	got, err := svc.Get(session.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{9, 10, 11}, got.Range.Hours())
}

func TestPickUnavailableHourRejected(t *testing.T) {
	svc := newTestService()
	session := beginSession(t, svc)

	_, err := svc.Pick(session.ID, 13)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	got, err := svc.Get(session.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Range.Hours())
}

func TestPickInteriorLeavesSelectionUnchanged(t *testing.T) {
	svc := newTestService()
	session := beginSession(t, svc)
	for _, hour := range []int{9, 10, 11} {
		_, err := svc.Pick(session.ID, hour)
		require.NoError(t, err)
	}

	got, err := svc.Pick(session.ID, 10)
	assert.ErrorIs(t, err, ErrInteriorRemoval)
	require.NotNil(t, got)
	assert.Equal(t, []int{9, 10, 11}, got.Range.Hours())
}

func TestSubmitDerivesEventWindow(t *testing.T) {
	svc := newTestService()
	session := beginSession(t, svc)
	for _, hour := range []int{9, 10, 11} {
		_, err := svc.Pick(session.ID, hour)
		require.NoError(t, err)
	}

	window, err := svc.Submit(session.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, window.StartHour)
	assert.Equal(t, 12, window.EndHour)
	assert.Equal(t, "09:00:00", window.Start)
	assert.Equal(t, "12:00:00", window.End)

	// The session is discarded on submit.
	_, err = svc.Get(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSubmitEmptySelectionRejected(t *testing.T) {
	svc := newTestService()
	session := beginSession(t, svc)

	_, err := svc.Submit(session.ID)
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestCancelDiscardsSession(t *testing.T) {
	svc := newTestService()
	session := beginSession(t, svc)

	require.NoError(t, svc.Cancel(session.ID))
	_, err := svc.Get(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.ErrorIs(t, svc.Cancel(session.ID), ErrSessionNotFound)
}

func TestSweepDropsIdleSessions(t *testing.T) {
	svc := NewSelectionService(&fakeSlotSource{hours: []int{9}}, 10*time.Millisecond)
	stale := beginSession(t, svc)

	time.Sleep(20 * time.Millisecond)
	// Beginning a new session sweeps expired ones.
	beginSession(t, svc)

	_, err := svc.Get(stale.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
