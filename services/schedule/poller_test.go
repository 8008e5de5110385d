package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRefresher struct {
	calls   atomic.Int64
	signals chan struct{}
}

func newFakeRefresher() *fakeRefresher {
	return &fakeRefresher{signals: make(chan struct{}, 64)}
}

func (f *fakeRefresher) Refresh(ctx context.Context) error {
	f.calls.Add(1)
	select {
	case f.signals <- struct{}{}:
	default:
	}
	return nil
}

func (f *fakeRefresher) RefreshDetailed(ctx context.Context) error {
	return nil
}

func waitForRefresh(t *testing.T, f *fakeRefresher) {
	t.Helper()
	select {
	case <-f.signals:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a refresh")
	}
}

func TestPollerFetchesImmediatelyOnStart(t *testing.T) {
	ref := newFakeRefresher()
	p := NewPoller(ref, time.Hour, nil)
	defer p.Stop()

	p.Start("venue-1")
	waitForRefresh(t, ref)
	assert.Equal(t, "venue-1", p.VenueID())
}

func TestPollerFetchesPeriodically(t *testing.T) {
	ref := newFakeRefresher()
	p := NewPoller(ref, 10*time.Millisecond, nil)
	defer p.Stop()

	p.Start("venue-1")
	for i := 0; i < 3; i++ {
		waitForRefresh(t, ref)
	}
	assert.GreaterOrEqual(t, ref.calls.Load(), int64(3))
}

func TestPollerWakeTriggersRefresh(t *testing.T) {
	ref := newFakeRefresher()
	p := NewPoller(ref, time.Hour, nil)
	defer p.Stop()

	p.Start("venue-1")
	waitForRefresh(t, ref)

	p.Wake()
	waitForRefresh(t, ref)
	assert.GreaterOrEqual(t, ref.calls.Load(), int64(2))
}

func TestPollerStopHaltsLoop(t *testing.T) {
	ref := newFakeRefresher()
	p := NewPoller(ref, 5*time.Millisecond, nil)

	p.Start("venue-1")
	waitForRefresh(t, ref)
	p.Stop()
	assert.Empty(t, p.VenueID())

	// Drain anything in flight, then confirm the loop has gone quiet.
	time.Sleep(20 * time.Millisecond)
	for len(ref.signals) > 0 {
		<-ref.signals
	}
	settled := ref.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, ref.calls.Load())

	// Stop twice is a no-op.
	p.Stop()
}

func TestPollerRestartSwitchesVenue(t *testing.T) {
	ref := newFakeRefresher()
	p := NewPoller(ref, time.Hour, nil)
	defer p.Stop()

	p.Start("venue-1")
	waitForRefresh(t, ref)
	p.Start("venue-2")
	waitForRefresh(t, ref)

	require.Equal(t, "venue-2", p.VenueID())
}

func TestPollerDefaultInterval(t *testing.T) {
	p := NewPoller(newFakeRefresher(), 0, nil)
	assert.Equal(t, 5*time.Second, p.Interval)
}

func TestPollerWakeBeforeStartIsNoop(t *testing.T) {
	p := NewPoller(newFakeRefresher(), time.Hour, nil)
	p.Wake()
	assert.Empty(t, p.VenueID())
}
