package venueapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"palco/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, "test-token", srv.Client()), srv
}

func TestBlockedSlotsDecodesBothKinds(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spaces/blocked-slots/manager-1", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Write([]byte(`[
			{"id":"b1","managerId":"manager-1","hour":10,"recurring":true,"dayOfWeek":1,"date":null},
			{"id":"b2","managerId":"manager-1","hour":15,"recurring":false,"dayOfWeek":null,"date":"2025-03-03","sourceEventId":"req-1"}
		]`))
	})
	defer srv.Close()

	slots, err := client.BlockedSlots(context.Background(), "manager-1")
	require.NoError(t, err)
	require.Len(t, slots, 2)

	assert.Equal(t, models.BlockRecurring, slots[0].Kind)
	assert.Equal(t, time.Monday, slots[0].Weekday)
	assert.Empty(t, slots[0].Date)

	assert.Equal(t, models.BlockSpecific, slots[1].Kind)
	assert.Equal(t, "2025-03-03", slots[1].Date)
	assert.Equal(t, "req-1", slots[1].SourceEventID)
}

func TestBlockedSlotsRejectsMalformedEntry(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		// Recurring without a weekday is unrepresentable.
		w.Write([]byte(`[{"id":"b1","hour":10,"recurring":true,"dayOfWeek":null,"date":null}]`))
	})
	defer srv.Close()

	_, err := client.BlockedSlots(context.Background(), "manager-1")
	assert.ErrorContains(t, err, "missing dayOfWeek")
}

func TestBlockSlotPostsMutation(t *testing.T) {
	var got slotMutation
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/spaces/block-slot/manager-1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	})
	defer srv.Close()

	require.NoError(t, client.BlockSlot(context.Background(), "manager-1", "2025-03-03", 10))
	assert.Equal(t, slotMutation{Date: "2025-03-03", Hour: 10}, got)
}

func TestDateAvailabilityMissingOverrideIsNil(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2025-03-03", r.URL.Query().Get("date"))
		w.WriteHeader(http.StatusNotFound)
	})
	defer srv.Close()

	override, err := client.DateAvailability(context.Background(), "manager-1", "2025-03-03")
	require.NoError(t, err)
	assert.Nil(t, override)
}

func TestDateAvailabilityReturnsOverride(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"date":"2025-03-03","hours":[14,15]}`))
	})
	defer srv.Close()

	override, err := client.DateAvailability(context.Background(), "manager-1", "2025-03-03")
	require.NoError(t, err)
	require.NotNil(t, override)
	assert.Equal(t, []int{14, 15}, override.Hours)
}

func TestScheduledEventsBuildsQuery(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/event-requests/scheduled/manager-1", r.URL.Path)
		assert.Equal(t, "2025-03-03", r.URL.Query().Get("date"))
		w.Write([]byte(`[{"id":"ev-1","venueId":"venue-1","date":"2025-03-03","hour":11}]`))
	})
	defer srv.Close()

	events, err := client.ScheduledEvents(context.Background(), "manager-1", "2025-03-03")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 11, events[0].Hour)
}

func TestCreateEventBlockPostsPayload(t *testing.T) {
	var got EventBlockPayload
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/event-requests/block-slot", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	})
	defer srv.Close()

	payload := EventBlockPayload{ManagerID: "manager-1", Date: "2025-03-03", Hour: 14, SourceEventID: "req-1"}
	require.NoError(t, client.CreateEventBlock(context.Background(), payload))
	assert.Equal(t, payload, got)
}

func TestUnauthorizedStatusMapsToSentinel(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer srv.Close()

	_, err := client.ListVenues(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUnexpectedStatusIsAnError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	err := client.ResetConfiguration(context.Background(), "manager-1")
	assert.ErrorContains(t, err, "unexpected status 500")
}
