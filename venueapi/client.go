// Package venueapi is the HTTP client for the upstream venue/event service.
// The backing store lives behind this API; nothing in this process persists
// venue state of its own.
package venueapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"palco/models"
)

var (
	// ErrNotFound indicates the upstream resource does not exist.
	ErrNotFound = errors.New("venueapi: not found")
	// ErrUnauthorized indicates the upstream rejected our credentials.
	ErrUnauthorized = errors.New("venueapi: unauthorized")
)

// Client talks to the upstream venue/event REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient constructs a Client. A nil httpClient falls back to a default
// with a 5 second timeout.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = DefaultHTTPClient()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

func DefaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 5 * time.Second}
}

// blockedSlotDTO is the upstream wire form of a blocked slot: two nullable
// fields discriminated by the recurring flag.
type blockedSlotDTO struct {
	ID            string  `json:"id"`
	ManagerID     string  `json:"managerId"`
	Hour          int     `json:"hour"`
	Recurring     bool    `json:"recurring"`
	DayOfWeek     *int    `json:"dayOfWeek"`
	Date          *string `json:"date"`
	SourceEventID string  `json:"sourceEventId,omitempty"`
	CreatedAt     string  `json:"createdAt,omitempty"`
}

func (dto blockedSlotDTO) toModel() (models.BlockedSlot, error) {
	slot := models.BlockedSlot{
		ID:            dto.ID,
		ManagerID:     dto.ManagerID,
		Hour:          dto.Hour,
		SourceEventID: dto.SourceEventID,
	}
	if ts, err := time.Parse(time.RFC3339, dto.CreatedAt); err == nil {
		slot.CreatedAt = ts
	}
	if dto.Recurring {
		if dto.DayOfWeek == nil {
			return models.BlockedSlot{}, fmt.Errorf("venueapi: recurring block %s missing dayOfWeek", dto.ID)
		}
		slot.Kind = models.BlockRecurring
		slot.Weekday = time.Weekday(*dto.DayOfWeek)
		return slot, nil
	}
	if dto.Date == nil {
		return models.BlockedSlot{}, fmt.Errorf("venueapi: specific block %s missing date", dto.ID)
	}
	slot.Kind = models.BlockSpecific
	slot.Date = *dto.Date
	return slot, nil
}

type slotMutation struct {
	Date string `json:"date"`
	Hour int    `json:"hour"`
}

// EventBlockPayload is the body of the approval-derived block submission.
type EventBlockPayload struct {
	ManagerID     string `json:"managerId"`
	Date          string `json:"date"`
	Hour          int    `json:"hour"`
	SourceEventID string `json:"sourceEventId"`
}

// ListVenues fetches every cultural space visible to this client.
func (c *Client) ListVenues(ctx context.Context) ([]models.Venue, error) {
	var venues []models.Venue
	if err := c.getJSON(ctx, "/cultural-spaces", &venues); err != nil {
		return nil, err
	}
	return venues, nil
}

// BlockedSlots fetches the flat blocked-slot ledger for a venue manager.
func (c *Client) BlockedSlots(ctx context.Context, managerID string) ([]models.BlockedSlot, error) {
	var dtos []blockedSlotDTO
	if err := c.getJSON(ctx, "/spaces/blocked-slots/"+url.PathEscape(managerID), &dtos); err != nil {
		return nil, err
	}
	slots := make([]models.BlockedSlot, 0, len(dtos))
	for _, dto := range dtos {
		slot, err := dto.toModel()
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// BlockedSlotsDetailed fetches the ledger grouped by date.
func (c *Client) BlockedSlotsDetailed(ctx context.Context, managerID string) (map[string][]models.BlockedSlot, error) {
	var grouped map[string][]blockedSlotDTO
	if err := c.getJSON(ctx, "/spaces/blocked-slots-detailed/"+url.PathEscape(managerID), &grouped); err != nil {
		return nil, err
	}
	out := make(map[string][]models.BlockedSlot, len(grouped))
	for date, dtos := range grouped {
		for _, dto := range dtos {
			slot, err := dto.toModel()
			if err != nil {
				return nil, err
			}
			out[date] = append(out[date], slot)
		}
	}
	return out, nil
}

// BlockSlot creates a specific block for the given date and hour.
func (c *Client) BlockSlot(ctx context.Context, managerID, date string, hour int) error {
	return c.postJSON(ctx, "/spaces/block-slot/"+url.PathEscape(managerID), slotMutation{Date: date, Hour: hour})
}

// UnblockSlot removes the specific block for the given date and hour.
func (c *Client) UnblockSlot(ctx context.Context, managerID, date string, hour int) error {
	return c.postJSON(ctx, "/spaces/unblock-slot/"+url.PathEscape(managerID), slotMutation{Date: date, Hour: hour})
}

// UnblockSlotByID removes one ledger entry by its id.
func (c *Client) UnblockSlotByID(ctx context.Context, id string) error {
	return c.postJSON(ctx, "/spaces/unblock-slot-by-id/"+url.PathEscape(id), nil)
}

// ResetConfiguration deletes every block for a venue manager.
func (c *Client) ResetConfiguration(ctx context.Context, managerID string) error {
	return c.postJSON(ctx, "/spaces/reset-configuration/"+url.PathEscape(managerID), nil)
}

// DateAvailability fetches the date-specific availability override, or nil
// when the date has none.
func (c *Client) DateAvailability(ctx context.Context, managerID, date string) (*models.DateOverride, error) {
	path := "/cultural-spaces/availability/" + url.PathEscape(managerID) + "?date=" + url.QueryEscape(date)
	var override models.DateOverride
	if err := c.getJSON(ctx, path, &override); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if override.Date == "" {
		return nil, nil
	}
	return &override, nil
}

// GeneralAvailability fetches the weekly availability rules.
func (c *Client) GeneralAvailability(ctx context.Context, managerID string) ([]models.GeneralRule, error) {
	var rules []models.GeneralRule
	if err := c.getJSON(ctx, "/cultural-spaces/general-availability/"+url.PathEscape(managerID), &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// ScheduledEvents fetches the approved events occupying a manager's calendar
// on the given date.
func (c *Client) ScheduledEvents(ctx context.Context, managerID, date string) ([]models.ScheduledEvent, error) {
	path := "/event-requests/scheduled/" + url.PathEscape(managerID) + "?date=" + url.QueryEscape(date)
	var events []models.ScheduledEvent
	if err := c.getJSON(ctx, path, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// ApproveRequest approves a pending event request.
func (c *Client) ApproveRequest(ctx context.Context, requestID string) error {
	return c.postJSON(ctx, "/event-requests/approve-request/"+url.PathEscape(requestID), nil)
}

// CreateEventBlock submits an approval-derived specific block.
func (c *Client) CreateEventBlock(ctx context.Context, payload EventBlockPayload) error {
	return c.postJSON(ctx, "/event-requests/block-slot", payload)
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("venueapi: unexpected status %d for %s", resp.StatusCode, req.URL.Path)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
