package handlers

import (
	"errors"
	"net/http"

	"palco/services/schedule"
	"palco/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ScheduleHandler struct {
	Registry *schedule.Registry
}

func NewScheduleHandler(registry *schedule.Registry) *ScheduleHandler {
	return &ScheduleHandler{Registry: registry}
}

// SelectVenueHandler binds the manager's engine to a venue and starts the
// poller. Selecting a different venue restarts the poll timer.
func (h *ScheduleHandler) SelectVenueHandler(c *gin.Context) {
	managerID, ok := managerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Manager not authenticated"})
		return
	}

	var body struct {
		VenueID string `json:"venueId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.VenueID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid venueId in request body"})
		return
	}

	eng := h.Registry.Get(managerID)
	eng.SelectVenue(body.VenueID)
	c.JSON(http.StatusOK, gin.H{"message": "Venue selected; schedule sync started", "venueId": body.VenueID})
}

// ForegroundHandler forces an immediate ledger refresh, mirroring an
// app-foreground transition on the client.
func (h *ScheduleHandler) ForegroundHandler(c *gin.Context) {
	managerID, ok := managerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Manager not authenticated"})
		return
	}
	eng := h.Registry.Get(managerID)
	if !eng.VenueSelected() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No venue selected"})
		return
	}
	eng.Poller.Wake()
	c.JSON(http.StatusOK, gin.H{"message": "Refresh triggered"})
}

// ToggleSlotHandler flips the blocked state of one hour. The optimistic
// result is confirmed or compensated against the server before responding.
func (h *ScheduleHandler) ToggleSlotHandler(c *gin.Context) {
	managerID, ok := managerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Manager not authenticated"})
		return
	}

	var body struct {
		Date string `json:"date" binding:"required"`
		Hour *int   `json:"hour" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Hour == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid date/hour in request body"})
		return
	}

	eng := h.Registry.Get(managerID)
	if !eng.VenueSelected() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No venue selected"})
		return
	}

	blocked, err := eng.Ledger.Toggle(c.Request.Context(), body.Date, *body.Hour)
	if err != nil {
		var schedErr *schedule.ScheduleError
		if errors.As(err, &schedErr) && schedErr.Code == "precondition" {
			c.JSON(http.StatusBadRequest, gin.H{"error": schedErr.Message})
			return
		}
		utils.GetLogger().Warn("Slot toggle failed",
			zap.String("date", body.Date), zap.Intp("hour", body.Hour), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"error":        "Failed to update slot; the change was not saved",
			"message":      err.Error(),
			"blocked":      blocked,
			"blockedSlots": eng.Ledger.Snapshot(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"blocked":      blocked,
		"blockedSlots": eng.Ledger.Snapshot(),
	})
}

// BlockedSlotsHandler returns the flat ledger plus the hour-global blocked
// view the manager grid renders from.
func (h *ScheduleHandler) BlockedSlotsHandler(c *gin.Context) {
	managerID, ok := managerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Manager not authenticated"})
		return
	}

	eng := h.Registry.Get(managerID)
	snapshot := eng.Ledger.Snapshot()
	blockedHours := make([]int, 0, 24)
	for hour := 0; hour < 24; hour++ {
		if eng.Ledger.IsBlocked(hour) {
			blockedHours = append(blockedHours, hour)
		}
	}
	c.JSON(http.StatusOK, gin.H{"blockedSlots": snapshot, "blockedHours": blockedHours})
}

// BlockedSlotsDetailedHandler returns the ledger grouped by date.
func (h *ScheduleHandler) BlockedSlotsDetailedHandler(c *gin.Context) {
	managerID, ok := managerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Manager not authenticated"})
		return
	}

	eng := h.Registry.Get(managerID)
	detailed := eng.Ledger.Detailed()
	if len(detailed) == 0 {
		if err := eng.Ledger.RefreshDetailed(c.Request.Context()); err != nil {
			utils.JSONError(c, http.StatusBadGateway, "Failed to load blocked slots", err.Error())
			return
		}
		detailed = eng.Ledger.Detailed()
	}
	c.JSON(http.StatusOK, gin.H{"blockedSlotsByDate": detailed})
}

// UnblockByIDHandler removes one ledger entry by id.
func (h *ScheduleHandler) UnblockByIDHandler(c *gin.Context) {
	managerID, ok := managerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Manager not authenticated"})
		return
	}

	blockID := c.Param("blockId")
	if blockID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing block ID in path"})
		return
	}

	eng := h.Registry.Get(managerID)
	if err := eng.Ledger.UnblockByID(c.Request.Context(), blockID); err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Failed to unblock slot", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slot unblocked", "blockedSlots": eng.Ledger.Snapshot()})
}

// ResetConfigurationHandler deletes every block for the manager's venue.
func (h *ScheduleHandler) ResetConfigurationHandler(c *gin.Context) {
	managerID, ok := managerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Manager not authenticated"})
		return
	}

	eng := h.Registry.Get(managerID)
	if !eng.VenueSelected() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No venue selected"})
		return
	}
	if err := eng.Ledger.Reset(c.Request.Context()); err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Failed to reset configuration", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Configuration reset", "blockedSlots": eng.Ledger.Snapshot()})
}
