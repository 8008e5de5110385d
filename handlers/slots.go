package handlers

import (
	"context"
	"net/http"

	"palco/models"
	"palco/services/availability"
	"palco/services/schedule"
	"palco/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SlotResolver resolves the bookable day grid against the per-manager
// ledger held by the schedule registry. It also backs selection sessions.
type SlotResolver struct {
	API      availability.API
	Registry *schedule.Registry
}

func (r *SlotResolver) GetDaySlots(ctx context.Context, managerID, venueID, date string) ([]models.SlotDescriptor, error) {
	eng := r.Registry.Get(managerID)
	svc := &availability.DefaultAvailabilityService{API: r.API, Blocks: eng.Ledger}
	return svc.GetDaySlots(ctx, managerID, venueID, date)
}

type SlotHandler struct {
	Resolver *SlotResolver
}

func NewSlotHandler(resolver *SlotResolver) *SlotHandler {
	return &SlotHandler{Resolver: resolver}
}

// DaySlotsHandler returns the ordered bookable slots for one venue/date.
func (h *SlotHandler) DaySlotsHandler(c *gin.Context) {
	managerID, ok := managerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Manager not authenticated"})
		return
	}

	venueID := c.Param("id")
	if venueID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing venue ID in path"})
		return
	}
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing date query parameter"})
		return
	}

	slots, err := h.Resolver.GetDaySlots(c.Request.Context(), managerID, venueID, date)
	if err != nil {
		utils.GetLogger().Warn("Failed to resolve day slots",
			zap.String("venueId", venueID), zap.String("date", date), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Failed to load available slots", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}
