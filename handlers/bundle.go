// File: palco/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Venue endpoints.
	ListVenuesHandler gin.HandlerFunc
	DaySlotsHandler   gin.HandlerFunc

	// Schedule (blocked-slot ledger) endpoints.
	SelectVenueHandler          gin.HandlerFunc
	ForegroundHandler           gin.HandlerFunc
	ToggleSlotHandler           gin.HandlerFunc
	BlockedSlotsHandler         gin.HandlerFunc
	BlockedSlotsDetailedHandler gin.HandlerFunc
	UnblockByIDHandler          gin.HandlerFunc
	ResetConfigurationHandler   gin.HandlerFunc

	// Selection endpoints.
	BeginSelectionHandler  gin.HandlerFunc
	PickSlotHandler        gin.HandlerFunc
	GetSelectionHandler    gin.HandlerFunc
	CancelSelectionHandler gin.HandlerFunc
	SubmitSelectionHandler gin.HandlerFunc

	// Approval bridge endpoints.
	ApproveRequestHandler gin.HandlerFunc
}

// managerIDFromContext pulls the manager id set by ManagerAuthMiddleware.
func managerIDFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get("managerID")
	if !exists {
		return "", false
	}
	managerID, ok := value.(string)
	if !ok || managerID == "" {
		return "", false
	}
	return managerID, true
}
