package handlers

import (
	"context"
	"net/http"

	"palco/models"
	"palco/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VenueLister is the slice of the upstream client the venue handler needs.
type VenueLister interface {
	ListVenues(ctx context.Context) ([]models.Venue, error)
}

type VenueHandler struct {
	API VenueLister
}

func NewVenueHandler(api VenueLister) *VenueHandler {
	return &VenueHandler{API: api}
}

func (h *VenueHandler) ListVenuesHandler(c *gin.Context) {
	venues, err := h.API.ListVenues(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Failed to list venues", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Failed to load venues", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"venues": venues})
}
