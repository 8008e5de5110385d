package handlers

import (
	"errors"
	"net/http"

	"palco/services/selection"
	"palco/utils"

	"github.com/gin-gonic/gin"
)

type SelectionHandler struct {
	Service selection.Service
}

func NewSelectionHandler(service selection.Service) *SelectionHandler {
	return &SelectionHandler{Service: service}
}

type selectionDTO struct {
	ID      string `json:"id"`
	VenueID string `json:"venueId"`
	Date    string `json:"date"`
	Hours   []int  `json:"hours"`
}

func toSelectionDTO(s *selection.Session) selectionDTO {
	return selectionDTO{
		ID:      s.ID,
		VenueID: s.VenueID,
		Date:    s.Date,
		Hours:   s.Range.Hours(),
	}
}

// BeginSelectionHandler opens a range-selection session for one venue/date.
func (h *SelectionHandler) BeginSelectionHandler(c *gin.Context) {
	managerID, ok := managerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Manager not authenticated"})
		return
	}

	var body struct {
		VenueID string `json:"venueId" binding:"required"`
		Date    string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid venueId/date in request body"})
		return
	}

	session, err := h.Service.Begin(c.Request.Context(), managerID, body.VenueID, body.Date)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Failed to start slot selection", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"selection": toSelectionDTO(session)})
}

// PickSlotHandler applies one slot tap. Invalid picks are rejected with an
// explanatory message and the selection is returned unchanged.
func (h *SelectionHandler) PickSlotHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")

	var body struct {
		Hour *int `json:"hour" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Hour == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid hour in request body"})
		return
	}

	session, err := h.Service.Pick(sessionID, *body.Hour)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"selection": toSelectionDTO(session)})
	case errors.Is(err, selection.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Selection session not found"})
	case errors.Is(err, selection.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, selection.ErrInteriorRemoval), errors.Is(err, selection.ErrNotContiguous):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "selection": toSelectionDTO(session)})
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update selection", err.Error())
	}
}

func (h *SelectionHandler) GetSelectionHandler(c *gin.Context) {
	session, err := h.Service.Get(c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Selection session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"selection": toSelectionDTO(session)})
}

func (h *SelectionHandler) CancelSelectionHandler(c *gin.Context) {
	if err := h.Service.Cancel(c.Param("sessionID")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Selection session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Selection discarded"})
}

// SubmitSelectionHandler closes the session and returns the event window
// derived from the first slot's start and the last slot's end.
func (h *SelectionHandler) SubmitSelectionHandler(c *gin.Context) {
	window, err := h.Service.Submit(c.Param("sessionID"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"window": window})
	case errors.Is(err, selection.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Selection session not found"})
	case errors.Is(err, selection.ErrEmptySelection):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Failed to submit selection", err.Error())
	}
}
