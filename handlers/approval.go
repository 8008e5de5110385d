package handlers

import (
	"net/http"

	"palco/models"
	"palco/services/approval"
	"palco/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ApprovalHandler struct {
	Bridge *approval.Bridge
}

func NewApprovalHandler(bridge *approval.Bridge) *ApprovalHandler {
	return &ApprovalHandler{Bridge: bridge}
}

// ApproveRequestHandler approves an event request and derives the calendar
// block for its date and hour. A block failure is reported as a warning on
// an otherwise successful approval, never as a rollback.
func (h *ApprovalHandler) ApproveRequestHandler(c *gin.Context) {
	managerID, ok := managerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Manager not authenticated"})
		return
	}

	requestID := c.Param("id")
	if requestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing request ID in path"})
		return
	}

	var req models.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	if req.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing date in request payload"})
		return
	}
	req.ID = requestID
	req.ManagerID = managerID

	result, err := h.Bridge.Approve(c.Request.Context(), req)
	if err != nil {
		utils.GetLogger().Error("Event request approval failed",
			zap.String("requestId", requestID), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Failed to approve request", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request approved", "result": result})
}
