package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListRecipients handles GET /recipients
func (h *Handler) ListRecipients(c *gin.Context) {
	recipients, err := h.recipients.List()
	if err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to list recipients", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipients": recipients})
}
