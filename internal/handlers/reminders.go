package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"smartbiz/internal/models"

	"github.com/gin-gonic/gin"
)

// ScheduleReminder handles POST /reminders
func (h *Handler) ScheduleReminder(c *gin.Context) {
	var request models.ScheduleReminderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	kind, err := models.ParseRepeatKind(request.RepeatKind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid repeat_kind: %q", request.RepeatKind)})
		return
	}

	interval := request.RepeatInterval
	if kind.IsNone() {
		interval = 0
	} else if interval < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "repeat_interval must be >= 1 for recurring reminders"})
		return
	}

	reminder := models.Reminder{
		RecipientID:    request.RecipientID,
		Message:        request.Message,
		SendTime:       request.SendTime.UTC(),
		Status:         models.StatusScheduled,
		RepeatKind:     kind,
		RepeatInterval: interval,
	}

	if err := h.reminders.Create(&reminder); err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to schedule reminder", err)
		return
	}

	h.log.Info().
		Uint("id", reminder.ID).
		Str("recipient_id", reminder.RecipientID).
		Time("send_time", reminder.SendTime).
		Str("repeat_kind", string(kind)).
		Msg("reminder scheduled")

	c.JSON(http.StatusCreated, gin.H{"status": "scheduled", "id": reminder.ID})
}

// ListReminders handles GET /reminders with optional status and
// recipient_id filters.
func (h *Handler) ListReminders(c *gin.Context) {
	reminders, err := h.reminders.List(c.Query("status"), c.Query("recipient_id"))
	if err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to list reminders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

// CancelReminder handles DELETE /reminders/:id. Cancelling an id that does
// not exist still reports success.
func (h *Handler) CancelReminder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reminder id"})
		return
	}

	if err := h.reminders.Delete(uint(id)); err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to cancel reminder", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// CancelByRecipient handles POST /reminders/cancel, removing either one
// occurrence (send_time given) or all of a recipient's reminders.
func (h *Handler) CancelByRecipient(c *gin.Context) {
	var request models.CancelRemindersRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	if err := h.reminders.DeleteByRecipient(request.RecipientID, request.SendTime); err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to cancel reminders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
