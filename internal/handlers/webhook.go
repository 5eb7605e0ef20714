package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"smartbiz/internal/models"

	"github.com/gin-gonic/gin"
)

// telegramUpdate mirrors the subset of the gateway's update payload that
// registration ingest needs.
type telegramUpdate struct {
	Message struct {
		Chat struct {
			ID        int64  `json:"id"`
			Username  string `json:"username"`
			FirstName string `json:"first_name"`
		} `json:"chat"`
	} `json:"message"`
}

// IngestRegistration handles POST /events/registration. Malformed events
// are logged and acknowledged; returning an error would only make the
// gateway redeliver the same broken payload.
func (h *Handler) IngestRegistration(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		h.log.Warn().Err(err).Msg("failed to read registration event body")
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	var update telegramUpdate
	if err := json.Unmarshal(body, &update); err != nil || update.Message.Chat.ID == 0 {
		h.log.Warn().Msg("discarding malformed registration event")
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	recipientID := strconv.FormatInt(update.Message.Chat.ID, 10)
	displayName := update.Message.Chat.Username
	if displayName == "" {
		displayName = update.Message.Chat.FirstName
	}

	created, err := h.recipients.Register(recipientID, displayName)
	if err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to register recipient", err)
		return
	}

	if err := h.recipients.RecordEvent(recipientID, body); err != nil {
		h.log.Warn().Err(err).Str("recipient_id", recipientID).Msg("failed to record registration event")
	}

	if created {
		// Placeholder row recording the opt-in. Status "added" keeps it
		// out of the scheduler's due scans.
		placeholder := models.Reminder{
			RecipientID: recipientID,
			Message:     "",
			SendTime:    time.Now().UTC(),
			Status:      models.StatusAdded,
			RepeatKind:  models.RepeatNone,
		}
		if err := h.reminders.Create(&placeholder); err != nil {
			h.log.Warn().Err(err).Str("recipient_id", recipientID).Msg("failed to create opt-in placeholder")
		}
		h.log.Info().Str("recipient_id", recipientID).Str("display_name", displayName).Msg("recipient registered")
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
