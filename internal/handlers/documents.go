package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"smartbiz/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateDocument handles POST /documents: summarizes the extracted text
// and persists both.
func (h *Handler) CreateDocument(c *gin.Context) {
	if h.completer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Completion endpoint not configured"})
		return
	}

	var request models.CreateDocumentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	kind := models.DocumentKind(request.Kind)
	switch kind {
	case "":
		kind = models.DocumentSummary
	case models.DocumentSummary, models.DocumentContract:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid kind: %q", request.Kind)})
		return
	}

	summary, err := h.completer.Summarize(c.Request.Context(), request.Text, kind)
	if err != nil {
		h.handleError(c, http.StatusBadGateway, "Summarization failed", err)
		return
	}

	document := models.Document{
		Filename: request.Filename,
		Kind:     kind,
		Text:     request.Text,
		Summary:  summary,
	}
	if err := h.documents.Create(&document); err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to store document", err)
		return
	}

	c.JSON(http.StatusCreated, document)
}

// AskDocument handles POST /documents/:id/ask
func (h *Handler) AskDocument(c *gin.Context) {
	if h.completer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Completion endpoint not configured"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document id"})
		return
	}

	var request models.AskDocumentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	document, err := h.documents.Get(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		h.handleError(c, http.StatusInternalServerError, "Failed to fetch document", err)
		return
	}

	answer, err := h.completer.Answer(c.Request.Context(), document.Text, request.Question)
	if err != nil {
		h.handleError(c, http.StatusBadGateway, "Failed to answer question", err)
		return
	}

	if err := h.documents.SaveAnswer(document.ID, request.Question, answer); err != nil {
		h.log.Warn().Err(err).Uint("id", document.ID).Msg("failed to save answer")
	}

	c.JSON(http.StatusOK, gin.H{"question": request.Question, "answer": answer})
}

// ListDocuments handles GET /documents
func (h *Handler) ListDocuments(c *gin.Context) {
	documents, err := h.documents.List()
	if err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to list documents", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": documents})
}

// DeleteDocument handles DELETE /documents/:id
func (h *Handler) DeleteDocument(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document id"})
		return
	}
	if err := h.documents.Delete(uint(id)); err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to delete document", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
