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

// CreateInvoice handles POST /invoices: renders the invoice body, persists
// it, then emails it. The row survives a mail failure so the send can be
// repeated via the payment-reminder endpoint.
func (h *Handler) CreateInvoice(c *gin.Context) {
	var request models.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	invoice := models.Invoice{
		OrderID:     request.OrderID,
		ClientName:  request.ClientName,
		ClientEmail: request.ClientEmail,
		Amount:      request.Amount,
		Body: fmt.Sprintf("Invoice #%s\nClient: %s\nAmount Due: $%.2f",
			request.OrderID, request.ClientName, request.Amount),
	}

	if err := h.invoices.Create(&invoice); err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to create invoice", err)
		return
	}

	emailSent := false
	if h.mailer != nil {
		if err := h.mailer.SendInvoice(invoice); err != nil {
			h.log.Warn().Err(err).Uint("id", invoice.ID).Msg("invoice email failed")
		} else {
			emailSent = true
		}
	}

	c.JSON(http.StatusCreated, gin.H{"invoice": invoice, "email_sent": emailSent})
}

// ListInvoices handles GET /invoices
func (h *Handler) ListInvoices(c *gin.Context) {
	invoices, err := h.invoices.List()
	if err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to list invoices", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

// DeleteInvoice handles DELETE /invoices/:id
func (h *Handler) DeleteInvoice(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice id"})
		return
	}
	if err := h.invoices.Delete(uint(id)); err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to delete invoice", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// SendPaymentReminder handles POST /invoices/:id/remind
func (h *Handler) SendPaymentReminder(c *gin.Context) {
	if h.mailer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Mail gateway not configured"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice id"})
		return
	}

	invoice, err := h.invoices.Get(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		h.handleError(c, http.StatusInternalServerError, "Failed to fetch invoice", err)
		return
	}

	if err := h.mailer.SendPaymentReminder(invoice); err != nil {
		h.handleError(c, http.StatusBadGateway, "Failed to send payment reminder", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}
