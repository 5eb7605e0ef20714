package handlers

import (
	"context"
	"net/http"
	"time"

	"smartbiz/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ReminderStore is the slice of reminder persistence the API surface uses.
// The scheduler owns status transitions; handlers only create, list and
// delete rows.
type ReminderStore interface {
	Create(r *models.Reminder) error
	List(status, recipientID string) ([]models.Reminder, error)
	Delete(id uint) error
	DeleteByRecipient(recipientID string, sendTime *time.Time) error
}

// RecipientRegistry is the recipient side of the store.
type RecipientRegistry interface {
	Register(recipientID, displayName string) (created bool, err error)
	List() ([]models.Recipient, error)
	RecordEvent(recipientID string, payload []byte) error
}

// InvoiceStore persists generated invoices.
type InvoiceStore interface {
	Create(inv *models.Invoice) error
	Get(id uint) (models.Invoice, error)
	List() ([]models.Invoice, error)
	Delete(id uint) error
}

// DocumentStore persists uploaded document text and generated summaries.
type DocumentStore interface {
	Create(doc *models.Document) error
	Get(id uint) (models.Document, error)
	List() ([]models.Document, error)
	Delete(id uint) error
	SaveAnswer(id uint, question, answer string) error
}

// Mailer sends invoice emails through the external mail gateway.
type Mailer interface {
	SendInvoice(inv models.Invoice) error
	SendPaymentReminder(inv models.Invoice) error
}

// Completer is the hosted language-completion collaborator.
type Completer interface {
	Summarize(ctx context.Context, text string, kind models.DocumentKind) (string, error)
	Answer(ctx context.Context, text, question string) (string, error)
}

// Handler carries the API surface's dependencies. Mailer and Completer may
// be nil when the deployment has no mail gateway or completion endpoint
// configured; the affected endpoints answer 503.
type Handler struct {
	reminders  ReminderStore
	recipients RecipientRegistry
	invoices   InvoiceStore
	documents  DocumentStore
	mailer     Mailer
	completer  Completer
	log        zerolog.Logger
}

func New(reminders ReminderStore, recipients RecipientRegistry, invoices InvoiceStore, documents DocumentStore, mailer Mailer, completer Completer, log zerolog.Logger) *Handler {
	return &Handler{
		reminders:  reminders,
		recipients: recipients,
		invoices:   invoices,
		documents:  documents,
		mailer:     mailer,
		completer:  completer,
		log:        log.With().Str("component", "api").Logger(),
	}
}

// handleError provides a consistent way to handle and log errors
func (h *Handler) handleError(c *gin.Context, status int, message string, err error) {
	h.log.Error().Err(err).Str("path", c.FullPath()).Msg(message)
	c.JSON(status, gin.H{"error": message})
}

// Home handles requests to the root path "/"
func (h *Handler) Home(c *gin.Context) {
	c.String(http.StatusOK, "SmartBiz backend")
}

// Health is a simple liveness check endpoint
func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
