package handlers

import (
	"context"
	"errors"
	"sync"
	"time"

	"smartbiz/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type memReminderStore struct {
	mu        sync.Mutex
	nextID    uint
	reminders map[uint]models.Reminder
	createErr error
}

func newMemReminderStore() *memReminderStore {
	return &memReminderStore{nextID: 1, reminders: make(map[uint]models.Reminder)}
}

func (s *memReminderStore) Create(r *models.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	r.ID = s.nextID
	s.nextID++
	s.reminders[r.ID] = *r
	return nil
}

func (s *memReminderStore) List(status, recipientID string) ([]models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Reminder
	for _, r := range s.reminders {
		if status != "" && string(r.Status) != status {
			continue
		}
		if recipientID != "" && r.RecipientID != recipientID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *memReminderStore) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reminders, id)
	return nil
}

func (s *memReminderStore) DeleteByRecipient(recipientID string, sendTime *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, r := range s.reminders {
		if r.RecipientID != recipientID || r.Status != models.StatusScheduled {
			continue
		}
		if sendTime != nil && !r.SendTime.Equal(*sendTime) {
			continue
		}
		delete(s.reminders, id)
	}
	return nil
}

func (s *memReminderStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reminders)
}

func (s *memReminderStore) get(id uint) (models.Reminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reminders[id]
	return r, ok
}

type memRegistry struct {
	mu         sync.Mutex
	recipients map[string]models.Recipient
	events     int
}

func newMemRegistry() *memRegistry {
	return &memRegistry{recipients: make(map[string]models.Recipient)}
}

func (m *memRegistry) Register(recipientID, displayName string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.recipients[recipientID]; exists {
		return false, nil
	}
	m.recipients[recipientID] = models.Recipient{
		RecipientID: recipientID,
		DisplayName: displayName,
		FirstSeen:   time.Now().UTC(),
	}
	return true, nil
}

func (m *memRegistry) List() ([]models.Recipient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Recipient, 0, len(m.recipients))
	for _, r := range m.recipients {
		out = append(out, r)
	}
	return out, nil
}

func (m *memRegistry) RecordEvent(recipientID string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events++
	return nil
}

type memInvoiceStore struct {
	mu       sync.Mutex
	nextID   uint
	invoices map[uint]models.Invoice
}

func newMemInvoiceStore() *memInvoiceStore {
	return &memInvoiceStore{nextID: 1, invoices: make(map[uint]models.Invoice)}
}

func (s *memInvoiceStore) Create(inv *models.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv.ID = s.nextID
	s.nextID++
	s.invoices[inv.ID] = *inv
	return nil
}

func (s *memInvoiceStore) Get(id uint) (models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invoices[id]
	if !ok {
		return models.Invoice{}, gorm.ErrRecordNotFound
	}
	return inv, nil
}

func (s *memInvoiceStore) List() ([]models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		out = append(out, inv)
	}
	return out, nil
}

func (s *memInvoiceStore) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.invoices, id)
	return nil
}

type memDocumentStore struct {
	mu     sync.Mutex
	nextID uint
	docs   map[uint]models.Document
}

func newMemDocumentStore() *memDocumentStore {
	return &memDocumentStore{nextID: 1, docs: make(map[uint]models.Document)}
}

func (s *memDocumentStore) Create(doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc.ID = s.nextID
	s.nextID++
	s.docs[doc.ID] = *doc
	return nil
}

func (s *memDocumentStore) Get(id uint) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return models.Document{}, gorm.ErrRecordNotFound
	}
	return doc, nil
}

func (s *memDocumentStore) List() ([]models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, doc)
	}
	return out, nil
}

func (s *memDocumentStore) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	return nil
}

func (s *memDocumentStore) SaveAnswer(id uint, question, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.docs[id]
	doc.Question = question
	doc.Answer = answer
	s.docs[id] = doc
	return nil
}

type fakeMailer struct {
	mu            sync.Mutex
	sendErr       error
	invoiceSends  int
	reminderSends int
}

func (m *fakeMailer) SendInvoice(inv models.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoiceSends++
	return m.sendErr
}

func (m *fakeMailer) SendPaymentReminder(inv models.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reminderSends++
	return m.sendErr
}

type fakeCompleter struct {
	summarizeErr error
}

func (f *fakeCompleter) Summarize(ctx context.Context, text string, kind models.DocumentKind) (string, error) {
	if f.summarizeErr != nil {
		return "", f.summarizeErr
	}
	return "summary of " + text, nil
}

func (f *fakeCompleter) Answer(ctx context.Context, text, question string) (string, error) {
	return "answer to " + question, nil
}

var errGateway = errors.New("gateway down")

type testEnv struct {
	handler   *Handler
	router    *gin.Engine
	reminders *memReminderStore
	registry  *memRegistry
	invoices  *memInvoiceStore
	documents *memDocumentStore
	mailer    *fakeMailer
	completer *fakeCompleter
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		reminders: newMemReminderStore(),
		registry:  newMemRegistry(),
		invoices:  newMemInvoiceStore(),
		documents: newMemDocumentStore(),
		mailer:    &fakeMailer{},
		completer: &fakeCompleter{},
	}
	env.handler = New(env.reminders, env.registry, env.invoices, env.documents, env.mailer, env.completer, zerolog.Nop())

	router := gin.New()
	router.POST("/reminders", env.handler.ScheduleReminder)
	router.GET("/reminders", env.handler.ListReminders)
	router.DELETE("/reminders/:id", env.handler.CancelReminder)
	router.POST("/reminders/cancel", env.handler.CancelByRecipient)
	router.GET("/recipients", env.handler.ListRecipients)
	router.POST("/events/registration", env.handler.IngestRegistration)
	router.POST("/invoices", env.handler.CreateInvoice)
	router.POST("/invoices/:id/remind", env.handler.SendPaymentReminder)
	router.POST("/documents", env.handler.CreateDocument)
	router.POST("/documents/:id/ask", env.handler.AskDocument)
	env.router = router
	return env
}
