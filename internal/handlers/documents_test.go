package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"smartbiz/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func TestCreateDocumentSummarizes(t *testing.T) {
	env := newTestEnv()
	body := `{"filename":"report.pdf","kind":"summary","text":"quarterly numbers"}`
	w := doJSON(env, http.MethodPost, "/documents", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, http.StatusCreated, w.Body.String())
	}

	var doc models.Document
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if doc.Summary != "summary of quarterly numbers" {
		t.Errorf("summary = %q", doc.Summary)
	}

	docs, _ := env.documents.List()
	if len(docs) != 1 {
		t.Fatalf("documents persisted = %d, want 1", len(docs))
	}
}

func TestCreateDocumentRejectsUnknownKind(t *testing.T) {
	env := newTestEnv()
	w := doJSON(env, http.MethodPost, "/documents",
		`{"filename":"report.pdf","kind":"poem","text":"x"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCreateDocumentCompletionFailure(t *testing.T) {
	env := newTestEnv()
	env.completer.summarizeErr = errGateway

	w := doJSON(env, http.MethodPost, "/documents",
		`{"filename":"report.pdf","text":"x"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadGateway)
	}
	docs, _ := env.documents.List()
	if len(docs) != 0 {
		t.Fatal("failed summarization must not persist a document")
	}
}

func TestAskDocument(t *testing.T) {
	env := newTestEnv()
	doJSON(env, http.MethodPost, "/documents",
		`{"filename":"contract.docx","kind":"contract","text":"terms and conditions"}`)

	w := doJSON(env, http.MethodPost, "/documents/1/ask", `{"question":"what are the risks?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Answer != "answer to what are the risks?" {
		t.Errorf("answer = %q", resp.Answer)
	}

	doc, _ := env.documents.Get(1)
	if doc.Question != "what are the risks?" || doc.Answer == "" {
		t.Errorf("stored Q/A = (%q, %q)", doc.Question, doc.Answer)
	}
}

func TestAskUnknownDocument(t *testing.T) {
	env := newTestEnv()
	w := doJSON(env, http.MethodPost, "/documents/9/ask", `{"question":"hello?"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestDocumentEndpointsWithoutCompleter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reminders := newMemReminderStore()
	h := New(reminders, newMemRegistry(), newMemInvoiceStore(), newMemDocumentStore(), nil, nil, zerolog.Nop())

	router := gin.New()
	router.POST("/documents", h.CreateDocument)

	env := &testEnv{handler: h, router: router, reminders: reminders}
	w := doJSON(env, http.MethodPost, "/documents", `{"filename":"f","text":"x"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}
