package models

import "time"

// DocumentKind selects the summarization prompt.
type DocumentKind string

const (
	// DocumentSummary is a plain document summary.
	DocumentSummary DocumentKind = "summary"
	// DocumentContract asks for key clauses, risks and obligations.
	DocumentContract DocumentKind = "contract"
)

// Document holds extracted text uploaded by an operator together with the
// generated summary and the latest question/answer pair. Text extraction
// from PDF/DOCX happens outside this service; the API accepts plain text.
type Document struct {
	ID        uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Filename  string       `gorm:"size:255;not null" json:"filename"`
	Kind      DocumentKind `gorm:"size:16;not null;default:'summary'" json:"kind"`
	Text      string       `gorm:"type:text" json:"-"`
	Summary   string       `gorm:"type:text" json:"summary"`
	Question  string       `gorm:"type:text" json:"question,omitempty"`
	Answer    string       `gorm:"type:text" json:"answer,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// TableName specifies the table name for the Document model
func (Document) TableName() string {
	return "document"
}

// CreateDocumentRequest represents an uploaded document's extracted text
type CreateDocumentRequest struct {
	Filename string `json:"filename" binding:"required"`
	Kind     string `json:"kind"`
	Text     string `json:"text" binding:"required"`
}

// AskDocumentRequest represents a question about a stored document
type AskDocumentRequest struct {
	Question string `json:"question" binding:"required"`
}
