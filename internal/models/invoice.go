package models

import "time"

// Invoice is a generated invoice sent to a client by email. The rendered
// body is persisted so payment reminders reuse the exact text the client
// originally received.
type Invoice struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     string    `gorm:"size:64;not null;index" json:"order_id"`
	ClientName  string    `gorm:"size:128;not null" json:"client_name"`
	ClientEmail string    `gorm:"size:255;not null" json:"client_email"`
	Amount      float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Body        string    `gorm:"type:text" json:"body"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoice"
}

// CreateInvoiceRequest represents the data needed to generate an invoice
type CreateInvoiceRequest struct {
	ClientName  string  `json:"client_name" binding:"required"`
	ClientEmail string  `json:"client_email" binding:"required,email"`
	OrderID     string  `json:"order_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
}
