package store

import (
	"fmt"

	"smartbiz/internal/models"

	"gorm.io/gorm"
)

// InvoiceStore owns invoice rows.
type InvoiceStore struct {
	db *gorm.DB
}

func NewInvoiceStore(db *gorm.DB) *InvoiceStore {
	return &InvoiceStore{db: db}
}

func (s *InvoiceStore) Create(inv *models.Invoice) error {
	if err := s.db.Create(inv).Error; err != nil {
		return fmt.Errorf("store: create invoice: %w", err)
	}
	return nil
}

func (s *InvoiceStore) Get(id uint) (models.Invoice, error) {
	var inv models.Invoice
	if err := s.db.Where("id = ?", id).First(&inv).Error; err != nil {
		return models.Invoice{}, fmt.Errorf("store: get invoice %d: %w", id, err)
	}
	return inv, nil
}

func (s *InvoiceStore) List() ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := s.db.Order("created_at desc").Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("store: list invoices: %w", err)
	}
	return invoices, nil
}

func (s *InvoiceStore) Delete(id uint) error {
	if err := s.db.Where("id = ?", id).Delete(&models.Invoice{}).Error; err != nil {
		return fmt.Errorf("store: delete invoice %d: %w", id, err)
	}
	return nil
}
