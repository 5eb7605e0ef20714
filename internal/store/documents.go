package store

import (
	"fmt"

	"smartbiz/internal/models"

	"gorm.io/gorm"
)

// DocumentStore owns document rows.
type DocumentStore struct {
	db *gorm.DB
}

func NewDocumentStore(db *gorm.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

func (s *DocumentStore) Create(doc *models.Document) error {
	if err := s.db.Create(doc).Error; err != nil {
		return fmt.Errorf("store: create document: %w", err)
	}
	return nil
}

func (s *DocumentStore) Get(id uint) (models.Document, error) {
	var doc models.Document
	if err := s.db.Where("id = ?", id).First(&doc).Error; err != nil {
		return models.Document{}, fmt.Errorf("store: get document %d: %w", id, err)
	}
	return doc, nil
}

func (s *DocumentStore) List() ([]models.Document, error) {
	var docs []models.Document
	if err := s.db.Order("created_at desc").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("store: list documents: %w", err)
	}
	return docs, nil
}

func (s *DocumentStore) Delete(id uint) error {
	if err := s.db.Where("id = ?", id).Delete(&models.Document{}).Error; err != nil {
		return fmt.Errorf("store: delete document %d: %w", id, err)
	}
	return nil
}

// SaveAnswer records the latest question/answer pair for a document.
func (s *DocumentStore) SaveAnswer(id uint, question, answer string) error {
	err := s.db.Model(&models.Document{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"question": question, "answer": answer}).Error
	if err != nil {
		return fmt.Errorf("store: save answer for document %d: %w", id, err)
	}
	return nil
}
