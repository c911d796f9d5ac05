package database

import (
	"github.com/gallerai/gallerai/models"
	"gorm.io/gorm"
)

// MetadataStore persists enrichment results. It satisfies
// enrichment.MetadataStore.
type MetadataStore struct {
	db *gorm.DB
}

func NewMetadataStore(db *gorm.DB) *MetadataStore {
	return &MetadataStore{db: db}
}

func (s *MetadataStore) CreateMetadata(meta *models.ImageMetadata) error {
	return s.db.Create(meta).Error
}
