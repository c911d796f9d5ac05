package models

import (
	"gorm.io/gorm"
)

// Enrichment lifecycle of an image's metadata record. An image with no
// metadata row at all is also observed as pending.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

type Image struct {
	gorm.Model
	UserID       uint   `json:"user_id" gorm:"not null;index"`
	Filename     string `json:"filename" gorm:"not null"`
	OriginalURL  string `json:"original_path" gorm:"not null"`
	ThumbnailURL string `json:"thumbnail_path" gorm:"not null"`
	OriginalKey  string `json:"-" gorm:"not null"`
	ThumbnailKey string `json:"-"`

	// Relationships
	User     User           `json:"-" gorm:"foreignKey:UserID"`
	Metadata *ImageMetadata `json:"metadata,omitempty" gorm:"foreignKey:ImageID"`
}

// ImageMetadata holds the enrichment result for exactly one image.
// It is written once, by the enrichment runner, and never updated.
type ImageMetadata struct {
	gorm.Model
	ImageID     uint     `json:"image_id" gorm:"uniqueIndex;not null"`
	UserID      uint     `json:"user_id" gorm:"not null;index"`
	Description string   `json:"description"`
	Tags        []string `json:"tags" gorm:"serializer:json"`
	Colors      []string `json:"colors" gorm:"serializer:json"`
	Status      string   `json:"ai_processing_status" gorm:"not null;default:'pending'"`
}
