package handler

import (
	"time"

	"github.com/gallerai/gallerai/models"
	"github.com/gallerai/gallerai/query"
)

type MetadataResponse struct {
	ID          uint      `json:"id"`
	ImageID     uint      `json:"image_id"`
	UserID      uint      `json:"user_id"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Colors      []string  `json:"colors"`
	Status      string    `json:"ai_processing_status"`
	CreatedAt   time.Time `json:"created_at"`
}

type ImageResponse struct {
	ID           uint              `json:"id"`
	Filename     string            `json:"filename"`
	OriginalURL  string            `json:"original_path"`
	ThumbnailURL string            `json:"thumbnail_path"`
	UploadedAt   time.Time         `json:"uploaded_at"`
	UserID       uint              `json:"user_id"`
	Metadata     *MetadataResponse `json:"metadata"`
}

type SearchResponse struct {
	Images  []ImageResponse `json:"images"`
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
	HasMore bool            `json:"has_more"`
}

func newImageResponse(img models.Image) ImageResponse {
	resp := ImageResponse{
		ID:           img.ID,
		Filename:     img.Filename,
		OriginalURL:  img.OriginalURL,
		ThumbnailURL: img.ThumbnailURL,
		UploadedAt:   img.CreatedAt,
		UserID:       img.UserID,
	}

	if img.Metadata != nil {
		resp.Metadata = &MetadataResponse{
			ID:          img.Metadata.ID,
			ImageID:     img.Metadata.ImageID,
			UserID:      img.Metadata.UserID,
			Description: img.Metadata.Description,
			Tags:        img.Metadata.Tags,
			Colors:      img.Metadata.Colors,
			Status:      img.Metadata.Status,
			CreatedAt:   img.Metadata.CreatedAt,
		}
	}

	return resp
}

func newImageResponses(items []query.Item) []ImageResponse {
	out := make([]ImageResponse, 0, len(items))
	for _, it := range items {
		out = append(out, newImageResponse(it.Image))
	}
	return out
}
