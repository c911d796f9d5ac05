package handler

import (
	"errors"

	"github.com/gallerai/gallerai/database"
	"github.com/gallerai/gallerai/middleware"
	"github.com/gallerai/gallerai/models"
	"github.com/gallerai/gallerai/query"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// fetchLibrary loads all of one user's images with metadata, newest
// first, as query engine input.
func fetchLibrary(userID uint) ([]query.Item, error) {
	db := database.GetDB()

	var images []models.Image
	err := db.Preload("Metadata").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}

	items := make([]query.Item, 0, len(images))
	for _, img := range images {
		items = append(items, query.Item{Image: img, Meta: img.Metadata})
	}

	return items, nil
}

// SearchImages runs a paginated substring search over descriptions and
// tags of the caller's images.
func SearchImages(c *fiber.Ctx) error {
	userID, err := middleware.CheckUserLoggedIn(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Unauthorized Request",
			"data":    nil,
		})
	}

	type SearchRequest struct {
		Query string `json:"query"`
		Page  int    `json:"page"`
		Limit int    `json:"limit"`
	}

	var req SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
			"data":    nil,
		})
	}

	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "query is required",
			"data":    nil,
		})
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = defaultPageLimit
	}

	items, err := fetchLibrary(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"data":    nil,
		})
	}

	result := query.Search(items, req.Query, req.Page, req.Limit)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Search completed",
		"data": SearchResponse{
			Images:  newImageResponses(result.Images),
			Total:   result.Total,
			Page:    result.Page,
			Limit:   result.Limit,
			HasMore: result.HasMore,
		},
	})
}

// FindSimilarImages ranks the caller's other images by tag and color
// overlap with a reference image.
func FindSimilarImages(c *fiber.Ctx) error {
	userID, err := middleware.CheckUserLoggedIn(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Unauthorized Request",
			"data":    nil,
		})
	}

	type SimilarRequest struct {
		ImageID uint `json:"image_id"`
		Limit   int  `json:"limit"`
	}

	var req SimilarRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
			"data":    nil,
		})
	}

	if req.ImageID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "image_id is required",
			"data":    nil,
		})
	}
	if req.Limit < 1 {
		req.Limit = query.DefaultSimilarLimit
	}

	db := database.GetDB()
	var ref models.ImageMetadata
	if err := db.Where("image_id = ? AND user_id = ?", req.ImageID, userID).First(&ref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "Reference image not found",
				"data":    nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"data":    nil,
		})
	}

	items, err := fetchLibrary(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"data":    nil,
		})
	}

	similar := query.FindSimilar(items, &ref, req.Limit)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Similar images found",
		"data":    newImageResponses(similar),
	})
}

// FilterByColor lists the caller's images whose dominant colors contain
// the requested color.
func FilterByColor(c *fiber.Ctx) error {
	userID, err := middleware.CheckUserLoggedIn(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Unauthorized Request",
			"data":    nil,
		})
	}

	type ColorFilterRequest struct {
		Color string `json:"color"`
		Limit int    `json:"limit"`
	}

	var req ColorFilterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
			"data":    nil,
		})
	}

	if req.Color == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "color is required",
			"data":    nil,
		})
	}
	if req.Limit < 1 {
		req.Limit = defaultPageLimit
	}

	items, err := fetchLibrary(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"data":    nil,
		})
	}

	filtered := query.FilterByColor(items, req.Color, req.Limit)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Images filtered by color",
		"data":    newImageResponses(filtered),
	})
}
