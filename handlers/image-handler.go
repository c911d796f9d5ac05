package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gallerai/gallerai/database"
	"github.com/gallerai/gallerai/enrichment"
	"github.com/gallerai/gallerai/imaging"
	"github.com/gallerai/gallerai/middleware"
	"github.com/gallerai/gallerai/models"
	"github.com/gallerai/gallerai/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	uploader *storage.ClientUploader
	enricher *enrichment.Runner
)

const defaultPageLimit = 20

// SetupImagePipeline wires the blob store and the enrichment pool into
// the image handlers. Call once from main before serving.
func SetupImagePipeline(u *storage.ClientUploader, r *enrichment.Runner) {
	uploader = u
	enricher = r
}

// UploadImages stores one or more images (multipart field "files"),
// generates thumbnails synchronously, and queues background enrichment
// per image. The response never waits for enrichment.
func UploadImages(c *fiber.Ctx) error {
	userID, err := middleware.CheckUserLoggedIn(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Unauthorized Request",
			"data":    nil,
		})
	}

	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "No files provided",
			"data":    nil,
		})
	}

	db := database.GetDB()
	uploaded := make([]ImageResponse, 0, len(form.File["files"]))

	for _, file := range form.File["files"] {
		contentType := file.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": fmt.Sprintf("File %s is not an image", file.Filename),
				"data":    nil,
			})
		}

		src, err := file.Open()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Error opening the file",
				"data":    nil,
			})
		}
		content, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Error reading the file",
				"data":    nil,
			})
		}

		thumb, err := imaging.Normalize(content, imaging.ThumbnailWidth, imaging.ThumbnailHeight)
		if err != nil {
			var decodeErr *imaging.DecodeError
			if errors.As(err, &decodeErr) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"status":  "error",
					"message": fmt.Sprintf("File %s could not be decoded as an image", file.Filename),
					"data":    nil,
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Error creating the thumbnail",
				"data":    nil,
			})
		}

		uniqueName := uuid.New().String() + filepath.Ext(file.Filename)
		originalKey := "images/" + uniqueName
		thumbnailKey := "thumbnails/thumb_" + uniqueName

		originalURL, err := uploader.Upload(originalKey, content, contentType)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Error uploading the file",
				"data":    nil,
			})
		}

		thumbnailURL, err := uploader.Upload(thumbnailKey, thumb, "image/jpeg")
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Error uploading the thumbnail",
				"data":    nil,
			})
		}

		image := models.Image{
			UserID:       userID,
			Filename:     file.Filename,
			OriginalURL:  originalURL,
			ThumbnailURL: thumbnailURL,
			OriginalKey:  originalKey,
			ThumbnailKey: thumbnailKey,
		}
		if err := db.Create(&image).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Error saving to database",
				"data":    nil,
			})
		}

		enricher.Enqueue(enrichment.Job{
			ImageID: image.ID,
			UserID:  userID,
			Image:   content,
		})

		uploaded = append(uploaded, newImageResponse(image))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Successfully uploaded the files",
		"data":    uploaded,
	})
}

// GetImages lists the caller's images, newest first, with any metadata
// joined in.
func GetImages(c *fiber.Ctx) error {
	userID, err := middleware.CheckUserLoggedIn(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Unauthorized Request",
			"data":    nil,
		})
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", defaultPageLimit)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}

	db := database.GetDB()
	var images []models.Image
	err = db.Preload("Metadata").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&images).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"data":    nil,
		})
	}

	responses := make([]ImageResponse, 0, len(images))
	for _, img := range images {
		responses = append(responses, newImageResponse(img))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Images fetched",
		"data":    responses,
	})
}

// DownloadOriginal streams the original image bytes back from the blob
// store.
func DownloadOriginal(c *fiber.Ctx) error {
	userID, err := middleware.CheckUserLoggedIn(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Unauthorized Request",
			"data":    nil,
		})
	}

	imageID, err := c.ParamsInt("id")
	if err != nil || imageID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid image ID",
			"data":    nil,
		})
	}

	db := database.GetDB()
	var image models.Image
	if err := db.Where("id = ? AND user_id = ?", imageID, userID).First(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "Image not found",
				"data":    nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"data":    nil,
		})
	}

	data, err := uploader.Download(image.OriginalKey)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Error fetching the file",
			"data":    nil,
		})
	}

	c.Set(fiber.HeaderContentType, http.DetectContentType(data))
	return c.Send(data)
}
