package handlers

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
)

// UploadHandler handles product image uploads. Files are written under the
// configured directory and served back via the /images static route.
type UploadHandler struct {
	uploadDir string
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploadDir string) *UploadHandler {
	return &UploadHandler{
		uploadDir: uploadDir,
	}
}

// RegisterRoutes registers the upload route with the Fiber app.
func (h *UploadHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/upload", h.HandleUpload)
}

// HandleUpload saves a multipart image and returns its public URL.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": 0,
			"error":   "image file is required",
		})
	}

	// image_<unix-ms><ext>, unique enough for a single upload directory.
	filename := fmt.Sprintf("image_%d%s", time.Now().UnixMilli(), filepath.Ext(file.Filename))
	if err := c.SaveFile(file, filepath.Join(h.uploadDir, filename)); err != nil {
		log.Printf("Error saving uploaded image %s: %v", filename, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": 0,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":   1,
		"image_url": fmt.Sprintf("%s/images/%s", c.BaseURL(), filename),
	})
}
