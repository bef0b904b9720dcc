package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clarawendel/artisan-market/internal/images"
)

type ImagesHandler struct {
	uploader *images.Uploader
	maxSize  int64
}

func NewImagesHandler(uploader *images.Uploader, maxSize int64) *ImagesHandler {
	return &ImagesHandler{uploader: uploader, maxSize: maxSize}
}

// HandleUpload stores one product photo from a multipart form and
// returns its public URL. Instagram publishing needs that URL to be
// reachable by the Graph API, which is why Cloudinary is preferred
// over local storage.
func (h *ImagesHandler) HandleUpload(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "An image file is required")
	}
	if h.maxSize > 0 && file.Size > h.maxSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Image exceeds the upload size limit")
	}

	src, err := file.Open()
	if err != nil {
		slog.Error("failed to open uploaded image", "error", err, "filename", file.Filename)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read upload")
	}
	defer src.Close()

	upload, err := h.uploader.Store(c.Request().Context(), src, file.Filename)
	if err != nil {
		slog.Error("image upload failed", "error", err, "filename", file.Filename)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store image")
	}

	slog.Info("image uploaded", "url", upload.URL, "local", upload.Local)
	return c.JSON(http.StatusOK, map[string]any{
		"success":  true,
		"url":      upload.URL,
		"publicId": upload.PublicID,
	})
}
