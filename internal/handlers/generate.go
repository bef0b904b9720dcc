package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clarawendel/artisan-market/internal/content"
	"github.com/clarawendel/artisan-market/internal/market"
)

type GenerateHandler struct {
	generator *content.Generator
}

func NewGenerateHandler(generator *content.Generator) *GenerateHandler {
	return &GenerateHandler{generator: generator}
}

type generateRequest struct {
	ProductName string `json:"productName"`
	Material    string `json:"material"`
	Category    string `json:"category"`
	ImageData   string `json:"imageData,omitempty"`
}

type generateResponse struct {
	Description string `json:"description"`
}

// HandleGenerateDescription produces marketing copy for the add-product
// form. It answers 200 with usable text even when no generative
// provider is configured; the fallback template covers that.
func (h *GenerateHandler) HandleGenerateDescription(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if strings.TrimSpace(req.ProductName) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "productName is required")
	}

	generated := h.generator.Generate(c.Request().Context(), content.Input{
		Name:     req.ProductName,
		Category: market.Category(req.Category),
		Material: req.Material,
	})

	// The form field holds one text blob: body first, hashtag block after.
	description := generated.Body + "\n\n" + strings.Join(generated.Hashtags, " ")
	return c.JSON(http.StatusOK, generateResponse{Description: description})
}

type enhanceRequest struct {
	ImageData   string `json:"imageData"`
	ProductName string `json:"productName"`
	Material    string `json:"material"`
}

type enhanceResponse struct {
	EnhancedImage string `json:"enhancedImage"`
	Suggestions   string `json:"suggestions"`
	Enhanced      bool   `json:"enhanced"`
}

// HandleEnhanceImage returns photography suggestions for a product
// photo. No pixel processing happens; the image echoes back unchanged
// and the value is in the suggestions, which are always produced.
func (h *GenerateHandler) HandleEnhanceImage(c echo.Context) error {
	var req enhanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if strings.TrimSpace(req.ProductName) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "productName is required")
	}

	suggestions := h.generator.PhotoTips(c.Request().Context(), req.ProductName, req.Material)

	return c.JSON(http.StatusOK, enhanceResponse{
		EnhancedImage: req.ImageData,
		Suggestions:   suggestions,
		Enhanced:      true,
	})
}
