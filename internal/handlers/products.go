package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clarawendel/artisan-market/internal/market"
	"github.com/clarawendel/artisan-market/internal/publish"
	"github.com/clarawendel/artisan-market/internal/session"
	"github.com/clarawendel/artisan-market/storage"
	"github.com/clarawendel/artisan-market/storage/db"
	"github.com/gorilla/schema"
)

type ProductsHandler struct {
	store        *storage.Storage
	orchestrator *publish.Orchestrator
	decoder      *schema.Decoder
}

func NewProductsHandler(store *storage.Storage, orchestrator *publish.Orchestrator) *ProductsHandler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return &ProductsHandler{
		store:        store,
		orchestrator: orchestrator,
		decoder:      decoder,
	}
}

type ProductResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Category    string             `json:"category,omitempty"`
	Price       float64            `json:"price"`
	Material    string             `json:"material,omitempty"`
	Dimensions  *market.Dimensions `json:"dimensions,omitempty"`
	Description string             `json:"description,omitempty"`
	Images      []string           `json:"images"`
}

// HandleCreateProduct is the publish entry point. It accepts the
// add-product form (or the same shape as JSON), submits it to the
// orchestrator, and either reports the flow result or redirects the
// browser into the OAuth flow of the first platform still needing
// authorization.
func (h *ProductsHandler) HandleCreateProduct(c echo.Context) error {
	draft, err := h.decodeDraft(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product payload")
	}

	sessionID := session.ID(c)
	result, err := h.orchestrator.Submit(c.Request().Context(), sessionID, draft)
	if err != nil {
		switch publish.KindOf(err) {
		case publish.KindValidation:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case publish.KindPartialFailure, publish.KindTotalFailure:
			// Per-platform details are in the result; the draft stays
			// staged so the user can retry.
			return c.JSON(http.StatusOK, flowResponse(result, err))
		default:
			slog.Error("product submit failed", "error", err, "product", draft.Name)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to submit product")
		}
	}

	if result.Status == publish.StatusAuthorizationRequired {
		if wantsJSON(c) {
			return c.JSON(http.StatusOK, flowResponse(result, nil))
		}
		return c.Redirect(http.StatusSeeOther, result.RedirectURL)
	}

	return c.JSON(http.StatusOK, flowResponse(result, nil))
}

func (h *ProductsHandler) decodeDraft(c echo.Context) (market.ProductDraft, error) {
	var draft market.ProductDraft

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
		if err := c.Bind(&draft); err != nil {
			return draft, err
		}
		return draft, nil
	}

	values, err := c.FormParams()
	if err != nil {
		return draft, err
	}
	if err := h.decoder.Decode(&draft, values); err != nil {
		return draft, err
	}
	// gorilla/schema cannot reach into the nested struct from the flat
	// form fields the add-product page uses.
	var dims market.Dimensions
	if err := h.decoder.Decode(&dims, values); err == nil && (dims.Length != 0 || dims.Width != 0) {
		draft.Dimensions = &dims
	}
	return draft, nil
}

func (h *ProductsHandler) HandleListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.store.Queries.ListProducts(ctx)
	if err != nil {
		slog.Error("failed to list products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list products")
	}

	slugs, err := h.categorySlugs(c)
	if err != nil {
		return err
	}

	response := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		images, err := h.store.Queries.GetProductImages(ctx, p.ID)
		if err != nil {
			slog.Error("failed to load product images", "error", err, "product_id", p.ID)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list products")
		}
		response = append(response, productResponse(p, images, slugs))
	}

	return c.JSON(http.StatusOK, response)
}

// categorySlugs maps category IDs to slugs for response assembly.
func (h *ProductsHandler) categorySlugs(c echo.Context) (map[string]string, error) {
	categories, err := h.store.Queries.ListCategories(c.Request().Context())
	if err != nil {
		slog.Error("failed to list categories", "error", err)
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Failed to load categories")
	}
	slugs := make(map[string]string, len(categories))
	for _, cat := range categories {
		slugs[cat.ID] = cat.Slug
	}
	return slugs, nil
}

func (h *ProductsHandler) HandleGetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	product, err := h.store.Queries.GetProduct(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		slog.Error("failed to get product", "error", err, "id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get product")
	}

	images, err := h.store.Queries.GetProductImages(ctx, id)
	if err != nil {
		slog.Error("failed to load product images", "error", err, "product_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get product")
	}

	slugs, err := h.categorySlugs(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, productResponse(product, images, slugs))
}

func (h *ProductsHandler) HandleListCategories(c echo.Context) error {
	categories, err := h.store.Queries.ListCategories(c.Request().Context())
	if err != nil {
		slog.Error("failed to list categories", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list categories")
	}

	type categoryResponse struct {
		ID   string `json:"id"`
		Slug string `json:"slug"`
		Name string `json:"name"`
	}
	response := make([]categoryResponse, 0, len(categories))
	for _, cat := range categories {
		response = append(response, categoryResponse{ID: cat.ID, Slug: cat.Slug, Name: cat.Name})
	}
	return c.JSON(http.StatusOK, response)
}

type flowResponseBody struct {
	Status      publish.Status                           `json:"status"`
	Platform    market.Platform                          `json:"platform,omitempty"`
	RedirectURL string                                   `json:"redirectUrl,omitempty"`
	ProductID   string                                   `json:"productId,omitempty"`
	Posts       map[market.Platform]*publish.Publication `json:"posts,omitempty"`
	Results     []platformResult                         `json:"results,omitempty"`
	Error       string                                   `json:"error,omitempty"`
}

type platformResult struct {
	Platform  market.Platform `json:"platform"`
	State     string          `json:"state"`
	ResultRef string          `json:"resultRef,omitempty"`
	ErrorKind string          `json:"errorKind,omitempty"`
	Error     string          `json:"error,omitempty"`
}

func flowResponse(result *publish.FlowResult, flowErr error) flowResponseBody {
	body := flowResponseBody{
		Status:      result.Status,
		Platform:    result.Platform,
		RedirectURL: result.RedirectURL,
		ProductID:   result.ProductID,
		Posts:       result.Posts,
	}
	for _, outcome := range result.Outcomes {
		body.Results = append(body.Results, platformResult{
			Platform:  outcome.Platform,
			State:     string(outcome.State),
			ResultRef: outcome.ResultRef,
			ErrorKind: outcome.ErrorKind,
			Error:     outcome.ErrorMsg,
		})
	}
	if flowErr != nil {
		body.Error = flowErr.Error()
	}
	return body
}

func wantsJSON(c echo.Context) bool {
	accept := c.Request().Header.Get(echo.HeaderAccept)
	return strings.Contains(accept, echo.MIMEApplicationJSON)
}

func productResponse(p db.Product, images []db.ProductImage, categorySlugs map[string]string) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       float64(p.PriceCents) / 100,
		Material:    p.Material.String,
		Description: p.Description.String,
		Images:      make([]string, 0, len(images)),
	}
	if p.CategoryID.Valid {
		resp.Category = categorySlugs[p.CategoryID.String]
	}
	if p.LengthCm.Valid || p.WidthCm.Valid {
		resp.Dimensions = &market.Dimensions{
			Length: p.LengthCm.Float64,
			Width:  p.WidthCm.Float64,
		}
	}
	for _, img := range images {
		resp.Images = append(resp.Images, img.ImageUrl)
	}
	return resp
}
