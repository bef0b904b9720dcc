package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/clarawendel/artisan-market/internal/content"
	"github.com/clarawendel/artisan-market/internal/market"
	"github.com/clarawendel/artisan-market/internal/social"
)

// FacebookHandler proxies Facebook Graph operations for the browser:
// page-feed posting, copy-paste post preparation, and profile lookup.
type FacebookHandler struct {
	composer *social.FacebookComposer
	graphURL string
	graph    *graphClient
}

func NewFacebookHandler(composer *social.FacebookComposer) *FacebookHandler {
	return &FacebookHandler{
		composer: composer,
		graphURL: "https://graph.facebook.com/v18.0",
		graph:    newGraphClient(),
	}
}

type facebookPostRequest struct {
	AccessToken     string `json:"accessToken"`
	PageID          string `json:"pageId"`
	Message         string `json:"message"`
	ImageURL        string `json:"imageUrl,omitempty"`
	PageAccessToken string `json:"pageAccessToken,omitempty"`
}

// HandlePost publishes a prepared message to a page feed.
func (h *FacebookHandler) HandlePost(c echo.Context) error {
	var req facebookPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.AccessToken == "" || req.PageID == "" || req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Access token, page ID, and message are required")
	}

	postID, err := h.composer.PublishToPage(c.Request().Context(), req.PageID, req.AccessToken, req.PageAccessToken, req.Message, req.ImageURL)
	if err != nil {
		slog.Error("facebook page post failed", "page_id", req.PageID, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"postId":  postID,
		"message": "Posted to Facebook successfully!",
	})
}

type createPostRequest struct {
	AccessToken string              `json:"accessToken"`
	ProductData market.ProductDraft `json:"productData"`
}

// HandleCreatePost prepares the formatted post for client-side
// copy-paste publication.
func (h *FacebookHandler) HandleCreatePost(c echo.Context) error {
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.AccessToken == "" {
		return c.JSON(http.StatusOK, map[string]any{"success": false, "error": "No access token provided"})
	}
	if req.ProductData.Name == "" {
		return c.JSON(http.StatusOK, map[string]any{"success": false, "error": "No product data provided"})
	}

	gen := market.GeneratedContent{
		Hashtags: content.Tags(string(req.ProductData.Category), req.ProductData.Material),
	}
	post := h.composer.Prepare(req.ProductData, gen)

	return c.JSON(http.StatusOK, map[string]any{
		"success":     true,
		"postContent": post,
		"message":     "Post content prepared successfully!",
	})
}

// HandleProfile proxies the user's profile, pages, and recent posts.
// Page and post list failures degrade to empty lists instead of
// failing the whole lookup.
func (h *FacebookHandler) HandleProfile(c echo.Context) error {
	accessToken := c.QueryParam("accessToken")
	if accessToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Access token required")
	}

	profile, err := h.graph.get(fmt.Sprintf(
		"%s/me?fields=id,name,email,picture.width(200).height(200)&access_token=%s",
		h.graphURL, url.QueryEscape(accessToken),
	))
	if err != nil {
		slog.Error("facebook profile fetch failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch Facebook profile")
	}

	pages := h.graph.list(fmt.Sprintf(
		"%s/me/accounts?fields=id,name,access_token,category&access_token=%s",
		h.graphURL, url.QueryEscape(accessToken),
	), "facebook pages")
	posts := h.graph.list(fmt.Sprintf(
		"%s/me/posts?fields=id,message,created_time,picture,permalink_url&limit=12&access_token=%s",
		h.graphURL, url.QueryEscape(accessToken),
	), "facebook posts")

	return c.JSON(http.StatusOK, map[string]any{
		"success":     true,
		"profile":     profile,
		"pages":       pages,
		"recentPosts": posts,
		"connected":   true,
	})
}
