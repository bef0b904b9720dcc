package service

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clarawendel/artisan-market/internal/content"
	"github.com/clarawendel/artisan-market/internal/gemini"
	"github.com/clarawendel/artisan-market/internal/handlers"
	"github.com/clarawendel/artisan-market/internal/images"
	"github.com/clarawendel/artisan-market/internal/market"
	"github.com/clarawendel/artisan-market/internal/oauth"
	"github.com/clarawendel/artisan-market/internal/ollama"
	"github.com/clarawendel/artisan-market/internal/publish"
	"github.com/clarawendel/artisan-market/internal/social"
	"github.com/clarawendel/artisan-market/internal/store"
	"github.com/clarawendel/artisan-market/storage"
)

type Service struct {
	storage *storage.Storage
	config  *Config

	productsHandler  *handlers.ProductsHandler
	oauthHandler     *handlers.OAuthHandler
	resumeHandler    *handlers.ResumeHandler
	generateHandler  *handlers.GenerateHandler
	facebookHandler  *handlers.FacebookHandler
	instagramHandler *handlers.InstagramHandler
	imagesHandler    *handlers.ImagesHandler
}

func New(st *storage.Storage, config *Config) *Service {
	sqlStore := store.NewSQLStore(st.Queries)

	// Gemini when an API key is present; a local Ollama server when
	// OLLAMA_URL is set and the model is actually pulled; otherwise
	// the generator's template fallback.
	var model content.TextModel = gemini.NewClient(config.Gemini.APIKey)
	if !model.Configured() {
		if local := ollama.NewClient(); local.Configured() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if local.IsAvailable(ctx) {
				model = local
			} else {
				slog.Warn("ollama configured but not reachable, using template fallback", "url", local.BaseURL())
			}
			cancel()
		}
	}
	generator := content.NewGenerator(model)

	signer := oauth.NewStateSigner(config.Session.Secret)
	connectors := map[market.Platform]*oauth.Connector{
		market.PlatformFacebook: oauth.NewConnector(
			oauth.FacebookEndpoint(config.Facebook.AppID, config.Facebook.AppSecret, config.Facebook.RedirectURI),
			signer,
		),
		market.PlatformInstagram: oauth.NewConnector(
			oauth.InstagramEndpoint(config.Instagram.ClientID, config.Instagram.ClientSecret, config.Instagram.RedirectURI),
			signer,
		),
	}

	facebookComposer := social.NewFacebookComposer()
	instagramPublisher := social.NewInstagramPublisher()

	// Facebook consumer accounts cannot be posted to through the Graph
	// API, so the flow hands back clipboard content; Instagram posts
	// directly through the content publishing API.
	composers := map[market.Platform]publish.Composer{
		market.PlatformFacebook:  &publish.FacebookClipboard{Composer: facebookComposer},
		market.PlatformInstagram: &publish.InstagramDirect{Publisher: instagramPublisher},
	}
	authorizers := map[market.Platform]publish.Authorizer{
		market.PlatformFacebook:  connectors[market.PlatformFacebook],
		market.PlatformInstagram: connectors[market.PlatformInstagram],
	}

	orchestrator := publish.NewOrchestrator(sqlStore, sqlStore, sqlStore, generator, composers, authorizers)

	uploader := images.NewUploader(config.Upload.Dir)

	return &Service{
		storage:          st,
		config:           config,
		productsHandler:  handlers.NewProductsHandler(st, orchestrator),
		oauthHandler:     handlers.NewOAuthHandler(connectors, sqlStore),
		resumeHandler:    handlers.NewResumeHandler(orchestrator),
		generateHandler:  handlers.NewGenerateHandler(generator),
		facebookHandler:  handlers.NewFacebookHandler(facebookComposer),
		instagramHandler: handlers.NewInstagramHandler(generator, instagramPublisher),
		imagesHandler:    handlers.NewImagesHandler(uploader, config.Upload.MaxSize),
	}
}

func (s *Service) RegisterRoutes(e *echo.Echo) {
	// Locally stored uploads are served straight off disk; Cloudinary
	// uploads carry absolute URLs and never hit this route.
	e.Static("/uploads", s.config.Upload.Dir)

	api := e.Group("/api")

	// Products
	api.POST("/products", s.productsHandler.HandleCreateProduct)
	api.GET("/products", s.productsHandler.HandleListProducts)
	api.GET("/products/:id", s.productsHandler.HandleGetProduct)
	api.GET("/categories", s.productsHandler.HandleListCategories)

	// OAuth entry and callback share one route per platform; the
	// handler branches on the presence of callback query params.
	api.GET("/facebook/auth", s.oauthHandler.HandleAuth(market.PlatformFacebook))
	api.GET("/instagram/auth", s.oauthHandler.HandleAuth(market.PlatformInstagram))
	api.GET("/publish/resume", s.resumeHandler.HandleResume)

	// Content generation
	api.POST("/generate-description", s.generateHandler.HandleGenerateDescription)
	api.POST("/enhance-image", s.generateHandler.HandleEnhanceImage)

	// Direct platform endpoints
	api.POST("/facebook/post", s.facebookHandler.HandlePost)
	api.POST("/facebook/create-post", s.facebookHandler.HandleCreatePost)
	api.GET("/facebook/profile", s.facebookHandler.HandleProfile)
	api.POST("/instagram/post", s.instagramHandler.HandlePost)
	api.GET("/instagram/profile", s.instagramHandler.HandleProfile)

	// Image uploads
	api.POST("/images", s.imagesHandler.HandleUpload)

	// Health check - no auth
	e.GET("/health", s.handleHealth)
}

func (s *Service) handleHealth(c echo.Context) error {
	if err := s.storage.DB().PingContext(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":      "healthy",
		"environment": s.config.Environment,
	})
}
