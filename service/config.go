package service

import (
	"os"
	"strconv"
)

type Config struct {
	Environment string
	Port        string
	BaseURL     string
	DBPath      string

	Session struct {
		Secret string
	}

	Facebook struct {
		AppID       string
		AppSecret   string
		RedirectURI string
	}

	Instagram struct {
		ClientID     string
		ClientSecret string
		RedirectURI  string
	}

	// Gemini model selection (GEMINI_MODEL) and the Ollama alternative
	// (OLLAMA_URL, OLLAMA_MODEL) are read by their clients directly.
	Gemini struct {
		APIKey string
	}

	Upload struct {
		MaxSize int64
		Dir     string
	}
}

func LoadConfig() (*Config, error) {
	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8000"),
		DBPath:      getEnv("DB_PATH", "./db/artisan-market.db"),
	}

	// Session
	config.Session.Secret = getEnv("SESSION_SECRET", "development-secret")

	// Facebook
	config.Facebook.AppID = getEnv("FACEBOOK_APP_ID", "")
	config.Facebook.AppSecret = getEnv("FACEBOOK_APP_SECRET", "")
	config.Facebook.RedirectURI = getEnv("FACEBOOK_REDIRECT_URI", config.BaseURL+"/api/facebook/auth")

	// Instagram
	config.Instagram.ClientID = getEnv("INSTAGRAM_CLIENT_ID", "")
	config.Instagram.ClientSecret = getEnv("INSTAGRAM_CLIENT_SECRET", "")
	config.Instagram.RedirectURI = getEnv("INSTAGRAM_REDIRECT_URI", config.BaseURL+"/api/instagram/auth")

	// Gemini
	config.Gemini.APIKey = getEnv("GEMINI_API_KEY", "")

	// Upload
	maxSize := getEnv("UPLOAD_MAX_SIZE", "10485760") // 10MB default
	if size, err := strconv.ParseInt(maxSize, 10, 64); err == nil {
		config.Upload.MaxSize = size
	} else {
		config.Upload.MaxSize = 10485760
	}
	config.Upload.Dir = getEnv("UPLOAD_DIR", "./public/uploads")

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
