package market

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
)

var AllPlatforms = []Platform{
	PlatformFacebook,
	PlatformInstagram,
}

func (p Platform) Valid() bool {
	return p == PlatformFacebook || p == PlatformInstagram
}

type Category string

const (
	CategoryJewelry   Category = "jewelry"
	CategoryPottery   Category = "pottery"
	CategoryTextiles  Category = "textiles"
	CategoryPaintings Category = "paintings"
	CategoryHomeDecor Category = "home-decor"
	CategoryGifts     Category = "gifts"
)

var AllCategories = []Category{
	CategoryJewelry,
	CategoryPottery,
	CategoryTextiles,
	CategoryPaintings,
	CategoryHomeDecor,
	CategoryGifts,
}

func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// DisplayName turns a category slug into a human-readable label,
// e.g. "home-decor" -> "Home Decor".
func (c Category) DisplayName() string {
	parts := strings.Split(string(c), "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

type Dimensions struct {
	Length float64 `json:"length" schema:"length"`
	Width  float64 `json:"width" schema:"width"`
}

// ProductDraft is a user-authored product pending publication. Price is
// kept as the raw form value so validation can report an unparsable
// price instead of silently zeroing it.
type ProductDraft struct {
	Name            string      `json:"name" schema:"name"`
	Category        Category    `json:"category" schema:"category"`
	Price           string      `json:"price" schema:"price"`
	Material        string      `json:"material" schema:"material"`
	Dimensions      *Dimensions `json:"dimensions,omitempty" schema:"-"`
	Description     string      `json:"description" schema:"description"`
	Images          []string    `json:"images" schema:"images"`
	PostToFacebook  bool        `json:"postToFacebook" schema:"postToFacebook"`
	PostToInstagram bool        `json:"postToInstagram" schema:"postToInstagram"`
}

// Validate checks the required fields. It runs before anything is
// staged or any platform is contacted.
func (d ProductDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("product name is required")
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(d.Price), 64)
	if err != nil {
		return fmt.Errorf("price %q is not a number", d.Price)
	}
	if price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if d.Category != "" && !d.Category.Valid() {
		return fmt.Errorf("unknown category %q", d.Category)
	}
	if d.Dimensions != nil && (d.Dimensions.Length < 0 || d.Dimensions.Width < 0) {
		return fmt.Errorf("dimensions must not be negative")
	}
	return nil
}

// PriceValue parses the raw price. Call Validate first; this returns 0
// for unparsable input.
func (d ProductDraft) PriceValue() float64 {
	price, err := strconv.ParseFloat(strings.TrimSpace(d.Price), 64)
	if err != nil {
		return 0
	}
	return price
}

func (d ProductDraft) PriceCents() int64 {
	return int64(d.PriceValue()*100 + 0.5)
}

// RequestedPlatforms lists the platforms the user asked to cross-post
// to, in a fixed order.
func (d ProductDraft) RequestedPlatforms() []Platform {
	var platforms []Platform
	if d.PostToFacebook {
		platforms = append(platforms, PlatformFacebook)
	}
	if d.PostToInstagram {
		platforms = append(platforms, PlatformInstagram)
	}
	return platforms
}

// PrimaryImage returns the first image reference, or "" when the draft
// has no images.
func (d ProductDraft) PrimaryImage() string {
	if len(d.Images) == 0 {
		return ""
	}
	return d.Images[0]
}

type TokenKind string

const (
	TokenShortLived TokenKind = "short-lived"
	TokenLongLived  TokenKind = "long-lived"
)

// PlatformCredential is the access credential held for one platform.
// At most one is kept per platform per session; a new successful OAuth
// exchange replaces the prior one.
type PlatformCredential struct {
	Platform    Platform   `json:"platform"`
	AccessToken string     `json:"accessToken"`
	TokenKind   TokenKind  `json:"tokenKind"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	OwnerID     string     `json:"ownerId,omitempty"`
}

// GeneratedContent is marketing copy produced for a product. It is
// produced fresh per request and never mutated.
type GeneratedContent struct {
	Body             string   `json:"body"`
	Hashtags         []string `json:"hashtags"`
	MusicSuggestions string   `json:"musicSuggestions,omitempty"`
}

type AttemptState string

const (
	AttemptStaged      AttemptState = "staged"
	AttemptAuthorizing AttemptState = "authorizing"
	AttemptAuthorized  AttemptState = "authorized"
	AttemptComposing   AttemptState = "composing"
	AttemptCompleted   AttemptState = "completed"
	AttemptFailed      AttemptState = "failed"
)

// PublishAttempt tracks one platform's leg of a publish flow. Attempts
// are transient; only their terminal outcome is recorded.
type PublishAttempt struct {
	Target    Platform     `json:"target"`
	State     AttemptState `json:"state"`
	ResultRef string       `json:"resultRef,omitempty"`
}
