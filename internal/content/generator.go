// Package content produces marketing copy for product listings. The
// primary path asks a generative model; when the model is not
// configured or errors, a deterministic template takes over. Callers
// never see a generation failure.
package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/clarawendel/artisan-market/internal/market"
)

// TextModel is the generative backend. *gemini.Client satisfies it.
type TextModel interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Configured() bool
}

type Generator struct {
	model TextModel
}

// NewGenerator builds a Generator. A nil model means fallback-only.
func NewGenerator(model TextModel) *Generator {
	return &Generator{model: model}
}

type Input struct {
	Name     string
	Category market.Category
	Material string

	// WithMusic also asks for Instagram music suggestions.
	WithMusic bool
}

// Generate resolves to usable content for every input. It tries the
// model first and falls back to the template on any failure.
func (g *Generator) Generate(ctx context.Context, in Input) market.GeneratedContent {
	if g.model == nil || !g.model.Configured() {
		slog.Debug("generative model not configured, using fallback content", "product", in.Name)
		return g.fallback(in)
	}

	generated, err := g.model.GenerateText(ctx, buildPrompt(in))
	if err != nil {
		slog.Warn("content generation failed, using fallback content", "product", in.Name, "error", err)
		return g.fallback(in)
	}

	result := market.GeneratedContent{
		Body:     stripHashtags(generated),
		Hashtags: extractHashtags(generated, string(in.Category), in.Material),
	}
	if result.Body == "" {
		// Model answered with nothing but tags.
		result.Body = fallbackBody(in)
	}
	if in.WithMusic {
		result.MusicSuggestions = g.musicSuggestions(ctx, in)
	}
	return result
}

func (g *Generator) fallback(in Input) market.GeneratedContent {
	result := market.GeneratedContent{
		Body:     fallbackBody(in),
		Hashtags: buildHashtags(string(in.Category), in.Material),
	}
	if in.WithMusic {
		result.MusicSuggestions = fallbackMusic
	}
	return result
}

func buildPrompt(in Input) string {
	return fmt.Sprintf(`Create a professional, engaging product description for an artisan marketplace. This will be used both on the website and for social media posts.

Product Details:
- Name: %s
- Material: %s
- Category: %s

Requirements:
1. Write in an inspiring, authentic tone that celebrates craftsmanship
2. Highlight the unique handmade qualities
3. Include emotional appeal about supporting local artisans
4. Keep it engaging but professional
5. Include 10-15 relevant hashtags such as #HandmadeWithLove #ArtisanMade #SupportLocal #UniqueDesign
6. Add category-specific and material-specific hashtags

Format the response as a compelling 2-3 paragraph description followed by the hashtags on their own lines.`,
		in.Name,
		materialOrDefault(in.Material),
		categoryOrDefault(in.Category),
	)
}

func fallbackBody(in Input) string {
	name := strings.TrimSpace(in.Name)
	material := materialOrDefault(in.Material)
	category := categoryOrDefault(in.Category)

	return fmt.Sprintf(`Discover the beauty of authentic craftsmanship with this stunning %s. Carefully crafted from %s, this piece represents the dedication and skill of local artisans who pour their heart into every creation.

Each piece tells a unique story of traditional techniques passed down through generations, combined with contemporary design sensibilities. The quality of %s ensures durability while maintaining the authentic handmade character that makes each %s truly special.

Support local artisans and bring home a piece that's not just a product, but a work of art that celebrates human creativity and craftsmanship.`,
		strings.ToLower(name),
		strings.ToLower(material),
		strings.ToLower(material),
		strings.ToLower(category),
	)
}

const fallbackMusic = "• Aesthetic vibes playlist\n• Cozy crafting sounds\n• Artisan workshop ambiance"

func (g *Generator) musicSuggestions(ctx context.Context, in Input) string {
	prompt := fmt.Sprintf(`Suggest 3 trending Instagram music tracks that would pair well with a handmade %s post.

Consider:
- Aesthetic/artisan vibes
- Music that complements craftsmanship content

Format as a simple list with track names and artists.`,
		strings.ToLower(categoryOrDefault(in.Category)),
	)

	music, err := g.model.GenerateText(ctx, prompt)
	if err != nil {
		slog.Debug("music suggestion generation failed, using fallback", "error", err)
		return fallbackMusic
	}
	return music
}

func materialOrDefault(material string) string {
	if strings.TrimSpace(material) == "" {
		return "premium quality materials"
	}
	return material
}

func categoryOrDefault(category market.Category) string {
	if category == "" {
		return "handcrafted item"
	}
	return category.DisplayName()
}
