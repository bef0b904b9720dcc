package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// PhotoTips returns photography advice for a product listing. Like
// Generate it tries the model first; without one the caller gets the
// full template, and a model error degrades to the short checklist.
func (g *Generator) PhotoTips(ctx context.Context, name, material string) string {
	if g.model == nil || !g.model.Configured() {
		slog.Debug("generative model not configured, using fallback photo tips", "product", name)
		return fallbackPhotoTips(name)
	}

	tips, err := g.model.GenerateText(ctx, buildPhotoTipsPrompt(name, material))
	if err != nil {
		slog.Warn("photo tip generation failed, using fallback tips", "product", name, "error", err)
		return shortPhotoTips
	}
	return tips
}

func buildPhotoTipsPrompt(name, material string) string {
	return fmt.Sprintf(`Analyze this product image for a handmade %s made from %s.

Provide specific suggestions for:
1. Lighting improvements
2. Background optimization
3. Composition enhancements
4. Professional presentation tips

Keep suggestions practical for artisans taking photos at home.`,
		name,
		materialOrDefault(material),
	)
}

func fallbackPhotoTips(name string) string {
	return fmt.Sprintf(`📸 **Photo Enhancement Tips for %s:**

**Lighting Improvements:**
• Use natural daylight near a window for best results
• Avoid harsh shadows by using a white sheet as a diffuser
• Take photos during golden hour (1 hour after sunrise or before sunset)

**Background Optimization:**
• Use a clean, neutral background (white paper or fabric)
• Remove clutter and distracting elements
• Consider a wooden surface for rustic crafts

**Composition Enhancements:**
• Fill the frame with your product
• Use the rule of thirds for interesting angles
• Take multiple shots from different perspectives

**Professional Presentation:**
• Clean your product thoroughly before photographing
• Show scale by including everyday objects for reference
• Highlight unique textures and craftsmanship details`,
		strings.TrimSpace(name),
	)
}

const shortPhotoTips = `📸 **Photo Enhancement Tips:**

**Quick Tips for Better Product Photos:**
• Use natural light from a window
• Keep backgrounds clean and simple
• Take multiple angles of your product
• Ensure your product is clean and well-presented
• Show the scale and unique details of your handmade item`
