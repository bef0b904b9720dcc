// Package social composes and delivers product posts to the platforms.
// Instagram publishes directly through the Graph API; Facebook consumer
// posting has no API path, so its composer prepares copy-paste content
// instead.
package social

import (
	"fmt"
	"strings"

	"github.com/clarawendel/artisan-market/internal/market"
)

const (
	fallbackBody     = "Beautiful handcrafted item made with love and attention to detail."
	fallbackMaterial = "Premium quality materials"
	closingLine      = "✨ Each piece is handmade and unique!"
)

// ComposeMessage renders the shared post template. Every section always
// renders; missing optional fields get a neutral placeholder rather
// than disappearing, so the post shape stays stable.
func ComposeMessage(draft market.ProductDraft, content market.GeneratedContent) string {
	category := "Product"
	if draft.Category != "" {
		category = draft.Category.DisplayName()
	}

	body := strings.TrimSpace(content.Body)
	if body == "" {
		body = strings.TrimSpace(draft.Description)
	}
	if body == "" {
		body = fallbackBody
	}

	material := strings.TrimSpace(draft.Material)
	if material == "" {
		material = fallbackMaterial
	}

	length, width := "N/A", "N/A"
	if draft.Dimensions != nil {
		if draft.Dimensions.Length > 0 {
			length = formatDimension(draft.Dimensions.Length)
		}
		if draft.Dimensions.Width > 0 {
			width = formatDimension(draft.Dimensions.Width)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎨 New %s Available! 🎨\n\n", category)
	fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(draft.Name))
	fmt.Fprintf(&b, "%s\n\n", body)
	fmt.Fprintf(&b, "💰 Price: $%.2f\n", draft.PriceValue())
	fmt.Fprintf(&b, "📦 Material: %s\n", material)
	fmt.Fprintf(&b, "📏 Dimensions: %scm x %scm\n\n", length, width)
	b.WriteString(closingLine)

	if len(content.Hashtags) > 0 {
		b.WriteString("\n\n")
		b.WriteString(strings.Join(content.Hashtags, " "))
	}

	return b.String()
}

func formatDimension(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", v), "0"), ".")
}
