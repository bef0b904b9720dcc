package content

import (
	"regexp"
	"strings"
)

// Fixed marketing tags included in every hashtag block. Category- and
// material-derived tags are unioned in after these.
var baseHashtags = []string{
	"#HandmadeWithLove",
	"#ArtisanMade",
	"#SupportLocal",
	"#UniqueDesign",
	"#HandcraftedQuality",
	"#ShopSmall",
	"#OneOfAKind",
	"#Craftsmanship",
	"#MadeByHand",
	"#ArtisanMarketplace",
	"#SupportArtists",
	"#HandmadeGifts",
}

const (
	minHashtags = 10
	maxHashtags = 20
)

// Extra tags used to top up a short block so every post carries at
// least minHashtags.
var fillerHashtags = []string{
	"#CraftedWithCare",
	"#AuthenticCraft",
	"#TraditionalCraft",
	"#LocalArtisan",
	"#SpecialGift",
	"#ShopLocal",
}

var hashtagPattern = regexp.MustCompile(`#\w+`)

var nonWordPattern = regexp.MustCompile(`[^0-9A-Za-z]+`)

// DeriveTag turns free text like "home decor" or "Sterling Silver"
// into a single hashtag: non-alphanumeric characters are stripped,
// internal whitespace removed, and each word capitalized.
func DeriveTag(text string) string {
	words := nonWordPattern.Split(text, -1)
	var b strings.Builder
	for _, word := range words {
		if word == "" {
			continue
		}
		b.WriteString(strings.ToUpper(word[:1]))
		b.WriteString(word[1:])
	}
	if b.Len() == 0 {
		return ""
	}
	return "#" + b.String()
}

// Tags builds the hashtag block directly from product attributes,
// without consulting the model.
func Tags(category, material string) []string {
	return buildHashtags(category, material)
}

// buildHashtags unions the fixed marketing set with derived tags, with
// case-insensitive dedup, clamped to [minHashtags, maxHashtags].
func buildHashtags(derived ...string) []string {
	tags := make([]string, 0, maxHashtags)
	seen := make(map[string]bool)

	add := func(tag string) {
		if tag == "" || len(tags) >= maxHashtags {
			return
		}
		key := strings.ToLower(tag)
		if seen[key] {
			return
		}
		seen[key] = true
		tags = append(tags, tag)
	}

	for _, tag := range baseHashtags {
		add(tag)
	}
	for _, text := range derived {
		add(DeriveTag(text))
	}
	for _, tag := range fillerHashtags {
		if len(tags) >= minHashtags {
			break
		}
		add(tag)
	}

	return tags
}

// extractHashtags pulls the hashtags out of model-generated text, then
// normalizes through the same union/dedup/clamp as the fallback so
// both paths satisfy the same shape.
func extractHashtags(text string, derived ...string) []string {
	found := hashtagPattern.FindAllString(text, -1)

	tags := make([]string, 0, maxHashtags)
	seen := make(map[string]bool)
	for _, tag := range found {
		if len(tags) >= maxHashtags {
			break
		}
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, tag)
	}

	if len(tags) >= minHashtags {
		return tags
	}

	// Model produced too few; top up from the fixed set.
	for _, tag := range buildHashtags(derived...) {
		if len(tags) >= minHashtags {
			break
		}
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, tag)
	}
	return tags
}

// stripHashtags removes hashtag runs from generated body text so the
// block can be re-appended in the template's fixed position.
func stripHashtags(text string) string {
	lines := strings.Split(text, "\n")
	var kept []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			kept = append(kept, line)
			continue
		}
		withoutTags := strings.TrimSpace(hashtagPattern.ReplaceAllString(trimmed, ""))
		if withoutTags == "" || withoutTags == "**Hashtags:**" || withoutTags == "Hashtags:" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
