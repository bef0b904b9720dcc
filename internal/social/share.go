package social

import (
	"fmt"
	"net/url"
)

// ComposerShareURL builds the Facebook web composer URL opened next to
// the copied message. With a product URL the sharer dialog pre-fills
// the link and quote; without one the plain composer opens.
func ComposerShareURL(productURL, message string) string {
	if productURL == "" {
		return "https://www.facebook.com/"
	}
	return fmt.Sprintf("https://www.facebook.com/sharer/sharer.php?u=%s&quote=%s",
		url.QueryEscape(productURL),
		url.QueryEscape(message),
	)
}
