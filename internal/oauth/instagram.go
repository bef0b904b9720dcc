package oauth

import "github.com/clarawendel/artisan-market/internal/market"

// InstagramEndpoint describes the Instagram Basic Display surface. The
// short-lived exchange goes to api.instagram.com as a form POST; the
// long-lived upgrade goes to graph.instagram.com with the
// ig_exchange_token grant.
func InstagramEndpoint(clientID, clientSecret, redirectURI string) Endpoint {
	return Endpoint{
		Platform:     market.PlatformInstagram,
		AuthURL:      "https://api.instagram.com/oauth/authorize",
		TokenURL:     "https://api.instagram.com/oauth/access_token",
		UpgradeURL:   "https://graph.instagram.com/access_token",
		UpgradeGrant: "ig_exchange_token",
		Scopes:       []string{"user_profile", "user_media"},
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURI:  redirectURI,
	}
}
