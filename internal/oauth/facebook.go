package oauth

import "github.com/clarawendel/artisan-market/internal/market"

const graphVersion = "v18.0"

// FacebookEndpoint describes the Facebook Login surface. The upgrade
// uses the fb_exchange_token grant against the Graph API.
func FacebookEndpoint(clientID, clientSecret, redirectURI string) Endpoint {
	return Endpoint{
		Platform:     market.PlatformFacebook,
		AuthURL:      "https://www.facebook.com/" + graphVersion + "/dialog/oauth",
		TokenURL:     "https://graph.facebook.com/" + graphVersion + "/oauth/access_token",
		UpgradeURL:   "https://graph.facebook.com/" + graphVersion + "/oauth/access_token",
		UpgradeGrant: "fb_exchange_token",
		Scopes:       []string{"public_profile", "email"},
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURI:  redirectURI,
	}
}
