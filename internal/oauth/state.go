package oauth

import (
	"fmt"
	"time"

	"github.com/clarawendel/artisan-market/internal/market"
	"github.com/golang-jwt/jwt/v5"
)

const stateTTL = 10 * time.Minute

// StateSigner signs the OAuth state parameter so the session that
// started an authorization is the one that finishes it. The whole
// in-memory call stack is lost across the provider redirect; the
// signed state is what survives.
type StateSigner struct {
	secret []byte
}

func NewStateSigner(secret string) *StateSigner {
	return &StateSigner{secret: []byte(secret)}
}

type stateClaims struct {
	Platform string `json:"platform"`
	jwt.RegisteredClaims
}

func (s *StateSigner) Sign(sessionID string, platform market.Platform) (string, error) {
	claims := stateClaims{
		Platform: string(platform),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(stateTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign state: %w", err)
	}
	return signed, nil
}

// Verify checks the state token and returns the session it was issued
// for. An expired or tampered state fails verification; the caller
// treats that the same as a denied authorization.
func (s *StateSigner) Verify(state string, platform market.Platform) (string, error) {
	var claims stateClaims
	_, err := jwt.ParseWithClaims(state, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("verify state: %w", err)
	}
	if claims.Platform != string(platform) {
		return "", fmt.Errorf("state issued for platform %q, got callback for %q", claims.Platform, platform)
	}
	return claims.Subject, nil
}
