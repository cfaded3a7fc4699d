package cart

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/campusmart/storefront/pkg/config"
)

const cartTokenAudience = "cart"

var cartTokenSigningMethod = jwt.SigningMethodHS256

// TokenIssuer mints and verifies the signed X-Cart-Token values that bind a
// shopper to a cart id.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenIssuer builds an issuer from the JWT config. Tokens live as long
// as the persisted cart.
func NewTokenIssuer(cfg config.JWTConfig, ttl time.Duration) (*TokenIssuer, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, fmt.Errorf("jwt secret required for cart tokens")
	}
	if strings.TrimSpace(cfg.Issuer) == "" {
		return nil, fmt.Errorf("jwt issuer required for cart tokens")
	}
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(cfg.Secret), issuer: cfg.Issuer, ttl: ttl}, nil
}

// Mint issues a token for a fresh cart id.
func (t *TokenIssuer) Mint(now time.Time) (token string, cartID string, err error) {
	cartID = uuid.NewString()
	signed, err := t.sign(cartID, now)
	if err != nil {
		return "", "", err
	}
	return signed, cartID, nil
}

// CartID verifies token and returns the cart id it carries.
func (t *TokenIssuer) CartID(token string) (string, bool) {
	claims, ok := t.verify(token, time.Now())
	if !ok {
		return "", false
	}
	return claims.Subject, true
}

// Renew verifies token and, once less than half of its lifetime is left,
// re-signs it for the same cart id. Carts stay reachable for as long as the
// shopper keeps using them.
func (t *TokenIssuer) Renew(token string, now time.Time) (string, string, bool) {
	claims, ok := t.verify(token, now)
	if !ok {
		return "", "", false
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Sub(now) >= t.ttl/2 {
		return token, claims.Subject, true
	}
	renewed, err := t.sign(claims.Subject, now)
	if err != nil {
		return token, claims.Subject, true
	}
	return renewed, claims.Subject, true
}

func (t *TokenIssuer) sign(cartID string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    t.issuer,
		Subject:   cartID,
		Audience:  jwt.ClaimStrings{cartTokenAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	signed, err := jwt.NewWithClaims(cartTokenSigningMethod, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("signing cart token: %w", err)
	}
	return signed, nil
}

func (t *TokenIssuer) verify(token string, now time.Time) (*jwt.RegisteredClaims, bool) {
	if strings.TrimSpace(token) == "" {
		return nil, false
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != cartTokenSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{cartTokenSigningMethod.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(cartTokenAudience),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return nil, false
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, false
	}
	return claims, true
}
