// Package ipc provides the attach transport between the extension host and
// UI front-ends: a local websocket endpoint relaying the host's two message
// channels verbatim.
package ipc

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the token claims for attach authentication.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenAuthority issues and validates attach tokens against a locally
// configured shared secret. There is no remote key authority; the host and
// its front-ends live on the same machine.
type TokenAuthority struct {
	secret   []byte
	audience string
}

// NewTokenAuthority constructs an authority for the given secret.
func NewTokenAuthority(secret, audience string) *TokenAuthority {
	return &TokenAuthority{secret: []byte(secret), audience: audience}
}

// Issue signs a token valid for ttl.
func (a *TokenAuthority) Issue(ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{a.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign attach token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token.
func (a *TokenAuthority) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithAudience(a.audience))
	if err != nil {
		return nil, fmt.Errorf("parse attach token: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid attach token")
	}
	return claims, nil
}
