// Package session implements the join-form hand-off: after a successful
// form submission the page layer receives a short-lived signed token that
// carries the chosen username and room to the chat surface. The token is a
// convenience, not identity proof; the core re-validates everything it is
// given.
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "sobachat"

// Claims carries the join hand-off payload.
type Claims struct {
	Username string `json:"username"`
	Room     string `json:"room"`
	jwt.RegisteredClaims
}

// Manager issues and verifies hand-off tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager builds a manager with the given HMAC secret and token lifetime.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token for the given username and room.
func (m *Manager) Issue(username, room string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		Room:     room,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates a token, returning its claims.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.Issuer != issuer {
		return nil, fmt.Errorf("invalid issuer")
	}

	return claims, nil
}
