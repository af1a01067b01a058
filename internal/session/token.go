// Package session signs and verifies the opaque session tokens handed to
// browsers. A token only names a server-side session row; it never grants
// access on its own.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/dashboard-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "dashboard-api"

var ErrInvalidToken = errors.New("invalid session token")

type Claims struct {
	SessionID string
	UserID    string
	ExpiresAt time.Time
}

type Signer struct {
	key []byte
}

func NewSigner(key []byte) *Signer {
	return &Signer{key: key}
}

func (s *Signer) Sign(sess *domain.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        sess.ID,
		Subject:   sess.UserID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (s *Signer) Parse(raw string) (*Claims, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Claims{
		SessionID: claims.ID,
		UserID:    claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
