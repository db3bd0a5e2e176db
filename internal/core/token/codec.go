// Package token encodes and decodes the signed, expiring claim sets used as
// access and refresh tokens. Both token classes share the same claim shape but
// are signed with distinct secrets, so one can never be replayed as the other.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Vt221001/employee-management/internal/core/domain"
)

var (
	ErrNoSigningSecret  = errors.New("token signing secret not configured")
	ErrExpiredToken     = errors.New("token expired")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrMalformedToken   = errors.New("token malformed")
)

// Claims is the payload carried by both access and refresh tokens.
type Claims struct {
	UserID string      `json:"id"`
	Role   domain.Role `json:"role"`
	Email  string      `json:"email"`
	Name   string      `json:"name"`
	jwt.RegisteredClaims
}

// Codec signs and verifies one class of token (access or refresh).
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec builds a codec for a single token class. The secret may be empty;
// Issue and Verify report ErrNoSigningSecret in that case.
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the lifetime applied to issued tokens.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue signs a token carrying the user's identity claims plus issued-at and
// expiry instants.
func (c *Codec) Issue(user *domain.User) (string, error) {
	if len(c.secret) == 0 {
		return "", ErrNoSigningSecret
	}

	now := time.Now().UTC()
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify parses and validates a token, returning its claims. Expiry is
// checked against the current time; only HS256 signatures are accepted.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	if len(c.secret) == 0 {
		return nil, ErrNoSigningSecret
	}

	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrMalformedToken
		}
	}
	if !tkn.Valid {
		return nil, ErrMalformedToken
	}

	return claims, nil
}

// DecodeUnverified parses a token without checking its signature or expiry.
// Clients use it to read role and expiry out of a token they hold; it must
// never be used for authorization decisions.
func DecodeUnverified(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrMalformedToken
	}
	return claims, nil
}
