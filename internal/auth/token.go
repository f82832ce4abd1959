package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/taskboard/backend/domain"
)

// TokenCodec issues and verifies stateless bearer tokens. A token carries the
// subject (user email) and an absolute expiry, HMAC-signed with the server
// secret; expiry is the only invalidation mechanism, there is no revocation
// list.
type TokenCodec struct {
	secret []byte
	issuer string
}

// NewTokenCodec builds a codec around the server-held signing secret.
func NewTokenCodec(secret, issuer string) *TokenCodec {
	return &TokenCodec{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// Issue mints a signed token for the subject, valid for ttl from now.
func (c *TokenCodec) Issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    c.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify checks signature and expiry and returns the subject. Any failure
// (tampered payload, malformed structure, expiry, wrong algorithm) yields the
// same ErrInvalidToken; nothing escapes this boundary as a panic or raw
// library error.
func (c *TokenCodec) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
