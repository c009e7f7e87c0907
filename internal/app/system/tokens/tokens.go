// Package tokens issues and verifies the signed, expiring tokens used in
// account-confirmation links. A token carries only the traveler's email;
// possession of a valid, unexpired token proves the holder received the
// confirmation email.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired means the token was well-formed and correctly signed but
	// its validity window has passed. Callers map this to a distinct
	// "link expired" response.
	ErrExpired = errors.New("token expired")
	// ErrInvalid means the token could not be parsed or verified.
	ErrInvalid = errors.New("token invalid")
)

// Signer creates and verifies confirmation tokens with a shared secret.
type Signer struct {
	secret []byte
	expiry time.Duration
}

// NewSigner returns a Signer. expiry bounds how long issued tokens stay
// valid; zero falls back to one hour.
func NewSigner(secret string, expiry time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret is empty")
	}
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &Signer{secret: []byte(secret), expiry: expiry}, nil
}

type confirmClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// ConfirmToken issues a confirmation token for the given email.
func (s *Signer) ConfirmToken(email string) (string, error) {
	now := time.Now().UTC()
	claims := confirmClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ConfirmEmail verifies a confirmation token and returns the email it was
// issued for. Expired tokens return ErrExpired; anything else that fails
// verification returns ErrInvalid.
func (s *Signer) ConfirmEmail(token string) (string, error) {
	var claims confirmClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", ErrInvalid
	}
	if claims.Email == "" {
		return "", ErrInvalid
	}
	return claims.Email, nil
}
