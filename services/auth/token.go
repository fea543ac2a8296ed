package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"stockmanager/models"
)

// ErrInvalidToken covers malformed, expired and wrongly signed tokens.
var ErrInvalidToken = errors.New("invalid token")

// Tokens issues and checks the bearer tokens that carry a session between
// HTTP requests. The token subject is the user id; ver is the user's token
// version at issue time.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type sessionClaims struct {
	Version int `json:"ver"`
	jwt.RegisteredClaims
}

// NewTokens signs with HS256 using secret.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for the user at its current token version.
func (t *Tokens) Issue(user *models.User) (string, error) {
	now := t.now()
	claims := sessionClaims{
		Version: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse validates token and returns the user id and token version it was
// issued for.
func (t *Tokens) Parse(token string) (string, int, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		return "", 0, ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", 0, ErrInvalidToken
	}
	return claims.Subject, claims.Version, nil
}
