package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Credentials is the single place passwords are encoded for storage and
// checked at login. Swapping the implementation changes the scheme without
// touching callers.
type Credentials interface {
	Hash(plain string) (string, error)
	Verify(stored, plain string) bool
}

// PlainCredentials stores passwords as given and compares them directly.
// This matches the existing database contents and is the default; it keeps
// clear-text passwords at rest.
type PlainCredentials struct{}

func (PlainCredentials) Hash(plain string) (string, error) { return plain, nil }

func (PlainCredentials) Verify(stored, plain string) bool { return stored == plain }

// BcryptCredentials stores bcrypt hashes.
type BcryptCredentials struct {
	Cost int
}

func (b BcryptCredentials) Hash(plain string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (BcryptCredentials) Verify(stored, plain string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain))
	return err == nil
}

// NewCredentials picks an implementation by scheme name ("plain" or "bcrypt").
func NewCredentials(scheme string) (Credentials, error) {
	switch scheme {
	case "", "plain":
		return PlainCredentials{}, nil
	case "bcrypt":
		return BcryptCredentials{}, nil
	default:
		return nil, errors.New("unknown password scheme " + scheme)
	}
}
