package fakeapp

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the password hashing cost used by cmd/fakeapp.
const DefaultBcryptCost = 10

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a bcrypt hasher. Out-of-range costs fall back to
// DefaultBcryptCost.
func NewBcryptHasher(cost int) BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return BcryptHasher{cost: cost}
}

func (h BcryptHasher) Hash(password string) (string, error) {
	// bcrypt rejects inputs over 72 bytes; the application accepts any length.
	hash, err := bcrypt.GenerateFromPassword(truncate72(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("fakeapp: hash password: %w", err)
	}
	return string(hash), nil
}

func (h BcryptHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncate72(password)) == nil
}

func truncate72(password string) []byte {
	b := []byte(password)
	if len(b) > 72 {
		b = b[:72]
	}
	return b
}

// FakeInsecureHasher is a test-only hasher with near-zero CPU cost.
type FakeInsecureHasher struct{}

func (FakeInsecureHasher) Hash(password string) (string, error) {
	return "$fake$" + password, nil
}

func (FakeInsecureHasher) Verify(hash, password string) bool {
	return strings.TrimPrefix(hash, "$fake$") == password
}
