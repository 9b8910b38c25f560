package fakeapp

import (
	"strings"
	"sync"
	"time"

	"github.com/kuitang/qa-suite/internal/errs"
)

// Account is a registered user as returned by a successful login.
type Account struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ZipCode   string `json:"zipCode"`
	CreatedAt string `json:"createdAt"`
}

type accountRecord struct {
	Account
	passwordHash string
}

// Store keeps accounts in memory, keyed by lower-cased email.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]accountRecord
	hasher   PasswordHasher
	now      func() time.Time
}

// NewStore creates an empty store.
func NewStore(hasher PasswordHasher) *Store {
	return &Store{
		accounts: make(map[string]accountRecord),
		hasher:   hasher,
		now:      time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create registers an account. A second registration of the same email
// fails with FailedPrecondition.
func (s *Store) Create(acct Account, password string) error {
	key := normalizeEmail(acct.Email)
	if key == "" || password == "" {
		return errs.New(errs.InvalidArgument, "Missing required fields")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return errs.Wrap(errs.Internal, "Registration failed", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[key]; exists {
		return errs.New(errs.FailedPrecondition, "Email already registered")
	}
	acct.CreatedAt = s.now().UTC().Format(time.RFC3339)
	s.accounts[key] = accountRecord{Account: acct, passwordHash: hash}
	return nil
}

// Authenticate returns the account when email and password match.
func (s *Store) Authenticate(email, password string) (Account, error) {
	s.mu.RLock()
	rec, ok := s.accounts[normalizeEmail(email)]
	s.mu.RUnlock()
	if !ok || !s.hasher.Verify(rec.passwordHash, password) {
		return Account{}, errs.New(errs.Unauthenticated, "Invalid email or password")
	}
	return rec.Account, nil
}

// Len returns the number of registered accounts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}
