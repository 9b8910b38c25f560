package testdata

import (
	"crypto/rand"
	"math/big"
)

const emailAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// User is the full set of registration form values.
type User struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Address         string
	City            string
	ZipCode         string
	Password        string
	ConfirmPassword string
	AcceptTerms     bool
	Newsletter      bool
}

// RandomEmail returns testuser_<8 random [a-z0-9]>@example.com. Every call
// draws fresh randomness so concurrently registered users never collide.
func RandomEmail() string {
	buf := make([]byte, 8)
	max := big.NewInt(int64(len(emailAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("crypto/rand unavailable: " + err.Error())
		}
		buf[i] = emailAlphabet[n.Int64()]
	}
	return "testuser_" + string(buf) + "@example.com"
}

// ValidUser returns the canonical valid registration with a fresh email.
func ValidUser() User {
	return User{
		FirstName:       "John",
		LastName:        "Doe",
		Email:           RandomEmail(),
		Phone:           "+385911234567",
		Address:         "123 Main Street",
		City:            "Split",
		ZipCode:         "21000",
		Password:        "SecurePass123!",
		ConfirmPassword: "SecurePass123!",
		AcceptTerms:     true,
	}
}

// NewUser returns the record registered by the RegisteredUser fixture.
func NewUser() User {
	return User{
		FirstName:       "Test",
		LastName:        "User",
		Email:           RandomEmail(),
		Phone:           "0911234567",
		Address:         "123 Test Street",
		City:            "Split",
		ZipCode:         "21000",
		Password:        "SecurePass123!",
		ConfirmPassword: "SecurePass123!",
		AcceptTerms:     true,
	}
}

// With returns a copy of u after applying fn.
func (u User) With(fn func(*User)) User {
	fn(&u)
	return u
}
