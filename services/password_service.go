package services

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	HashingPlain  = "plain"
	HashingBcrypt = "bcrypt"
)

// PasswordHasher turns a password into the stored password_hash value.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// NewPasswordHasher returns the hasher for mode.
func NewPasswordHasher(mode string) (PasswordHasher, error) {
	switch mode {
	case HashingPlain, "":
		return PlainHasher{}, nil
	case HashingBcrypt:
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password hashing mode %q", mode)
	}
}

// PlainHasher stores the password verbatim, matching rows written by the
// legacy storefront API.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) { return password, nil }

func (PlainHasher) Compare(hash, password string) bool {
	return subtle.ConstantTimeCompare([]byte(hash), []byte(password)) == 1
}

// BcryptHasher stores salted bcrypt hashes.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

func (BcryptHasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
