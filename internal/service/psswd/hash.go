package psswd

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt reads; longer passwords are refused rather than truncated.
const MaxPasswordBytes = 72

var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// BcryptHasher hashes passwords with bcrypt. The zero value uses bcrypt.DefaultCost.
type BcryptHasher struct {
	Cost int
}

func (p BcryptHasher) cost() int {
	if p.Cost < bcrypt.MinCost {
		return bcrypt.DefaultCost
	}
	return p.Cost
}

func (p BcryptHasher) HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), p.cost())
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(digest), nil
}

// ComparePassword reports whether password matches hash. Malformed hashes never match.
func (p BcryptHasher) ComparePassword(password, hash string) bool {
	if len(password) > MaxPasswordBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
