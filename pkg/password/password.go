// Package password hashes employee credentials with bcrypt.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var cost = bcrypt.DefaultCost

// SetCost changes the adaptive cost used by Hash. Values outside the range
// accepted by bcrypt are ignored.
func SetCost(c int) {
	if c < bcrypt.MinCost || c > bcrypt.MaxCost {
		return
	}
	cost = c
}

// Hash returns a salted bcrypt digest of plain. A nil input yields a nil digest.
func Hash(plain *string) (*string, error) {
	if plain == nil {
		return nil, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*plain), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	digest := string(hashed)
	return &digest, nil
}

func Matches(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
