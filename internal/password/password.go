// Package password hashes user passwords before they are stored.
//
// Registration receives a plaintext password; only the bcrypt output reaches
// the users table. The output is self-describing:
//
//	$2a$12$<22-char salt><31-char hash>
//	 ^   ^
//	 |   cost (2^12 rounds)
//	 version
//
// so no separate salt column is needed.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used in production.
const DefaultCost = 12

// MaxLength is bcrypt's input limit. Longer inputs would be truncated
// silently, so Hash rejects them.
const MaxLength = 72

// ErrTooLong is returned by Hash for passwords longer than MaxLength bytes.
var ErrTooLong = errors.New("password: must be 72 bytes or fewer")

// Hasher provides bcrypt hashing and verification at a fixed cost.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher using DefaultCost.
func NewHasher() *Hasher {
	return &Hasher{cost: DefaultCost}
}

// NewHasherWithCost returns a Hasher with a custom cost. Tests in other
// packages pass bcrypt.MinCost (4) to keep hashing in the millisecond range.
func NewHasherWithCost(cost int) *Hasher {
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > MaxLength {
		return "", ErrTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("password: hashing: %w", err)
	}

	return string(hashed), nil
}

// Verify returns nil if plaintext matches hash. The comparison is constant
// time.
func (h *Hasher) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("password: mismatch")
		}
		return fmt.Errorf("password: comparing hash: %w", err)
	}
	return nil
}
