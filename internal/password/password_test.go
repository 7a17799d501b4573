package password

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestHasher() *Hasher {
	return NewHasherWithCost(bcrypt.MinCost)
}

func TestHash_OutputLooksBcrypt(t *testing.T) {
	h := newTestHasher()

	hash, err := h.Hash("use-the-force")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("Hash() does not look like a bcrypt hash: %q", hash)
	}
	if hash == "use-the-force" {
		t.Error("Hash() returned the plaintext")
	}
}

func TestHash_SamePasswordProducesDifferentHashes(t *testing.T) {
	h := newTestHasher()

	hash1, _ := h.Hash("same-password")
	hash2, _ := h.Hash("same-password")

	if hash1 == hash2 {
		t.Error("Hash() produced identical hashes for the same password (salt must be random)")
	}
}

func TestHash_Length(t *testing.T) {
	h := newTestHasher()

	if _, err := h.Hash(strings.Repeat("a", MaxLength)); err != nil {
		t.Fatalf("Hash() should accept a %d-byte password, got error: %v", MaxLength, err)
	}

	_, err := h.Hash(strings.Repeat("a", MaxLength+1))
	if !errors.Is(err, ErrTooLong) {
		t.Fatalf("Hash() error = %v, want ErrTooLong", err)
	}
}

func TestVerify(t *testing.T) {
	h := newTestHasher()

	hash, err := h.Hash("correct-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if err := h.Verify(hash, "correct-password"); err != nil {
		t.Errorf("Verify() with correct password error = %v", err)
	}
	if err := h.Verify(hash, "wrong-password"); err == nil {
		t.Error("Verify() with wrong password should fail")
	}
	if err := h.Verify("not-a-hash", "correct-password"); err == nil {
		t.Error("Verify() with a malformed hash should fail")
	}
}

func TestNewHasher_DefaultCost(t *testing.T) {
	if got := NewHasher().cost; got != DefaultCost {
		t.Errorf("cost = %d, want %d", got, DefaultCost)
	}
}
