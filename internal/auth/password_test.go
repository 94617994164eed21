package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// Tests use bcrypt.MinCost - the logic is identical at every cost, and
// MinCost keeps the suite fast.

func TestHashAndVerify(t *testing.T) {
	ps := NewPasswordService(bcrypt.MinCost)

	hash, err := ps.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "secret1" {
		t.Fatal("Hash() returned the plaintext")
	}

	if err := ps.Verify(hash, "secret1"); err != nil {
		t.Errorf("Verify() with correct password: %v", err)
	}
	if err := ps.Verify(hash, "wrong-password"); err == nil {
		t.Error("Verify() accepted the wrong password")
	}
}

func TestHash_SaltsDiffer(t *testing.T) {
	ps := NewPasswordService(bcrypt.MinCost)

	a, _ := ps.Hash("secret1")
	b, _ := ps.Hash("secret1")
	if a == b {
		t.Error("two hashes of the same password are identical - salt missing?")
	}
}

func TestHash_TooLong(t *testing.T) {
	ps := NewPasswordService(bcrypt.MinCost)

	// bcrypt silently truncates past 72 bytes; we reject instead.
	_, err := ps.Hash(strings.Repeat("x", 73))
	if err == nil {
		t.Error("Hash() accepted a 73-byte password")
	}
}

func TestNewPasswordService_ClampsInvalidCost(t *testing.T) {
	ps := NewPasswordService(9999)

	hash, err := ps.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() with clamped cost: %v", err)
	}
	if err := ps.Verify(hash, "secret1"); err != nil {
		t.Errorf("Verify() after clamped-cost hash: %v", err)
	}
}
