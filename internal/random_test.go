package internal

import (
	"encoding/hex"
	"testing"
)

func TestNewResetTokenShape(t *testing.T) {
	token, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken failed: %v", err)
	}
	if len(token) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(token))
	}
	if _, err := hex.DecodeString(token); err != nil {
		t.Fatalf("token is not valid hex: %v", err)
	}
}

func TestNewResetTokenUnique(t *testing.T) {
	seen := make(map[string]struct{}, 64)
	for i := 0; i < 64; i++ {
		token, err := NewResetToken()
		if err != nil {
			t.Fatalf("NewResetToken failed: %v", err)
		}
		if _, dup := seen[token]; dup {
			t.Fatal("duplicate token generated")
		}
		seen[token] = struct{}{}
	}
}

func TestHashResetTokenDeterministicAndDistinct(t *testing.T) {
	token, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken failed: %v", err)
	}

	first := HashResetToken(token)
	second := HashResetToken(token)
	if first != second {
		t.Fatal("hash of the same token differs between calls")
	}
	if first == token {
		t.Fatal("stored hash must differ from the raw token")
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(first))
	}
}

func TestTokenHashEqual(t *testing.T) {
	h := HashResetToken("a")
	if !TokenHashEqual(h, HashResetToken("a")) {
		t.Fatal("equal hashes reported unequal")
	}
	if TokenHashEqual(h, HashResetToken("b")) {
		t.Fatal("unequal hashes reported equal")
	}
	if TokenHashEqual(h, h[:32]) {
		t.Fatal("length mismatch reported equal")
	}
}
