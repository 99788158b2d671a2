package password

import (
	"strings"
	"testing"
)

func newTestBcrypt(t *testing.T) *Bcrypt {
	t.Helper()

	// Min cost keeps the test suite fast; production defaults to DefaultCost.
	b, err := NewBcrypt(Config{Cost: 4})
	if err != nil {
		t.Fatalf("NewBcrypt failed: %v", err)
	}
	return b
}

func TestHashVerifyRoundTrip(t *testing.T) {
	b := newTestBcrypt(t)

	hash, err := b.Hash("secret123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash equals plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("unexpected hash format: %q", hash)
	}
	if !b.Verify("secret123", hash) {
		t.Fatal("verify rejected correct password")
	}
	if b.Verify("secret124", hash) {
		t.Fatal("verify accepted wrong password")
	}
}

func TestHashIsSalted(t *testing.T) {
	b := newTestBcrypt(t)

	first, err := b.Hash("secret123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := b.Hash("secret123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same plaintext are identical")
	}
}

func TestVerifyFailsClosedOnMalformedHash(t *testing.T) {
	b := newTestBcrypt(t)

	for _, hashed := range []string{"", "plaintext", "$2a$garbage", "$argon2id$v=19$..."} {
		if b.Verify("secret123", hashed) {
			t.Fatalf("verify accepted malformed hash %q", hashed)
		}
	}
}

func TestNewBcryptRejectsOutOfRangeCost(t *testing.T) {
	if _, err := NewBcrypt(Config{Cost: 3}); err == nil {
		t.Fatal("expected error for cost below bcrypt minimum")
	}
	if _, err := NewBcrypt(Config{Cost: 32}); err == nil {
		t.Fatal("expected error for cost above bcrypt maximum")
	}
}

func TestZeroCostSelectsDefault(t *testing.T) {
	b, err := NewBcrypt(Config{})
	if err != nil {
		t.Fatalf("NewBcrypt failed: %v", err)
	}
	if b.Cost() != DefaultCost {
		t.Fatalf("expected default cost %d, got %d", DefaultCost, b.Cost())
	}
}
