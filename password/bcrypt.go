package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when no override is configured.
// Cost 12 keeps brute force expensive while bounding a single hash to tens of
// milliseconds on current server hardware.
const DefaultCost = 12

// Config defines the tunables for the bcrypt hasher.
type Config struct {
	Cost int
}

// Bcrypt hashes and verifies passwords with the bcrypt algorithm.
// Instances are immutable and safe for concurrent use.
type Bcrypt struct {
	cost int
}

// NewBcrypt validates cfg and returns a hasher.
func NewBcrypt(cfg Config) (*Bcrypt, error) {
	cost := cfg.Cost
	if cost == 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, errors.New("bcrypt cost outside supported range")
	}
	return &Bcrypt{cost: cost}, nil
}

// Cost returns the configured work factor.
func (b *Bcrypt) Cost() int {
	return b.cost
}

// Hash returns the salted bcrypt hash of plain. The salt is drawn from
// crypto/rand per call, so repeated hashes of the same plaintext differ.
func (b *Bcrypt) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), b.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plain matches hashed. bcrypt's comparison is
// constant-time over the derived key. Verify fails closed: malformed hashes,
// unknown versions, and mismatches all report false with no distinguishing
// error.
func (b *Bcrypt) Verify(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
