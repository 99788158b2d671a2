package stores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/goCred/internal"
)

var (
	ErrCredentialNotFound = errors.New("credential record not found")
	ErrCredentialExists   = errors.New("credential record already exists")
	ErrRedisUnavailable   = errors.New("credential redis unavailable")
)

// CredentialRecord is the storage representation of one credential.
type CredentialRecord struct {
	ID                  string     `json:"id"`
	Identifier          string     `json:"identifier"`
	PasswordHash        string     `json:"password_hash"`
	PasswordChangedAt   *time.Time `json:"password_changed_at,omitempty"`
	ResetTokenHash      string     `json:"reset_token_hash,omitempty"`
	ResetTokenExpiresAt *time.Time `json:"reset_token_expires_at,omitempty"`
	Active              bool       `json:"active"`
	CreatedAt           time.Time  `json:"created_at"`
}

// RedisCredentialStore persists credential records as JSON values keyed by
// identifier, with a secondary index from reset-token hash to identifier.
// The reset index is maintained by Save: it is created when a record gains a
// pending token, and deleted when the token is cleared or replaced. An
// expired, unconsumed token stays indexed until overwritten so consumption
// can classify it as expired rather than unknown.
type RedisCredentialStore struct {
	redis  redis.UniversalClient
	prefix string
}

func NewRedisCredentialStore(redisClient redis.UniversalClient, prefix string) *RedisCredentialStore {
	if prefix == "" {
		prefix = "gc"
	}
	return &RedisCredentialStore{
		redis:  redisClient,
		prefix: prefix,
	}
}

func (s *RedisCredentialStore) credKey(identifier string) string {
	return s.prefix + ":cred:" + identifier
}

func (s *RedisCredentialStore) resetKey(tokenHash string) string {
	return s.prefix + ":rst:" + tokenHash
}

// Create persists a new record, enforcing identifier uniqueness via SETNX.
func (s *RedisCredentialStore) Create(ctx context.Context, record *CredentialRecord) error {
	encoded, err := json.Marshal(record)
	if err != nil {
		return err
	}

	ok, err := s.redis.SetNX(ctx, s.credKey(record.Identifier), encoded, 0).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if !ok {
		return ErrCredentialExists
	}

	return nil
}

// Save replaces the stored record and reconciles the reset-token index in
// the same transaction. The write is retried under WATCH so a concurrent
// writer of the same record cannot interleave.
func (s *RedisCredentialStore) Save(ctx context.Context, record *CredentialRecord) error {
	const maxRetries = 4
	key := s.credKey(record.Identifier)

	encoded, err := json.Marshal(record)
	if err != nil {
		return err
	}

	for i := 0; i < maxRetries; i++ {
		err := s.redis.Watch(ctx, func(tx *redis.Tx) error {
			var previousHash string

			data, err := tx.Get(ctx, key).Bytes()
			switch {
			case err == nil:
				var previous CredentialRecord
				if err := json.Unmarshal(data, &previous); err == nil {
					previousHash = previous.ResetTokenHash
				}
			case errors.Is(err, redis.Nil):
				return ErrCredentialNotFound
			default:
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, encoded, 0)
				if previousHash != "" && previousHash != record.ResetTokenHash {
					pipe.Del(ctx, s.resetKey(previousHash))
				}
				if record.ResetTokenHash != "" {
					pipe.Set(ctx, s.resetKey(record.ResetTokenHash), record.Identifier, 0)
				}
				return nil
			})
			return err
		}, key)

		switch {
		case err == nil:
			return nil
		case errors.Is(err, redis.TxFailedErr):
			continue
		case errors.Is(err, ErrCredentialNotFound):
			return err
		default:
			return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
	}

	return fmt.Errorf("%w: save retries exhausted", ErrRedisUnavailable)
}

// FindByIdentifier returns the record for identifier regardless of its
// active flag.
func (s *RedisCredentialStore) FindByIdentifier(ctx context.Context, identifier string) (*CredentialRecord, error) {
	data, err := s.redis.Get(ctx, s.credKey(identifier)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCredentialNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	var record CredentialRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}

	return &record, nil
}

// FindByResetTokenHash resolves the secondary index and re-verifies the hash
// against the record in constant time, so a stale index entry can never
// resolve to a credential whose pending token has moved on.
func (s *RedisCredentialStore) FindByResetTokenHash(ctx context.Context, tokenHash string) (*CredentialRecord, error) {
	if tokenHash == "" {
		return nil, ErrCredentialNotFound
	}

	identifier, err := s.redis.Get(ctx, s.resetKey(tokenHash)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCredentialNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	record, err := s.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if !internal.TokenHashEqual(record.ResetTokenHash, tokenHash) {
		return nil, ErrCredentialNotFound
	}

	return record, nil
}
