package goCred

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrEthical07/goCred/internal/stores"
)

// redisCredentialStore adapts the bundled internal Redis store to the public
// [CredentialStore] interface, translating its sentinel errors into the
// engine's taxonomy.
type redisCredentialStore struct {
	inner *stores.RedisCredentialStore
}

func (s *redisCredentialStore) Create(ctx context.Context, cred *Credential) error {
	return mapRedisStoreError(s.inner.Create(ctx, credentialToStoreRecord(cred)))
}

func (s *redisCredentialStore) Save(ctx context.Context, cred *Credential) error {
	return mapRedisStoreError(s.inner.Save(ctx, credentialToStoreRecord(cred)))
}

func (s *redisCredentialStore) FindByIdentifier(ctx context.Context, identifier string) (*Credential, error) {
	record, err := s.inner.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, mapRedisStoreError(err)
	}
	return storeRecordToCredential(record), nil
}

func (s *redisCredentialStore) FindByResetTokenHash(ctx context.Context, tokenHash string) (*Credential, error) {
	record, err := s.inner.FindByResetTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, mapRedisStoreError(err)
	}
	return storeRecordToCredential(record), nil
}

func credentialToStoreRecord(cred *Credential) *stores.CredentialRecord {
	return &stores.CredentialRecord{
		ID:                  cred.ID,
		Identifier:          cred.Identifier,
		PasswordHash:        cred.PasswordHash,
		PasswordChangedAt:   cloneTime(cred.PasswordChangedAt),
		ResetTokenHash:      cred.ResetTokenHash,
		ResetTokenExpiresAt: cloneTime(cred.ResetTokenExpiresAt),
		Active:              cred.Active,
		CreatedAt:           cred.CreatedAt,
	}
}

func storeRecordToCredential(record *stores.CredentialRecord) *Credential {
	return &Credential{
		ID:                  record.ID,
		Identifier:          record.Identifier,
		PasswordHash:        record.PasswordHash,
		PasswordChangedAt:   cloneTime(record.PasswordChangedAt),
		ResetTokenHash:      record.ResetTokenHash,
		ResetTokenExpiresAt: cloneTime(record.ResetTokenExpiresAt),
		Active:              record.Active,
		CreatedAt:           record.CreatedAt,
	}
}

func mapRedisStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, stores.ErrCredentialNotFound):
		return ErrCredentialNotFound
	case errors.Is(err, stores.ErrCredentialExists):
		return ErrCredentialExists
	case errors.Is(err, stores.ErrRedisUnavailable):
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}
