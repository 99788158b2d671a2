package goCred

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

// testClock is a hand-advanced clock shared by an engine under test.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// mockCredentialStore is an in-memory CredentialStore. It clones records on
// every boundary crossing so engine-side mutation never aliases stored
// state, mirroring a real store.
type mockCredentialStore struct {
	mu      sync.Mutex
	records map[string]*Credential

	createErr error
	saveErr   error
	findErr   error

	createCalls int
	saveCalls   int
}

func newMockCredentialStore() *mockCredentialStore {
	return &mockCredentialStore{records: make(map[string]*Credential)}
}

func (m *mockCredentialStore) Create(_ context.Context, cred *Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.records[cred.Identifier]; exists {
		return ErrCredentialExists
	}
	m.records[cred.Identifier] = cloneCredential(cred)
	return nil
}

func (m *mockCredentialStore) Save(_ context.Context, cred *Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	if _, exists := m.records[cred.Identifier]; !exists {
		return ErrCredentialNotFound
	}
	m.records[cred.Identifier] = cloneCredential(cred)
	return nil
}

func (m *mockCredentialStore) FindByIdentifier(_ context.Context, identifier string) (*Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findErr != nil {
		return nil, m.findErr
	}
	cred, ok := m.records[identifier]
	if !ok {
		return nil, ErrCredentialNotFound
	}
	return cloneCredential(cred), nil
}

func (m *mockCredentialStore) FindByResetTokenHash(_ context.Context, tokenHash string) (*Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, cred := range m.records {
		if cred.ResetTokenHash != "" && cred.ResetTokenHash == tokenHash {
			return cloneCredential(cred), nil
		}
	}
	return nil, ErrCredentialNotFound
}

// stored returns the raw persisted record, bypassing every filter. Test-only
// storage inspection.
func (m *mockCredentialStore) stored(t *testing.T, identifier string) *Credential {
	t.Helper()

	m.mu.Lock()
	defer m.mu.Unlock()
	cred, ok := m.records[identifier]
	if !ok {
		t.Fatalf("no stored record for %q", identifier)
	}
	return cloneCredential(cred)
}

func cloneCredential(cred *Credential) *Credential {
	out := *cred
	out.PasswordChangedAt = cloneTime(cred.PasswordChangedAt)
	out.ResetTokenExpiresAt = cloneTime(cred.ResetTokenExpiresAt)
	return &out
}

func engineTestConfig() Config {
	cfg := defaultConfig()
	// Min bcrypt cost keeps the suite fast without changing any semantics.
	cfg.Password.Cost = 4
	return cfg
}

func newTestEngine(t *testing.T, cfg Config, store CredentialStore) (*Engine, *testClock) {
	t.Helper()

	engine, err := New().WithConfig(cfg).WithStore(store).Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	clock := newTestClock()
	engine.now = clock.Now

	ids := 0
	engine.newID = func() string {
		ids++
		return fmt.Sprintf("cred-%d", ids)
	}

	return engine, clock
}

func mustCreate(t *testing.T, engine *Engine, identifier, password string) CredentialView {
	t.Helper()

	view, err := engine.CreateCredential(context.Background(), CreateCredentialInput{
		Identifier:      identifier,
		Password:        password,
		PasswordConfirm: password,
	})
	if err != nil {
		t.Fatalf("create %q failed: %v", identifier, err)
	}
	return view
}
