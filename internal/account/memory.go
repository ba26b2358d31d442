package account

import (
	"context"
	"sync"
	"time"

	"github.com/lox/blackjacklab/internal/game"
)

// MemoryStore keeps profiles in process memory. Guest sessions and tests
// use it; nothing survives a restart.
type MemoryStore struct {
	mu       sync.Mutex
	accounts map[string]*Account
	history  map[string][]game.GameRecord
	settings map[string]Settings
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[string]*Account),
		history:  make(map[string][]game.GameRecord),
		settings: make(map[string]Settings),
	}
}

func (m *MemoryStore) Create(_ context.Context, id, name string, bankroll int) (Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.accounts[id]; ok {
		return *existing, nil
	}
	acct := &Account{
		ID:        id,
		Name:      name,
		Bankroll:  bankroll,
		CreatedAt: time.Now(),
	}
	m.accounts[id] = acct
	return *acct, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	return *acct, nil
}

func (m *MemoryStore) AdjustBankroll(_ context.Context, id string, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[id]
	if !ok {
		return ErrNotFound
	}
	acct.Bankroll += delta
	return nil
}

func (m *MemoryStore) Append(_ context.Context, rec game.GameRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[rec.PlayerID]
	if !ok {
		return ErrNotFound
	}
	m.history[rec.PlayerID] = append(m.history[rec.PlayerID], rec)
	applyRecord(&acct.Stats, rec)
	return nil
}

// History returns the most recent records first, capped at limit when
// limit is positive.
func (m *MemoryStore) History(_ context.Context, id string, limit int) ([]game.GameRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	recs := m.history[id]
	out := make([]game.GameRecord, 0, len(recs))
	for i := len(recs) - 1; i >= 0; i-- {
		out = append(out, recs[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryStore) SaveSettings(_ context.Context, id string, s Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[id] = s
	return nil
}

func (m *MemoryStore) LoadSettings(_ context.Context, id string) (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.settings[id]
	if !ok {
		return Settings{}, ErrNotFound
	}
	return s, nil
}
