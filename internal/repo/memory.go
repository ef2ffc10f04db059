package repo

import (
	"context"
	"sort"
	"sync"
)

type user struct {
	id                     int
	login, email, password string
}

// MemoryRepository keeps everything in process memory. The server falls back
// to it when no database is configured.
type MemoryRepository struct {
	mu           sync.RWMutex
	users        map[string]user
	calculations map[string]Calculation
}

func NewMemory() *MemoryRepository {
	return &MemoryRepository{
		users:        make(map[string]user),
		calculations: make(map[string]Calculation),
	}
}

func (m *MemoryRepository) CreateUser(_ context.Context, login, email, password string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[login]; ok {
		return 0, ErrUserExists
	}
	u := user{id: len(m.users) + 1, login: login, email: email, password: password}
	m.users[login] = u
	return u.id, nil
}

func (m *MemoryRepository) GetByLogin(_ context.Context, login string) (int, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[login]
	if !ok {
		return 0, "", nil
	}
	return u.id, u.password, nil
}

func (m *MemoryRepository) SaveCalculation(_ context.Context, c Calculation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calculations[c.ID] = c
	return nil
}

func (m *MemoryRepository) ListCalculations(_ context.Context, userID, limit int) ([]Calculation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Calculation{}
	for _, c := range m.calculations {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryRepository) GetCalculation(_ context.Context, userID int, id string) (Calculation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.calculations[id]
	if !ok || c.UserID != userID {
		return Calculation{}, ErrNotFound
	}
	return c, nil
}
