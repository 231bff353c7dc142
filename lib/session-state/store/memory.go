package sessionstatestore

import (
	"sync"
	"time"

	dbmodels "interview-sim-backend/models/db"
)

// NewMemory хранилище в памяти процесса, для cli и тестов
func NewMemory() Provider {
	return &memory{
		items: map[memoryKey]dbmodels.SessionState{},
		now:   time.Now,
	}
}

type memoryKey struct {
	sessionID string
	key       string
}

type memory struct {
	mu    sync.RWMutex
	items map[memoryKey]dbmodels.SessionState
	now   func() time.Time
}

func (m *memory) Put(rec dbmodels.SessionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := memoryKey{sessionID: rec.SessionID, key: rec.Key}
	now := m.now()
	if prev, ok := m.items[k]; ok {
		rec.CreatedAt = prev.CreatedAt
	} else {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	m.items[k] = rec
	return nil
}

func (m *memory) Get(sessionID, key string) (*dbmodels.SessionState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.items[memoryKey{sessionID: sessionID, key: key}]
	if !ok || !rec.ExpiresAt.After(m.now()) {
		return nil, nil
	}
	return &rec, nil
}

func (m *memory) DeleteSession(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.items {
		if k.sessionID == sessionID {
			delete(m.items, k)
		}
	}
	return nil
}

func (m *memory) DeleteExpired(now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for k, rec := range m.items {
		if !rec.ExpiresAt.After(now) {
			delete(m.items, k)
			count++
		}
	}
	return count, nil
}
