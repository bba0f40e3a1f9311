package submission

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MemoryStore struct {
	mu   sync.RWMutex
	rows map[Key]Submission

	// FailKeys simulates row-level persistence failures in tests.
	FailKeys map[Key]error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: map[Key]Submission{}}
}

func (m *MemoryStore) Upsert(ctx context.Context, key Key, value string, status Status) (Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.FailKeys[key]; ok {
		return Submission{}, err
	}
	sub, ok := m.rows[key]
	if !ok {
		sub = Submission{ID: uuid.NewString(), Key: key}
	}
	sub.Value = value
	sub.Status = status
	sub.UpdatedAt = time.Now().Unix()
	m.rows[key] = sub
	return sub, nil
}

func (m *MemoryStore) Find(ctx context.Context, key Key) (Submission, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sub, ok := m.rows[key]
	return sub, ok, nil
}

func (m *MemoryStore) FindByUserAndPeriod(ctx context.Context, userID, period string) ([]Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Submission
	for _, sub := range m.rows {
		if sub.Key.UserID == userID && sub.Key.Period == period {
			out = append(out, sub)
		}
	}
	return out, nil
}

// Len reports the number of live rows; at most one per key by construction.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows)
}
