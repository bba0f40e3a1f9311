package access

import (
	"context"
	"sync"
)

type MemoryGrantStore struct {
	mu        sync.RWMutex
	topics    map[string][]string // roleID -> topic IDs
	questions map[string][]string // roleID -> question IDs
}

func NewMemoryGrantStore() *MemoryGrantStore {
	return &MemoryGrantStore{
		topics:    map[string][]string{},
		questions: map[string][]string{},
	}
}

func (m *MemoryGrantStore) GrantTopic(roleID, topicID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.topics[roleID] = append(m.topics[roleID], topicID)
}

func (m *MemoryGrantStore) GrantQuestion(roleID, questionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions[roleID] = append(m.questions[roleID], questionID)
}

// RevokeTopic removes a single topic grant. Revocation must make the topic
// unreachable for the role on the next lookup.
func (m *MemoryGrantStore) RevokeTopic(roleID, topicID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.topics[roleID][:0]
	for _, id := range m.topics[roleID] {
		if id != topicID {
			kept = append(kept, id)
		}
	}
	m.topics[roleID] = kept
}

func (m *MemoryGrantStore) RevokeQuestion(roleID, questionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.questions[roleID][:0]
	for _, id := range m.questions[roleID] {
		if id != questionID {
			kept = append(kept, id)
		}
	}
	m.questions[roleID] = kept
}

func (m *MemoryGrantStore) TopicGrants(ctx context.Context, roleID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.topics[roleID]...), nil
}

func (m *MemoryGrantStore) QuestionGrants(ctx context.Context, roleID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.questions[roleID]...), nil
}
