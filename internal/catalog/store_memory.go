package catalog

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps the catalog in process memory. Used by offline mode and
// as the fixture store in tests.
type MemoryStore struct {
	mu        sync.RWMutex
	modules   map[string]Module
	topics    map[string]Topic
	subTopics map[string]SubTopic
	questions map[string]Question
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		modules:   map[string]Module{},
		topics:    map[string]Topic{},
		subTopics: map[string]SubTopic{},
		questions: map[string]Question{},
	}
}

func (m *MemoryStore) PutModule(mod Module) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modules[mod.ID] = mod
}

func (m *MemoryStore) PutTopic(t Topic) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.topics[t.ID] = t
}

func (m *MemoryStore) PutSubTopic(st SubTopic) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subTopics[st.ID] = st
}

func (m *MemoryStore) PutQuestion(q Question) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions[q.ID] = q
}

func (m *MemoryStore) ListModules(ctx context.Context) ([]Module, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Module, 0, len(m.modules))
	for _, mod := range m.modules {
		out = append(out, mod)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out, nil
}

func (m *MemoryStore) GetModule(ctx context.Context, id string) (Module, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mod, ok := m.modules[id]
	if !ok {
		return Module{}, ErrNotFound
	}
	return mod, nil
}

func (m *MemoryStore) ListTopics(ctx context.Context, moduleID string) ([]Topic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Topic
	for _, t := range m.topics {
		if t.ModuleID == moduleID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out, nil
}

func (m *MemoryStore) GetTopic(ctx context.Context, id string) (Topic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.topics[id]
	if !ok {
		return Topic{}, ErrNotFound
	}
	return t, nil
}

func (m *MemoryStore) ListSubTopics(ctx context.Context, topicID string) ([]SubTopic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []SubTopic
	for _, st := range m.subTopics {
		if st.TopicID == topicID {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out, nil
}

func (m *MemoryStore) ListQuestions(ctx context.Context, topicID string) ([]Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Question
	for _, q := range m.questions {
		if q.TopicID == topicID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out, nil
}
