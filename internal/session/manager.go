package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"backend_architect/internal/types"
)

// Manager keeps one Session per browser in a bounded LRU. Evicted sessions are gone;
// nothing is persisted.
type Manager struct {
	mu       sync.Mutex
	sessions *lru.Cache[string, *Session]

	gen      Generator
	policy   Policy
	defaults State
}

func NewManager(size int, gen Generator, policy Policy, defaultPrompt string, defaultFramework types.Framework) (*Manager, error) {
	cache, err := lru.New[string, *Session](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}
	if !defaultFramework.Valid() {
		defaultFramework = types.DefaultFramework
	}
	return &Manager{
		sessions: cache,
		gen:      gen,
		policy:   policy,
		defaults: State{Prompt: defaultPrompt, Framework: defaultFramework},
	}, nil
}

func (m *Manager) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	return m.sessions.Get(id)
}

// Acquire returns the session for id, creating a fresh one under a new id when id is
// unknown. created reports whether the caller must hand the new id to the browser.
func (m *Manager) Acquire(id string) (sess *Session, created bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.Get(id); ok {
		return s, false
	}
	s := New(uuid.NewString(), m.gen, m.policy, m.defaults)
	m.sessions.Add(s.ID, s)
	return s, true
}

func (m *Manager) Len() int {
	return m.sessions.Len()
}
