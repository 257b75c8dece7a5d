package store

import (
	"context"
	"sync"

	"passgate/cli/internal/account"
)

// Memory keeps the session in process memory. Nothing survives a restart;
// it backs tests and the explicit "memory" config mode.
type Memory struct {
	mu      sync.RWMutex
	session *account.Session
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Save(_ context.Context, s account.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := s
	m.session = &copied
	return nil
}

func (m *Memory) Load(_ context.Context) (*account.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return nil, nil
	}
	copied := *m.session
	return &copied, nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

func (m *Memory) Present(_ context.Context) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session != nil, nil
}
