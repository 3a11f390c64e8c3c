package store

import (
	"context"
	"errors"
	"sync"
)

// StubMedium is an in-memory Medium for tests. Setting FailWrites simulates
// a full or broken underlying medium.
type StubMedium struct {
	mu         sync.Mutex
	data       map[string]string
	FailWrites bool
}

func NewStubMedium() *StubMedium {
	return &StubMedium{data: map[string]string{}}
}

func (m *StubMedium) Read(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *StubMedium) Write(ctx context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errors.New("write failed")
	}
	m.data[key] = value
	return nil
}

func (m *StubMedium) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[string]string{}
	m.FailWrites = false
}
