package cache

import (
	"maps"
	"sync"
)

// Memory is a Cache that lives only as long as the process.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]string
	failSet error
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]string)}
}

// FailWrites makes Set and SetAll return err until called again with nil.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failSet = err
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	return m.SetAll(map[string]string{key: value})
}

func (m *Memory) SetAll(entries map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet != nil {
		return m.failSet
	}
	maps.Copy(m.entries, entries)
	return nil
}

func (m *Memory) Close() error { return nil }
