package store

import (
	"sort"
	"sync"
)

// Memory is an in-process KV. Nothing survives the process.
type Memory struct {
	mu        sync.Mutex
	committed map[string][]byte
	pending   staged
	closed    bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		committed: make(map[string][]byte),
		pending:   make(staged),
	}
}

// Get implements KV.
func (m *Memory) Get(key string, v any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false, ErrClosed
	}
	if data, ok, present := m.pending.lookup(key); ok {
		if !present {
			return false, nil
		}
		return true, decode(key, data, v)
	}
	data, ok := m.committed[key]
	if !ok {
		return false, nil
	}
	return true, decode(key, data, v)
}

// Set implements KV.
func (m *Memory) Set(key string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	return m.pending.set(key, v)
}

// Delete implements KV.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	return m.pending.remove(key)
}

// Save implements KV.
func (m *Memory) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	for key, data := range m.pending {
		if data == nil {
			delete(m.committed, key)
			continue
		}
		m.committed[key] = data
	}
	m.pending = make(staged)
	return nil
}

// Discard implements KV.
func (m *Memory) Discard() {
	m.mu.Lock()
	m.pending = make(staged)
	m.mu.Unlock()
}

// Close implements KV.
func (m *Memory) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

// Describe implements Describer.
func (m *Memory) Describe() Description {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.committed))
	for k := range m.committed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return Description{Backend: BackendMemory, Keys: keys}
}
