package storage

import "sync"

var _ KV = (*MemoryKV)(nil)

// MemoryKV is an in-memory KV for tests and for sessions that should not
// outlive the process.
type MemoryKV struct {
	values map[string]string
	lock   sync.RWMutex
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return "", KeyNotFoundErr
	}
	return value, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.values[key] = value
	return nil
}

func (m *MemoryKV) Delete(key string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	delete(m.values, key)
	return nil
}
