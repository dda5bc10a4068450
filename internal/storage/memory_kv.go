package storage

import "context"

// MemoryKV keeps entries in a map. It backs tests and --ephemeral sessions.
type MemoryKV struct {
	entries map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{entries: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.entries[key] = value
	return nil
}

func (m *MemoryKV) Remove(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	delete(m.entries, key)
	return nil
}
