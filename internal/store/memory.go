package store

import (
	"context"
	"sync"
)

// Memory is a map-backed Store. The zero value is not usable; call NewMemory.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
	saves  map[string]int
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		values: make(map[string]string),
		saves:  make(map[string]int),
	}
}

// Load returns the value stored under key.
func (m *Memory) Load(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Save writes value under key.
func (m *Memory) Save(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.saves[key]++
	return nil
}

// Saves returns how many times key was written. Used by tests to check flush-on-mutation.
func (m *Memory) Saves(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves[key]
}

// Put seeds key with raw text, bypassing the save counter.
func (m *Memory) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}
