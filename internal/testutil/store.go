package testutil

import (
	"context"
	"errors"

	"github.com/roach88/rollcall/internal/store"
)

// ErrSaveFailed is returned by FailingStore once it starts failing.
var ErrSaveFailed = errors.New("testutil: save failed")

// FailingStore wraps a store.Memory and fails every Save while Fail is true.
type FailingStore struct {
	*store.Memory
	Fail bool
}

// NewFailingStore creates a FailingStore over an empty memory store.
func NewFailingStore() *FailingStore {
	return &FailingStore{Memory: store.NewMemory()}
}

// Save fails with ErrSaveFailed while Fail is set.
func (s *FailingStore) Save(ctx context.Context, key, value string) error {
	if s.Fail {
		return ErrSaveFailed
	}
	return s.Memory.Save(ctx, key, value)
}
