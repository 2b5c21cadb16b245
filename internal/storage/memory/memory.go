// Package memory provides an in-process kv.Store. Values live for the
// lifetime of the process only.
package memory

import (
	"bytes"
	"context"
	"sync"

	"github.com/agentstation/capmap/pkg/errors"
	"github.com/agentstation/capmap/pkg/kv"
)

var _ kv.Store = (*Store)(nil)

// Store is a map-backed kv.Store safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// New creates an empty memory store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Get implements kv.Store.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, errors.ErrClosed
	}
	v, ok := s.data[key]
	if !ok {
		return nil, kv.NotFound(key)
	}
	return bytes.Clone(v), nil
}

// Put implements kv.Store.
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.ErrClosed
	}
	s.data[key] = bytes.Clone(value)
	return nil
}

// Delete implements kv.Store.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.ErrClosed
	}
	delete(s.data, key)
	return nil
}

// Close implements kv.Store. Further calls fail with errors.ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
