// Package filestore persists key-value pairs in a single YAML document.
//
// The whole document is rewritten on every Put or Delete through a
// temporary file and a rename, so a crash never leaves a torn file.
package filestore

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/capmap/pkg/constants"
	"github.com/agentstation/capmap/pkg/errors"
	"github.com/agentstation/capmap/pkg/kv"
)

var _ kv.Store = (*Store)(nil)

// document is the on-disk layout.
type document struct {
	Entries map[string]string `yaml:"entries"`
}

// Store is a YAML-file-backed kv.Store.
type Store struct {
	mu     sync.Mutex
	path   string
	doc    document
	closed bool
}

// Open loads path, creating parent directories as needed. A missing file
// is an empty store.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.NewValidationError("path", path, "file store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", filepath.Dir(path), err)
	}
	s := &Store{path: path, doc: document{Entries: map[string]string{}}}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	switch {
	case os.IsNotExist(err):
		return s, nil
	case err != nil:
		return nil, errors.WrapIO("read", path, err)
	}
	if err := yaml.Unmarshal(data, &s.doc); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	if s.doc.Entries == nil {
		s.doc.Entries = map[string]string{}
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Get implements kv.Store.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, errors.ErrClosed
	}
	v, ok := s.doc.Entries[key]
	if !ok {
		return nil, kv.NotFound(key)
	}
	return []byte(v), nil
}

// Put implements kv.Store.
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.ErrClosed
	}
	prev, had := s.doc.Entries[key]
	s.doc.Entries[key] = string(value)
	if err := s.flush(); err != nil {
		if had {
			s.doc.Entries[key] = prev
		} else {
			delete(s.doc.Entries, key)
		}
		return err
	}
	return nil
}

// Delete implements kv.Store.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.ErrClosed
	}
	prev, had := s.doc.Entries[key]
	if !had {
		return nil
	}
	delete(s.doc.Entries, key)
	if err := s.flush(); err != nil {
		s.doc.Entries[key] = prev
		return err
	}
	return nil
}

// Close implements kv.Store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// flush must be called with mu held.
func (s *Store) flush() error {
	data, err := yaml.Marshal(s.doc)
	if err != nil {
		return errors.WrapResource("encode", "file store", s.path, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".capmap-*.yaml")
	if err != nil {
		return errors.WrapIO("create", s.path, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.WrapIO("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("close", tmpName, err)
	}
	if err := os.Chmod(tmpName, constants.FilePermissions); err != nil {
		return errors.WrapIO("chmod", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return errors.WrapIO("rename", s.path, err)
	}
	return nil
}
