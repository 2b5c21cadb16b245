// Package kv defines the durable key-value contract used for the
// assignment overlay and the saved collection overlays.
//
// Values are opaque bytes; callers in this module store JSON. Backends
// live under internal/storage.
package kv

import (
	"context"
	"encoding/json"

	"github.com/agentstation/capmap/pkg/errors"
)

// Store is a durable string-keyed byte store.
//
// Get returns an error matching errors.ErrNotFound when the key is
// absent. Delete of an absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NotFound returns the error Get implementations report for a missing key.
func NotFound(key string) error {
	return errors.NewNotFoundError("key", key)
}

// GetJSON reads key and decodes it into v. found is false when the key
// is absent; err is set for any other failure, including bad JSON.
func GetJSON(ctx context.Context, s Store, key string, v any) (found bool, err error) {
	data, err := s.Get(ctx, key)
	if errors.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, errors.WrapParse("json", key, err)
	}
	return true, nil
}

// PutJSON encodes v and writes it under key.
func PutJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.WrapResource("encode", "value", key, err)
	}
	return s.Put(ctx, key, data)
}
