// Package bootstrap ships the built-in catalog data set, embedded at
// build time and decoded once.
package bootstrap

import (
	_ "embed"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/capmap/pkg/catalog"
	"github.com/agentstation/capmap/pkg/errors"
)

//go:embed data/catalog.yaml
var raw []byte

var (
	once    sync.Once
	decoded catalog.Collections
	loadErr error
)

// Load returns a fresh copy of the bootstrap collections.
func Load() (catalog.Collections, error) {
	once.Do(func() {
		decoded, loadErr = Decode(raw)
	})
	if loadErr != nil {
		return catalog.Collections{}, loadErr
	}
	return decoded.Copy(), nil
}

// MustLoad is Load for callers that cannot continue without data.
func MustLoad() catalog.Collections {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Raw returns the embedded YAML document.
func Raw() []byte {
	return raw
}

// Decode parses a bootstrap-format YAML document.
func Decode(data []byte) (catalog.Collections, error) {
	var c catalog.Collections
	if err := yaml.Unmarshal(data, &c); err != nil {
		return catalog.Collections{}, errors.WrapParse("yaml", "bootstrap", err)
	}
	return c, nil
}
