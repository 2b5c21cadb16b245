package capmap

import (
	"time"

	"github.com/agentstation/capmap/pkg/catalog"
	"github.com/agentstation/capmap/pkg/errors"
	"github.com/agentstation/capmap/pkg/kv"
	"github.com/agentstation/capmap/pkg/sources"
)

// options holds Client configuration.
type options struct {
	kv             kv.Store
	source         sources.RowSource
	external       bool
	domain         catalog.Domain
	vendorID       string
	reloadInterval time.Duration
}

// Option is a function that configures a Client.
type Option func(*options) error

func defaults() *options {
	return &options{domain: catalog.DomainAll}
}

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithStore configures the key-value store for assignments and
// collection overlays. The Client closes it on Close.
func WithStore(store kv.Store) Option {
	return func(o *options) error {
		o.kv = store
		return nil
	}
}

// WithRowSource configures the external row source.
func WithRowSource(src sources.RowSource) Option {
	return func(o *options) error {
		o.source = src
		return nil
	}
}

// WithExternal configures whether loads read the external row source.
func WithExternal(enabled bool) Option {
	return func(o *options) error {
		o.external = enabled
		return nil
	}
}

// WithDomain sets the initial active domain.
func WithDomain(d catalog.Domain) Option {
	return func(o *options) error {
		parsed, err := catalog.ParseDomain(string(d))
		if err != nil {
			return err
		}
		o.domain = parsed
		return nil
	}
}

// WithVendor sets the initially selected vendor used for implicit
// capability resolution.
func WithVendor(vendorID string) Option {
	return func(o *options) error {
		o.vendorID = vendorID
		return nil
	}
}

// WithAutoReload reloads the catalog on the given interval until Close.
func WithAutoReload(interval time.Duration) Option {
	return func(o *options) error {
		if interval < 0 {
			return &errors.ValidationError{
				Field:   "reloadInterval",
				Value:   interval,
				Message: "reload interval must not be negative",
			}
		}
		o.reloadInterval = interval
		return nil
	}
}
