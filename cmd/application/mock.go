package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/capmap"
	"github.com/agentstation/capmap/pkg/kv"
)

// Mock provides a mock implementation of Application for testing.
// Nil function fields return zero values.
//
//	mock := &application.Mock{
//	    ClientFunc: func(context.Context) (capmap.Client, error) {
//	        return testClient, nil
//	    },
//	}
//	cmd := list.NewProcessesCommand(mock)
type Mock struct {
	ClientFunc        func(ctx context.Context) (capmap.Client, error)
	KVFunc            func(ctx context.Context) (kv.Store, error)
	LoggerFunc        func() *zerolog.Logger
	OutputFormatFunc  func() string
	ServeSettingsFunc func() ServeSettings
	VersionFunc       func() string
	CommitFunc        func() string
	DateFunc          func() string
	BuiltByFunc       func() string
}

var _ Application = (*Mock)(nil)

// Client returns a client using the mock function or nil.
func (m *Mock) Client(ctx context.Context) (capmap.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc(ctx)
	}
	return nil, nil
}

// KV returns a store using the mock function or nil.
func (m *Mock) KV(ctx context.Context) (kv.Store, error) {
	if m.KVFunc != nil {
		return m.KVFunc(ctx)
	}
	return nil, nil
}

// Logger returns a logger using the mock function or a nop logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// ServeSettings returns settings using the mock function or zero values.
func (m *Mock) ServeSettings() ServeSettings {
	if m.ServeSettingsFunc != nil {
		return m.ServeSettingsFunc()
	}
	return ServeSettings{}
}

// Version returns the version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns the commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns the date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns the builder using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
