package transport

import (
	"net/http"
	"strings"
)

// Authenticator applies credentials to an outgoing request.
type Authenticator interface {
	Apply(req *http.Request, token string)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request, _ string) {}

// BearerAuth implements Bearer token authentication.
type BearerAuth struct{}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}

// HeaderAuth sends the token verbatim in a custom header.
type HeaderAuth struct {
	Header string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request, token string) {
	req.Header.Set(a.Header, token)
}

// QueryAuth sends the token as a query parameter.
type QueryAuth struct {
	Param string
}

// Apply implements the Authenticator interface for QueryAuth.
func (a *QueryAuth) Apply(req *http.Request, token string) {
	if req.URL == nil {
		return
	}
	query := req.URL.Query()
	query.Set(a.Param, token)
	req.URL.RawQuery = query.Encode()
}

// ParseAuth maps a configuration value to an Authenticator:
// "" or "none", "bearer", "header:<Name>" or "query:<param>".
// Unknown schemes fall back to bearer.
func ParseAuth(scheme string) Authenticator {
	scheme = strings.TrimSpace(scheme)
	switch {
	case scheme == "" || strings.EqualFold(scheme, "none"):
		return &NoAuth{}
	case strings.EqualFold(scheme, "bearer"):
		return &BearerAuth{}
	case strings.HasPrefix(strings.ToLower(scheme), "header:"):
		return &HeaderAuth{Header: scheme[len("header:"):]}
	case strings.HasPrefix(strings.ToLower(scheme), "query:"):
		return &QueryAuth{Param: scheme[len("query:"):]}
	}
	return &BearerAuth{}
}
