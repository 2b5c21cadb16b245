package middleware

import (
	"crypto/subtle"
	"net/http"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/capmap/internal/server/response"
)

// AuthConfig holds API key authentication settings.
type AuthConfig struct {
	APIKey      string
	HeaderName  string
	PublicPaths []string
}

// DefaultAuthConfig returns the API key settings with health and metrics
// left public.
func DefaultAuthConfig(apiKey string) AuthConfig {
	return AuthConfig{
		APIKey:      apiKey,
		HeaderName:  "X-API-Key",
		PublicPaths: []string{"/health", "/metrics", "/api/v1/health", "/api/v1/ready"},
	}
}

// Auth rejects requests without the configured API key. Safe methods
// (GET, HEAD, OPTIONS) stay open when readOnlyPublic is set so only
// mutations need a key.
func Auth(cfg AuthConfig, readOnlyPublic bool, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(cfg.PublicPaths, r.URL.Path) || (readOnlyPublic && isSafe(r.Method)) {
				next.ServeHTTP(w, r)
				return
			}

			key := extractAPIKey(r, cfg.HeaderName)
			if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(cfg.APIKey)) != 1 {
				logger.Warn().
					Str("path", r.URL.Path).
					Str("remote_addr", r.RemoteAddr).
					Bool("key_provided", key != "").
					Msg("Authentication failed")
				response.Unauthorized(w, "Invalid or missing API key",
					"Provide a valid API key in the "+cfg.HeaderName+" header")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isSafe(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

func extractAPIKey(r *http.Request, header string) string {
	if key := r.Header.Get(header); key != "" {
		return key
	}
	auth := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return after
	}
	return auth
}
