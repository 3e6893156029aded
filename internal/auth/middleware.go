package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/fleetrent/fleetrent/internal/domain"
)

// TokenValidator resolves a bearer-token key to its user.
type TokenValidator interface {
	Validate(ctx context.Context, key string) (*domain.User, error)
}

// Config contains configuration for the auth middleware.
type Config struct {
	// SkipPaths are paths that skip authentication.
	SkipPaths []string
}

// DefaultConfig returns the default auth configuration.
func DefaultConfig() Config {
	return Config{
		SkipPaths: []string{"/health", "/metrics"},
	}
}

// ParseAuthorizationHeader extracts the token key from an Authorization
// header. Both "Bearer <key>" and "Token <key>" schemes are accepted.
// An empty header returns ErrMissingCredentials.
func ParseAuthorizationHeader(header string) (string, error) {
	if header == "" {
		return "", ErrMissingCredentials
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	scheme := parts[0]
	key := strings.TrimSpace(parts[1])
	if key == "" {
		return "", ErrInvalidAuthorizationHeader
	}

	switch {
	case strings.EqualFold(scheme, "Bearer"), strings.EqualFold(scheme, "Token"):
		return key, nil
	default:
		return "", ErrInvalidAuthorizationHeader
	}
}

// Middleware creates an authentication middleware. Requests without a
// valid token are rejected with 401 before reaching the handler.
func Middleware(validator TokenValidator, config Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Check if path should skip authentication
			for _, path := range config.SkipPaths {
				if r.URL.Path == path {
					next.ServeHTTP(w, r)
					return
				}
			}

			key, err := ParseAuthorizationHeader(r.Header.Get("Authorization"))
			if err != nil {
				writeAuthError(w, err)
				return
			}

			user, err := validator.Validate(r.Context(), key)
			if err != nil {
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("token authentication failed")
				writeAuthError(w, ErrInvalidToken)
				return
			}

			identity := &Identity{User: user, TokenKey: key}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// writeAuthError writes a 401 response with a JSON detail body.
func writeAuthError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": err.Error()})
}
