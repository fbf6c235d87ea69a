// Package api implements the Laguz REST API using chi.
package api

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const userKey contextKey = "user"

// defaultUser is assumed when a request carries no X-Username header,
// matching single-user deployments where no identity layer exists.
const defaultUser = "default"

// AuthMiddleware returns middleware that validates a Bearer token and
// resolves the acting user from the X-Username header.
// If enabled is false, all requests pass through (disabled mode).
func AuthMiddleware(enabled bool, token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if enabled {
				auth := r.Header.Get("Authorization")
				if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != token {
					writeError(w, http.StatusUnauthorized, "unauthorized")
					return
				}
			}
			user := r.Header.Get("X-Username")
			if user == "" {
				user = defaultUser
			}
			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// currentUser returns the acting user resolved by AuthMiddleware.
func currentUser(r *http.Request) string {
	if u, ok := r.Context().Value(userKey).(string); ok && u != "" {
		return u
	}
	return defaultUser
}
