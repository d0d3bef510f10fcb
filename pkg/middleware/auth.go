package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKeyType string

const (
	customerIDKey  contextKeyType = "customer_id"
	usernameKey    contextKeyType = "username"
	authoritiesKey contextKeyType = "authorities"
)

// Claims represents the JWT claims extracted by the auth middleware.
type Claims struct {
	CustomerID  string   `json:"customer_id"`
	Username    string   `json:"username"`
	Authorities []string `json:"authorities"`
}

// TokenValidator is a function that validates a JWT token and returns claims.
// This allows the service to inject its own validation logic.
type TokenValidator func(token string) (*Claims, error)

// Auth middleware validates JWT tokens and injects customer claims into context.
func Auth(validate TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				writeAuthError(w, "invalid authorization header format")
				return
			}

			claims, err := validate(parts[1])
			if err != nil {
				writeAuthError(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), customerIDKey, claims.CustomerID)
			ctx = context.WithValue(ctx, usernameKey, claims.Username)
			ctx = context.WithValue(ctx, authoritiesKey, claims.Authorities)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuthority middleware checks that the authenticated customer carries
// at least one of the given authorities.
func RequireAuthority(authorities ...string) func(http.Handler) http.Handler {
	required := make(map[string]struct{}, len(authorities))
	for _, a := range authorities {
		required[a] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			granted := AuthoritiesFromContext(r.Context())
			for _, a := range granted {
				if _, ok := required[a]; ok {
					next.ServeHTTP(w, r)
					return
				}
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"code":    "FORBIDDEN",
				"message": "insufficient permissions",
			})
		})
	}
}

// CustomerIDFromContext extracts the customer ID from the request context.
func CustomerIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(customerIDKey).(string); ok {
		return id
	}
	return ""
}

// UsernameFromContext extracts the username from the request context.
func UsernameFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(usernameKey).(string); ok {
		return name
	}
	return ""
}

// AuthoritiesFromContext extracts the granted authorities from the request context.
func AuthoritiesFromContext(ctx context.Context) []string {
	if authorities, ok := ctx.Value(authoritiesKey).([]string); ok {
		return authorities
	}
	return nil
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    "UNAUTHORIZED",
		"message": message,
	})
}
