// Package middleware provides HTTP middleware for authentication and authorization.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// recruiterIDKey is the context key for storing the authenticated recruiter ID.
const recruiterIDKey ContextKey = "recruiterID"

// TokenValidator is an interface for validating JWT tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (RecruiterIDGetter, error)
}

// RecruiterIDGetter is an interface for extracting the recruiter ID from token claims.
type RecruiterIDGetter interface {
	GetRecruiterID() string
}

// AuthMiddleware creates middleware that validates JWT tokens and adds the recruiter ID to request context.
func AuthMiddleware(jwtService TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w)
				return
			}

			// Handle case-insensitive "Bearer" prefix
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w)
				return
			}

			claims, err := jwtService.ValidateToken(parts[1])
			if err != nil {
				unauthorized(w)
				return
			}

			recruiterID := claims.GetRecruiterID()
			if recruiterID == "" {
				unauthorized(w)
				return
			}

			ctx := WithRecruiterID(r.Context(), recruiterID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="resume-enhancer"`)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}

// WithRecruiterID returns a copy of ctx carrying the recruiter ID.
func WithRecruiterID(ctx context.Context, recruiterID string) context.Context {
	return context.WithValue(ctx, recruiterIDKey, recruiterID)
}

// GetRecruiterID extracts the authenticated recruiter ID from the request context.
func GetRecruiterID(r *http.Request) (string, error) {
	recruiterID, ok := r.Context().Value(recruiterIDKey).(string)
	if !ok || recruiterID == "" {
		return "", fmt.Errorf("recruiter ID not found in request context")
	}
	return recruiterID, nil
}
