package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated caller as established by the auth
// middleware: identity plus the claims the access layer needs.
type Principal struct {
	UserID string
	Email  string
	Name   string
	Plan   string
}

// WithPrincipal adds the authenticated principal to the request context
func WithPrincipal(r *http.Request, p Principal) *http.Request {
	ctx := context.WithValue(r.Context(), principalKey, p)
	return r.WithContext(ctx)
}

// GetPrincipal retrieves the principal from context; ok is false when the
// request never passed the auth middleware
func GetPrincipal(r *http.Request) (Principal, bool) {
	p, ok := r.Context().Value(principalKey).(Principal)
	return p, ok
}

// GetUserID retrieves the caller's user ID, returns empty string if not found
func GetUserID(r *http.Request) string {
	p, _ := GetPrincipal(r)
	return p.UserID
}
