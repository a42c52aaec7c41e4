package models

import "github.com/golang-jwt/jwt/v5"

// SupabaseClaims represents the JWT claims structure from Supabase Auth.
// See: https://supabase.com/docs/guides/auth/jwts
type SupabaseClaims struct {
	jwt.RegisteredClaims                          // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string                   `json:"email"`
	AppMetadata          map[string]interface{}   `json:"app_metadata"`
	UserMetadata         map[string]interface{}   `json:"user_metadata"`
	Role                 string                   `json:"role"` // "authenticated" or "anon"
	SessionID            string                   `json:"session_id"`
	IsAnonymous          bool                     `json:"is_anonymous"`
}

// GetUserID returns the user ID from the JWT subject claim.
// This is the primary identifier for the authenticated user.
func (c *SupabaseClaims) GetUserID() string {
	return c.Subject
}

// DisplayName returns the user's display name from user metadata, falling
// back to the email address when none is set.
func (c *SupabaseClaims) DisplayName() string {
	if name, ok := c.UserMetadata["full_name"].(string); ok && name != "" {
		return name
	}
	return c.Email
}

// Plan returns the subscription plan from app metadata. Unknown or missing
// plans default to "free"; the entitlements registry decides what that
// plan may do.
func (c *SupabaseClaims) Plan() string {
	if plan, ok := c.AppMetadata["plan"].(string); ok && plan != "" {
		return plan
	}
	return "free"
}
