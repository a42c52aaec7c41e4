package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"filmroom/internal/auth"
	"filmroom/internal/httputil"
)

// Auth middleware verifies the Bearer token on every request and stashes
// the authenticated principal in the request context. Requests without a
// valid token never reach a handler.
func Auth(verifier auth.JWTVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "authorization header must be a bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Debug("token verification failed",
					"path", r.URL.Path,
					"error", err,
				)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			r = httputil.WithPrincipal(r, httputil.Principal{
				UserID: claims.GetUserID(),
				Email:  claims.Email,
				Name:   claims.DisplayName(),
				Plan:   claims.Plan(),
			})

			next.ServeHTTP(w, r)
		})
	}
}
