package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	h "confprogram/internal/delivery/http/helpers"
)

// RequireToken returns a wrapper that checks the Bearer token in the
// Authorization header against the configured static token. An empty
// configured token disables the check entirely. If the token is missing
// or wrong, it responds with 401 and does not call next.
func RequireToken(expected string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if expected == "" {
				next(w, r)
				return
			}
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid token")
				return
			}
			next(w, r)
		}
	}
}
