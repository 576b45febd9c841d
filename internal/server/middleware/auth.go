// Package middleware provides HTTP middleware for credential forwarding and
// request tracing.
package middleware

import (
	"net/http"
	"strings"

	"github.com/jonathan/resume-studio/internal/backend"
)

// BearerToken creates middleware that copies the caller's bearer token into
// the request context so outbound resume service calls can forward it.
// Tokens are not validated here; the resume service owns identity.
// When required is true, requests without a token are rejected with 401.
func BearerToken(required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := ParseBearer(r.Header.Get("Authorization"))
			if !ok {
				if required {
					w.Header().Set("Content-Type", "application/json")
					w.Header().Set("WWW-Authenticate", "Bearer")
					w.WriteHeader(http.StatusUnauthorized)
					_, _ = w.Write([]byte(`{"error":"missing bearer token"}` + "\n"))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := backend.WithToken(r.Context(), token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ParseBearer extracts the token from an Authorization header value.
// The "Bearer" scheme is matched case-insensitively.
func ParseBearer(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
