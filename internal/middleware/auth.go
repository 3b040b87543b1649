package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/spendtrack/spendtrack-go/internal/auth"
)

type contextKey string

const identityKey contextKey = "identity"

// Authenticate returns middleware that guards every owner-scoped route. It
// extracts the bearer token from the Authorization header, has the token
// service verify it and injects the asserted identity into the request
// context. Any failure short-circuits with 401; the downstream handler is
// never invoked.
func Authenticate(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeUnauthorized(w, "no authorization header provided")
				return
			}

			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				writeUnauthorized(w, "no token provided")
				return
			}

			identity, err := tokens.Verify(token)
			if err != nil {
				writeUnauthorized(w, verifyFailureMessage(err))
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext extracts the authenticated identity from the request
// context.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok
}

func verifyFailureMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return "token has expired"
	case errors.Is(err, auth.ErrTokenSignature):
		return "token verification failed"
	default:
		return "invalid token format"
	}
}
