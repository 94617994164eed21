package auth

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is an unexported type used for context keys in this package.
// A package-private key type means only this package can read or write the
// identity value - no other package can collide with or shadow it.
type contextKey string

const identityKey contextKey = "identity"

// failBody is the exact JSON sent for every authentication failure.
// Missing header, wrong scheme, bad signature, expired token, and ownership
// mismatches deeper in the stack all share this one shape - a caller can't
// probe which of them happened.
const failBody = `{"status":"fail","message":"Authorization required"}`

// RequireAuth guards protected routes.
//
// The middleware has exactly two outcomes: the request carries a
// well-formed, correctly signed, unexpired bearer access token and proceeds
// with the resolved Identity in its context - or it is rejected with 401
// before any handler logic runs. There is no partial state.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := BearerToken(r)
			if !ok {
				unauthorized(w)
				return
			}

			identity, err := tokens.ValidateAccess(raw)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the credential from the Authorization header.
// Returns false for a missing header or any scheme other than "Bearer".
// Exported because the refresh handler reads its (refresh) token from the
// same header on a public route.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" || token == "" {
		return "", false
	}
	return token, true
}

// IdentityFromContext retrieves the authenticated identity set by RequireAuth.
// Returns (nil, false) if the request never passed the guard.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*Identity)
	return identity, ok && identity != nil
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(failBody))
}
