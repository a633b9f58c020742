package http

import (
	"context"
	"net/http"
	"strings"

	"harambee-backend/internal/security"
)

type contextKey string

const userClaimsKey contextKey = "userClaims"

// AuthMiddleware rejects requests without a valid access token and stores
// the verified claims on the request context.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := claimsFromRequest(tokens, r)
			if !ok {
				respondError(w, http.StatusUnauthorized, "missing or invalid access token")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userClaimsKey, claims)))
		})
	}
}

// OptionalAuthMiddleware attaches claims when a valid token is present but
// lets anonymous requests through. Used by link resolution, which serves
// visitors who have not registered yet.
func OptionalAuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := claimsFromRequest(tokens, r); ok {
				r = r.WithContext(context.WithValue(r.Context(), userClaimsKey, claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func claimsFromRequest(tokens security.TokenManager, r *http.Request) (*security.UserClaims, bool) {
	header := r.Header.Get("Authorization")
	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenString == "" {
		return nil, false
	}
	claims, err := tokens.ValidateToken(tokenString)
	if err != nil || claims.RequireType(security.TokenTypeAccess) != nil {
		return nil, false
	}
	return claims, true
}

// UserFromContext returns the authenticated claims, or nil on routes that
// allow anonymous access.
func UserFromContext(ctx context.Context) *security.UserClaims {
	claims, _ := ctx.Value(userClaimsKey).(*security.UserClaims)
	return claims
}
