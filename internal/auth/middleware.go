package auth

import (
	"context"
	"net/http"
	"strings"

	httperrors "ecoreserva/internal/errors"
)

type ctxKey string

const claimsKey ctxKey = "authClaims"

// Middleware validates the bearer token and stores its claims in the request
// context. Requests without a valid token are rejected with 401.
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				httperrors.WriteJSON(w, httperrors.Unauthorized("No autorizado. Falta token."))
				return
			}
			claims, err := ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
			if err != nil {
				httperrors.WriteJSON(w, httperrors.Unauthorized("Token inválido o expirado."))
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles gates a handler to the given roles (admin, owner, client).
// A valid token with a disallowed role gets 403.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := FromContext(r.Context())
			if !ok {
				httperrors.WriteJSON(w, httperrors.Unauthorized("No autorizado. Falta token."))
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			httperrors.WriteJSON(w, httperrors.Forbidden("No tienes permisos para realizar esta acción."))
		})
	}
}

// FromContext extracts the token claims stored by Middleware.
func FromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}
