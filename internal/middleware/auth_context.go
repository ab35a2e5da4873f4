package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-adoption/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// AuthCookieName es la cookie de sesión que setea el login.
const AuthCookieName = "AuthCookie"

// AuthContext:
// - Si verifier != nil toma el token de la cookie AuthCookie (o de un Bearer) y setea claims si Verify() pasa.
// - Si verifier == nil => modo dev: si viene header X-Debug-Username => setea claims.
// - Si no hay claims, el request sigue igual; RequireAuth corta donde haga falta.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				if u := strings.TrimSpace(r.Header.Get("X-Debug-Username")); u != "" {
					next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), auth.Claims{Username: u})))
					return
				}

				next.ServeHTTP(w, r)
				return
			}

			token := SessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// Token vencido o revocado: se trata como anónimo.
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok && strings.TrimSpace(c.Username) != ""
}

// SessionToken devuelve el token del request: cookie primero, Authorization después.
func SessionToken(r *http.Request) string {
	if c, err := r.Cookie(AuthCookieName); err == nil && strings.TrimSpace(c.Value) != "" {
		return strings.TrimSpace(c.Value)
	}
	return bearerToken(r.Header.Get("Authorization"))
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
