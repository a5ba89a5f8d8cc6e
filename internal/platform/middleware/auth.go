package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	id "registrar/pkg/domain"
	"registrar/pkg/requestcontext"
)

// Claims are the token claims the registrar cares about. Staff status gates
// the analyst-only transitions (review, approve, reject).
type Claims struct {
	IsStaff bool `json:"is_staff"`
	jwt.RegisteredClaims
}

type staffKey struct{}

// ContextKeyIsStaff is exported for tests that inject auth state directly.
var ContextKeyIsStaff = staffKey{}

// IsStaff reports whether the authenticated actor carries the staff claim.
func IsStaff(ctx context.Context) bool {
	isStaff, ok := ctx.Value(ContextKeyIsStaff).(bool)
	return ok && isStaff
}

// WithStaff injects the staff flag into a context. Test helper.
func WithStaff(ctx context.Context, isStaff bool) context.Context {
	return context.WithValue(ctx, ContextKeyIsStaff, isStaff)
}

// RequireAuth validates the Bearer token and stores the actor ID and staff
// flag in the request context.
func RequireAuth(signingKey string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const bearerPrefix = "Bearer "
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(
				strings.TrimPrefix(authHeader, bearerPrefix),
				claims,
				func(t *jwt.Token) (any, error) {
					if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
						return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
					}
					return []byte(signingKey), nil
				},
			)
			if err != nil || !token.Valid {
				logger.WarnContext(r.Context(), "token validation failed", "error", err)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
				return
			}

			actorID, err := id.ParseUserID(claims.Subject)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "invalid subject")
				return
			}

			ctx := requestcontext.WithActorID(r.Context(), actorID)
			ctx = WithStaff(ctx, claims.IsStaff)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireStaff rejects non-staff actors. Must run after RequireAuth.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsStaff(r.Context()) {
			writeJSONError(w, http.StatusForbidden, "forbidden", "staff access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeJSONError writes a JSON error response with the given status code and error details.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":%q,"error_description":%q}`, errCode, errDesc))
}
