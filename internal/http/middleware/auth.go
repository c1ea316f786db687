package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Shoaib-Asghar/electronics-store-api/internal/apperr"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/http/apierr"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/model"
)

type userContextKey struct{}

// UserFromContext returns the authenticated user attached by Protect.
// Handlers pass the user explicitly into services instead of letting
// services reach back into the request.
func UserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(model.User)
	return user, ok
}

// UserResolver maps a bearer token to the acting user.
type UserResolver func(ctx context.Context, token string) (model.User, error)

// Protect rejects requests without a valid bearer credential and attaches
// the resolved user to the request context. It runs before any handler that
// mutates stock or other protected state.
func Protect(resolve UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeError(w, apperr.NotAuthorizedErr)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			user, err := resolve(r.Context(), token)
			if err != nil {
				writeError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects authenticated non-admin users. It must run after
// Protect.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || !user.IsAdmin() {
				writeError(w, apperr.AdminOnlyErr)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, err error) {
	res := apierr.New(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)
	//nolint:errcheck
	json.NewEncoder(w).Encode(res)
}
