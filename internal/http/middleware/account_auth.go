package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/canback/pickup-platform/internal/tokens"
)

const accountIDKey contextKey = "accountID"

// AccountAuth resolves the bearer token to an account ID via the token
// service and rejects requests without a valid token.
func AccountAuth(tokenService tokens.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				http.Error(w, `{"error":"missing bearer token"}`, http.StatusUnauthorized)
				return
			}
			token := strings.TrimPrefix(auth, "Bearer ")

			accountID, err := tokenService.Lookup(r.Context(), token)
			if err != nil {
				if errors.Is(err, tokens.ErrTokenNotFound) {
					http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
					return
				}
				http.Error(w, `{"error":"authentication unavailable"}`, http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), accountIDKey, accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountIDFromContext returns the authenticated account ID if present.
func AccountIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(accountIDKey).(string)
	return id, ok
}
