package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, validates it
// via [service.AuthService.ParseToken] and stores the token subject in the
// request context under [utils.UserIDCtxKey]. Vault handlers take the owner
// from there and never from the request body.
//
// Requests without a header, with a malformed header or with an expired or
// invalid token are rejected with 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, "*Handler.auth", ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, "*Handler.auth", fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err))
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, "*Handler.auth", err)
			return
		}

		l := logger.FromRequest(r).With().Str("user_id", token.UserID).Logger()
		ctx = l.WithContext(ctx)
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
