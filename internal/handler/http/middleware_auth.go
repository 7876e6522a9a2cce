// Package http implements the HTTP transport layer of the MinTid server.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, logging, tracing, rate limiting and
// metrics concerns are all handled at this layer before requests are
// forwarded to the service layer.
package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/mintid/mintid/internal/app"
	"github.com/mintid/mintid/internal/logger"
	"github.com/mintid/mintid/internal/utils"
	"github.com/mintid/mintid/models"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via [service.AuthService.ParseToken], and on success stores
// the authenticated account's ID in the request context under
// [utils.UserIDCtxKey] before delegating to the next handler.
//
// Requests are rejected with HTTP 401 Unauthorized when the header is absent,
// cannot be parsed as a bearer token, or carries an invalid or expired token.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		// Store the authenticated account's ID in the context so that
		// downstream handlers can retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin restricts a route to super admins and platform operators.
// Operator status is decided by the configured allow-list, not by role, so a
// listed account passes even when its profile row is missing.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		userID, ok := utils.GetUserIDFromContext(ctx)
		if !ok {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		profile, err := h.services.ProfileService.LookupByUserID(ctx, userID)
		if err != nil {
			log.Err(err).Str("user_id", userID).Msg("admin check could not load profile")
			http.Error(w, app.MsgAccessDenied, http.StatusForbidden)
			return
		}

		_, isOperator := h.operators.Lookup(profile.Username)
		if !isOperator && profile.Role != models.RoleSuperAdmin {
			log.Warn().
				Str("user_id", userID).
				Str("role", string(profile.Role)).
				Msg("admin route denied")
			http.Error(w, app.MsgAccessDenied, http.StatusForbidden)
			return
		}

		ctx = context.WithValue(ctx, utils.OperatorCtxKey, isOperator)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value of the standard
//
//	Authorization: <scheme> <token>
//
// form. It returns [ErrInvalidAuthorizationHeader] when the header has fewer
// than two space-separated parts and [ErrEmptyToken] when the token part is
// an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
