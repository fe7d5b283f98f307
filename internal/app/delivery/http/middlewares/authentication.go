package middlewares

import (
	"availability-service/internal/pkg/constvars"
	"availability-service/internal/pkg/exceptions"
	"availability-service/internal/pkg/utils"
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// Authenticate verifies the bearer token and stores the practitioner id, roles
// and the raw token in the request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.RequestIDFromContext(r.Context())

		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, constvars.BearerPrefix) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(errors.New(constvars.ErrDevAuthTokenMissing)))
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, constvars.BearerPrefix))

		verified, err := m.JWTManager.VerifyToken(r.Context(), token)
		if err != nil {
			m.Log.Info("Middlewares.Authenticate token rejected",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_PRACTITIONER_ID_KEY, verified.Subject)
		ctx = context.WithValue(ctx, constvars.CONTEXT_ROLES_KEY, verified.Roles)
		ctx = context.WithValue(ctx, constvars.CONTEXT_ACCESS_TOKEN_KEY, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole lets the request through when the authenticated user holds role.
func (m *Middlewares) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !slices.Contains(utils.RolesFromContext(r.Context()), role) {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrNotMatchRoleType(nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
