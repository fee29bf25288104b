package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/isaaccomputerscience/isaac-api-sub002/infras/otel"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/constant"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/failure"
	"github.com/isaaccomputerscience/isaac-api-sub002/transport/http/response"
)

// Identity trusts the caller identity forwarded by the authenticating
// gateway in the X-User-ID and X-User-Role headers.
type Identity interface {
	// Identify rejects requests without a user id and stores the caller on
	// the request context.
	Identify(next http.Handler) http.Handler
	// RequireRole lets through only callers holding one of roles.
	RequireRole(roles ...string) func(http.Handler) http.Handler
}

type identityImpl struct {
	otel otel.Otel
}

func NewIdentityMiddleware(otel otel.Otel) Identity {
	return &identityImpl{
		otel: otel,
	}
}

func (m *identityImpl) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "identity.middleware")

		userID := strings.TrimSpace(request.Header.Get(constant.RequestHeaderUserID))
		if userID == "" {
			err := failure.Unauthorized(constant.ResponseErrorUnauthenticated)

			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		role := strings.ToLower(strings.TrimSpace(request.Header.Get(constant.RequestHeaderUserRole)))
		if role == "" {
			role = constant.RoleStudent
		}

		scope.SetAttributes(map[string]any{
			"user.id":   userID,
			"user.role": role,
		})
		scope.End()

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, userID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, role)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func (m *identityImpl) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !slices.Contains(roles, Role(request.Context())) {
				response.WithError(writer, failure.Forbidden(constant.ResponseErrorForbidden))

				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// UserID returns the caller stored by Identify.
func UserID(ctx context.Context) string {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return userID
}

func Role(ctx context.Context) string {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return role
}

// CanActFor reports whether the caller may act on userID's bookings: their
// own, or anyone's for staff.
func CanActFor(ctx context.Context, userID string) bool {
	if UserID(ctx) == userID {
		return true
	}

	return slices.Contains([]string{constant.RoleAdmin, constant.RoleTeacher}, Role(ctx))
}
