package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/isaaccomputerscience/isaac-api-sub002/config"
	otelMocks "github.com/isaaccomputerscience/isaac-api-sub002/infras/otel/mocks"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/cache"
	cacheMocks "github.com/isaaccomputerscience/isaac-api-sub002/shared/cache/mocks"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/constant"
	"github.com/isaaccomputerscience/isaac-api-sub002/transport/http/middleware"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestIdentify(t *testing.T) {
	identity := middleware.NewIdentityMiddleware(otelMocks.NewOtel())

	var gotUser, gotRole string

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = middleware.UserID(r.Context())
		gotRole = middleware.Role(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constant.RequestHeaderUserID, " u1 ")
	request.Header.Set(constant.RequestHeaderUserRole, "Teacher")

	recorder := httptest.NewRecorder()
	identity.Identify(next).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "u1", gotUser)
	assert.Equal(t, constant.RoleTeacher, gotRole)

	recorder = httptest.NewRecorder()
	identity.Identify(next).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestIdentify_DefaultsToStudent(t *testing.T) {
	identity := middleware.NewIdentityMiddleware(otelMocks.NewOtel())

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constant.RequestHeaderUserID, "u1")

	var role string

	identity.Identify(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		role = middleware.Role(r.Context())
	})).ServeHTTP(httptest.NewRecorder(), request)

	assert.Equal(t, constant.RoleStudent, role)
}

func TestRequireRole(t *testing.T) {
	identity := middleware.NewIdentityMiddleware(otelMocks.NewOtel())
	guarded := identity.RequireRole(constant.RoleAdmin)(okHandler())

	tests := []struct {
		role     string
		wantCode int
	}{
		{role: constant.RoleAdmin, wantCode: http.StatusNoContent},
		{role: constant.RoleTeacher, wantCode: http.StatusForbidden},
		{role: "", wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			ctx := context.WithValue(context.Background(), constant.ContextKeyUserRole, tt.role)
			request := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)

			recorder := httptest.NewRecorder()
			guarded.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)
		})
	}
}

func TestCanActFor(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "u1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleStudent)

	assert.True(t, middleware.CanActFor(ctx, "u1"))
	assert.False(t, middleware.CanActFor(ctx, "u2"))

	staff := context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleTeacher)
	assert.True(t, middleware.CanActFor(staff, "u2"))
}

func newLimiter(t *testing.T, enable bool) (*cacheMocks.MockRedisCache, middleware.AppMiddleware) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = 3
	cfg.App.RateLimiter.WindowSeconds = 60

	redisCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))

	return redisCache, middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, redisCache)
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name          string
		stored        int
		getErr        error
		wantSave      int
		wantCode      int
		wantRemaining string
	}{
		{name: "first request", getErr: cache.Nil, wantSave: 1, wantCode: http.StatusNoContent, wantRemaining: "2"},
		{name: "within window", stored: 2, wantSave: 3, wantCode: http.StatusNoContent, wantRemaining: "0"},
		{name: "over limit", stored: 3, wantCode: http.StatusTooManyRequests},
		{name: "cache down lets traffic through", getErr: errors.New("redis down"), wantCode: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			redisCache, app := newLimiter(t, true)

			redisCache.EXPECT().Get(gomock.Any(), "limiter:user:u1", gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, value any) error {
					if tt.getErr != nil {
						return tt.getErr
					}

					*value.(*int) = tt.stored

					return nil
				})

			if tt.wantSave > 0 {
				redisCache.EXPECT().Save(gomock.Any(), "limiter:user:u1", tt.wantSave, 60).Return(nil)
			}

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set(constant.RequestHeaderUserID, "u1")

			recorder := httptest.NewRecorder()
			app.RateLimit()(okHandler()).ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)

			if tt.wantRemaining != "" {
				assert.Equal(t, tt.wantRemaining, recorder.Header().Get(constant.RequestHeaderRateLimitRemaining))
			}
		})
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	_, app := newLimiter(t, false)

	recorder := httptest.NewRecorder()
	app.RateLimit()(okHandler()).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, recorder.Code)
}
