package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/isaaccomputerscience/isaac-api-sub002/config"
	otelMocks "github.com/isaaccomputerscience/isaac-api-sub002/infras/otel/mocks"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/user/mocks"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/user/model"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/user/service"
	cacheMocks "github.com/isaaccomputerscience/isaac-api-sub002/shared/cache/mocks"
)

func TestResolveUser(t *testing.T) {
	errMiss := errors.New("cache miss")
	errDB := errors.New("db down")

	tests := []struct {
		name    string
		user    model.User
		repoErr error
		want    model.UserSummary
		wantErr error
	}{
		{
			name: "resolves summary",
			user: model.User{ID: "u1", Email: "ada@example.com", GivenName: "Ada", FamilyName: "Lovelace"},
			want: model.UserSummary{ID: "u1", Email: "ada@example.com", GivenName: "Ada", FamilyName: "Lovelace"},
		},
		{
			name: "deleted user still resolves",
			user: model.User{ID: "u1", Deleted: true},
			want: model.UserSummary{ID: "u1", Deleted: true},
		},
		{name: "unknown user", user: model.User{}, wantErr: model.ErrUserNotFound},
		{name: "store failure", repoErr: errDB, wantErr: errDB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockUser(ctrl)
			cache := cacheMocks.NewMockRedisCache(ctrl)

			cache.EXPECT().Get(gomock.Any(), "user:summary:u1", gomock.Any()).Return(errMiss)
			repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(tt.user, tt.repoErr)
			cache.EXPECT().Save(gomock.Any(), "user:summary:u1", gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

			svc := service.New(repo, &config.Config{}, cache, otelMocks.NewOtel())

			got, err := svc.ResolveUser(context.Background(), "u1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", model.UserSummary{GivenName: "Ada", FamilyName: "Lovelace"}.DisplayName())
	assert.Equal(t, "Ada", model.UserSummary{GivenName: "Ada"}.DisplayName())
	assert.Equal(t, "Lovelace", model.UserSummary{FamilyName: "Lovelace"}.DisplayName())
}
