package lock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/isaaccomputerscience/isaac-api-sub002/infras/lock"
	"github.com/isaaccomputerscience/isaac-api-sub002/infras/lock/mocks"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "event-bookings:42", lock.Key(lock.NamespaceEventBookings, "42"))
	assert.NotEqual(t, lock.Key("users", "42"), lock.Key(lock.NamespaceEventBookings, "42"))
}

func TestWithLock(t *testing.T) {
	errFn := errors.New("fn failed")

	tests := []struct {
		name       string
		acquireErr error
		fnErr      error
		wantErr    error
		wantCalled bool
	}{
		{name: "runs fn and releases", wantCalled: true},
		{name: "releases when fn fails", fnErr: errFn, wantErr: errFn, wantCalled: true},
		{name: "does not run fn without lock", acquireErr: lock.ErrTimeout, wantErr: lock.ErrTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			locker := mocks.NewMockLocker(ctrl)
			held := mocks.NewMockLock(ctrl)

			if tt.acquireErr != nil {
				locker.EXPECT().AcquireLock(gomock.Any(), "event-bookings:1").Return(nil, tt.acquireErr)
			} else {
				locker.EXPECT().AcquireLock(gomock.Any(), "event-bookings:1").Return(held, nil)
				held.EXPECT().Release(gomock.Any()).Return(nil)
			}

			called := false
			err := lock.WithLock(context.Background(), locker, "event-bookings:1", func(context.Context) error {
				called = true

				return tt.fnErr
			})

			assert.Equal(t, tt.wantCalled, called)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithLockReleasesOnPanic(t *testing.T) {
	ctrl := gomock.NewController(t)
	locker := mocks.NewMockLocker(ctrl)
	held := mocks.NewMockLock(ctrl)

	locker.EXPECT().AcquireLock(gomock.Any(), "k").Return(held, nil)
	held.EXPECT().Release(gomock.Any()).Return(nil)

	assert.Panics(t, func() {
		_ = lock.WithLock(context.Background(), locker, "k", func(context.Context) error {
			panic("boom")
		})
	})
}

func TestWithLockReleasesAfterCallerCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	locker := mocks.NewMockLocker(ctrl)
	held := mocks.NewMockLock(ctrl)

	ctx, cancel := context.WithCancel(context.Background())

	locker.EXPECT().AcquireLock(gomock.Any(), "k").Return(held, nil)
	held.EXPECT().Release(gomock.Any()).DoAndReturn(func(releaseCtx context.Context) error {
		assert.NoError(t, releaseCtx.Err())

		return nil
	})

	err := lock.WithLock(ctx, locker, "k", func(context.Context) error {
		cancel()

		return nil
	})
	assert.NoError(t, err)
}
