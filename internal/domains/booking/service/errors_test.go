package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/isaaccomputerscience/isaac-api-sub002/config"
	"github.com/isaaccomputerscience/isaac-api-sub002/infras/lock"
	lockMocks "github.com/isaaccomputerscience/isaac-api-sub002/infras/lock/mocks"
	otelMocks "github.com/isaaccomputerscience/isaac-api-sub002/infras/otel/mocks"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/booking/mocks"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/booking/model"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/booking/service"
	eventMocks "github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/event/service/mocks"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/failure"
)

type mockFixture struct {
	repo   *mocks.MockBooking
	events *eventMocks.MockEvent
	locker *lockMocks.MockLocker
	lock   *lockMocks.MockLock
	svc    service.Booking
}

func newMockFixture(t *testing.T) mockFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Booking.ReadRetries = 3

	f := mockFixture{
		repo:   mocks.NewMockBooking(ctrl),
		events: eventMocks.NewMockEvent(ctrl),
		locker: lockMocks.NewMockLocker(ctrl),
		lock:   lockMocks.NewMockLock(ctrl),
	}
	f.svc = service.New(f.repo, f.events, &memNotifier{}, f.locker, cfg, otelMocks.NewOtel())

	return f
}

func (f mockFixture) expectLock() {
	f.locker.EXPECT().AcquireLock(gomock.Any(), lock.Key(lock.NamespaceEventBookings, eventID)).Return(f.lock, nil)
	f.lock.EXPECT().Release(gomock.Any()).Return(nil)
}

func persistence(action string) error {
	return fmt.Errorf("failed to %s: %w: %w", action, model.ErrPersistence, errors.New("connection reset"))
}

func TestReads_RetryStoreFailures(t *testing.T) {
	f := newMockFixture(t)
	want := model.Booking{ID: 7, EventID: eventID, UserID: "u1", Status: model.StatusConfirmed}

	gomock.InOrder(
		f.repo.EXPECT().FindByEventAndUser(gomock.Any(), eventID, "u1").Return(model.Booking{}, persistence("find booking")).Times(2),
		f.repo.EXPECT().FindByEventAndUser(gomock.Any(), eventID, "u1").Return(want, nil),
	)

	got, err := f.svc.GetBooking(context.Background(), eventID, "u1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReads_GiveUpAfterMaxTries(t *testing.T) {
	f := newMockFixture(t)

	f.repo.EXPECT().CountAll(gomock.Any()).Return(0, persistence("count bookings")).Times(3)

	_, err := f.svc.CountAll(context.Background())
	require.ErrorIs(t, err, model.ErrPersistence)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}

func TestReads_DoNotRetryNotFound(t *testing.T) {
	f := newMockFixture(t)

	f.repo.EXPECT().FindByEventAndUser(gomock.Any(), eventID, "u1").Return(model.Booking{}, model.ErrNotFound).Times(1)

	_, err := f.svc.GetBooking(context.Background(), eventID, "u1")
	require.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestWrites_AreNotRetried(t *testing.T) {
	f := newMockFixture(t)
	f.expectLock()

	f.repo.EXPECT().FindByEventAndUser(gomock.Any(), eventID, "u1").Return(model.Booking{}, model.ErrNotFound)
	f.events.EXPECT().GetEventCapacity(gomock.Any(), eventID).Return(10, nil)
	f.repo.EXPECT().StatusCountsByEvent(gomock.Any(), eventID, true).Return(model.StatusCounts{model.StatusConfirmed: 3}, nil)
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(model.Booking{}, persistence("create booking")).Times(1)

	_, err := f.svc.CreateBooking(context.Background(), eventID, "u1", nil)
	require.ErrorIs(t, err, model.ErrPersistence)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}

func TestCancelBooking_AmbiguousStateSurfaces(t *testing.T) {
	f := newMockFixture(t)
	f.expectLock()

	current := model.Booking{ID: 1, EventID: eventID, UserID: "u1", Status: model.StatusConfirmed}

	f.repo.EXPECT().FindByEventAndUser(gomock.Any(), eventID, "u1").Return(current, nil)
	f.repo.EXPECT().UpdateStatus(gomock.Any(), eventID, "u1", nil, model.StatusCancelled, nil).
		Return(fmt.Errorf("%w: 2 rows matched", model.ErrAmbiguousState))

	_, err := f.svc.CancelBooking(context.Background(), eventID, "u1")
	require.ErrorIs(t, err, model.ErrAmbiguousState)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}

func TestCancelBooking_PromotionFailureSurfaces(t *testing.T) {
	f := newMockFixture(t)
	f.expectLock()

	current := model.Booking{ID: 1, EventID: eventID, UserID: "u1", Status: model.StatusConfirmed}

	f.repo.EXPECT().FindByEventAndUser(gomock.Any(), eventID, "u1").Return(current, nil)
	f.repo.EXPECT().UpdateStatus(gomock.Any(), eventID, "u1", nil, model.StatusCancelled, nil).Return(nil)
	f.events.EXPECT().GetEventCapacity(gomock.Any(), eventID).Return(1, nil)
	f.repo.EXPECT().StatusCountsByEvent(gomock.Any(), eventID, true).Return(model.StatusCounts{}, nil)
	f.repo.EXPECT().FindWaitingList(gomock.Any(), eventID).Return(nil, persistence("find event bookings"))

	_, err := f.svc.CancelBooking(context.Background(), eventID, "u1")
	require.ErrorIs(t, err, model.ErrPersistence)
}

func TestLockTimeout_NoStoreAccess(t *testing.T) {
	f := newMockFixture(t)

	f.locker.EXPECT().AcquireLock(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("%w: %s", lock.ErrTimeout, eventID)).Times(3)

	_, err := f.svc.CreateBooking(context.Background(), eventID, "u1", nil)
	require.ErrorIs(t, err, model.ErrLockTimeout)
	assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))

	_, err = f.svc.CancelBooking(context.Background(), eventID, "u1")
	require.ErrorIs(t, err, model.ErrLockTimeout)

	_, err = f.svc.ExpireReservations(context.Background(), eventID, time.Now())
	require.ErrorIs(t, err, model.ErrLockTimeout)
}

func TestReleaseFailureDoesNotFailOperation(t *testing.T) {
	f := newMockFixture(t)

	f.locker.EXPECT().AcquireLock(gomock.Any(), gomock.Any()).Return(f.lock, nil)
	f.lock.EXPECT().Release(gomock.Any()).Return(lock.ErrNotHeld)
	f.repo.EXPECT().FindExpiredReservations(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{}, nil)

	n, err := f.svc.ExpireReservations(context.Background(), eventID, time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
}
