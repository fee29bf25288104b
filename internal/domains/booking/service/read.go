package service

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/booking/model"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/constant"
)

const (
	readRetryInitialInterval = 50 * time.Millisecond
	readRetryMaxInterval     = 500 * time.Millisecond
)

// retryRead retries op on store failures only. Writes never come through
// here since a failed write may still have been applied.
func retryRead[T any](ctx context.Context, tries uint, op func() (T, error)) (T, error) {
	return backoff.Retry(ctx, func() (T, error) { //nolint:wrapcheck
		res, err := op()
		if err != nil && !errors.Is(err, model.ErrPersistence) {
			return res, backoff.Permanent(err)
		}

		return res, err
	},
		backoff.WithBackOff(&backoff.ExponentialBackOff{
			InitialInterval:     readRetryInitialInterval,
			RandomizationFactor: backoff.DefaultRandomizationFactor,
			Multiplier:          backoff.DefaultMultiplier,
			MaxInterval:         readRetryMaxInterval,
		}),
		backoff.WithMaxTries(max(tries, 1)),
	)
}

func (s *serviceImpl) GetBooking(ctx context.Context, eventID, userID string) (res model.Booking, err error) {
	ctx, scope := s.scope(ctx, "GetBooking", eventID, userID)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = retryRead(ctx, s.cfg.Booking.ReadRetries, func() (model.Booking, error) {
		return s.repo.FindByEventAndUser(ctx, eventID, userID)
	})
	if err != nil {
		return model.Booking{}, s.fail("get booking", err)
	}

	return res, nil
}

func (s *serviceImpl) ListEventBookings(ctx context.Context, eventID string, status *model.Status) (res []model.Booking, err error) {
	ctx, scope := s.scope(ctx, "ListEventBookings", eventID, constant.Empty)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = retryRead(ctx, s.cfg.Booking.ReadRetries, func() ([]model.Booking, error) {
		return s.repo.FindAllByEvent(ctx, eventID, status)
	})
	if err != nil {
		return nil, s.fail("list event bookings", err)
	}

	return res, nil
}

func (s *serviceImpl) ListUserBookings(ctx context.Context, userID string) (res []model.Booking, err error) {
	ctx, scope := s.scope(ctx, "ListUserBookings", constant.Empty, userID)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = retryRead(ctx, s.cfg.Booking.ReadRetries, func() ([]model.Booking, error) {
		return s.repo.FindAllByUser(ctx, userID)
	})
	if err != nil {
		return nil, s.fail("list user bookings", err)
	}

	return res, nil
}

// ListUserReservations returns the bookings reservedByID made for others.
func (s *serviceImpl) ListUserReservations(ctx context.Context, reservedByID string) (res []model.Booking, err error) {
	ctx, scope := s.scope(ctx, "ListUserReservations", constant.Empty, reservedByID)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = retryRead(ctx, s.cfg.Booking.ReadRetries, func() ([]model.Booking, error) {
		return s.repo.FindReservationsByUser(ctx, reservedByID)
	})
	if err != nil {
		return nil, s.fail("list user reservations", err)
	}

	return res, nil
}

func (s *serviceImpl) CountAll(ctx context.Context) (res int, err error) {
	ctx, scope := s.scope(ctx, "CountAll", constant.Empty, constant.Empty)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = retryRead(ctx, s.cfg.Booking.ReadRetries, func() (int, error) {
		return s.repo.CountAll(ctx)
	})
	if err != nil {
		return 0, s.fail("count bookings", err)
	}

	return res, nil
}

func (s *serviceImpl) StatusCounts(ctx context.Context, eventID string, includeDeletedUsers bool) (res model.StatusCounts, err error) {
	ctx, scope := s.scope(ctx, "StatusCounts", eventID, constant.Empty)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = retryRead(ctx, s.cfg.Booking.ReadRetries, func() (model.StatusCounts, error) {
		return s.repo.StatusCountsByEvent(ctx, eventID, includeDeletedUsers)
	})
	if err != nil {
		return nil, s.fail("count event bookings by status", err)
	}

	return res, nil
}
