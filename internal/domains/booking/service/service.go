package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/isaaccomputerscience/isaac-api-sub002/config"
	"github.com/isaaccomputerscience/isaac-api-sub002/infras/lock"
	"github.com/isaaccomputerscience/isaac-api-sub002/infras/otel"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/booking/model"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/booking/repository"
	eventService "github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/event/service"
	notificationModel "github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/notification/model"
	notificationService "github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/notification/service"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/constant"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/timezone"
)

// Booking owns every booking status change. Capacity-sensitive writes run
// while holding the event's lock and read capacity and counts fresh from the
// primary; notifications go out after the lock is released.
type Booking interface {
	CreateBooking(ctx context.Context, eventID, userID string, info model.AdditionalInformation) (model.Booking, error)
	CreateReservations(ctx context.Context, eventID, reservedByID string, userIDs []string, info model.AdditionalInformation) ([]model.Booking, error)
	ConfirmReservation(ctx context.Context, eventID, userID string, info model.AdditionalInformation) (model.Booking, error)
	CancelBooking(ctx context.Context, eventID, userID string) (model.Booking, error)
	UpdateBookingStatus(ctx context.Context, eventID, userID string, status model.Status) (model.Booking, error)
	DeleteBooking(ctx context.Context, eventID, userID string) error
	EraseUserInformation(ctx context.Context, userID string) (int64, error)
	ExpireReservations(ctx context.Context, eventID string, now time.Time) (int, error)

	GetBooking(ctx context.Context, eventID, userID string) (model.Booking, error)
	ListEventBookings(ctx context.Context, eventID string, status *model.Status) ([]model.Booking, error)
	ListUserBookings(ctx context.Context, userID string) ([]model.Booking, error)
	ListUserReservations(ctx context.Context, reservedByID string) ([]model.Booking, error)
	CountAll(ctx context.Context) (int, error)
	StatusCounts(ctx context.Context, eventID string, includeDeletedUsers bool) (model.StatusCounts, error)
}

type serviceImpl struct {
	repo     repository.Booking
	events   eventService.Event
	notifier notificationService.Notifier
	locker   lock.Locker
	cfg      *config.Config
	otel     otel.Otel
	clock    timezone.Clock
}

func New(repo repository.Booking, events eventService.Event, notifier notificationService.Notifier, locker lock.Locker, cfg *config.Config, otel otel.Otel) Booking {
	return NewWithClock(repo, events, notifier, locker, cfg, otel, timezone.Now)
}

func NewWithClock(repo repository.Booking, events eventService.Event, notifier notificationService.Notifier, locker lock.Locker, cfg *config.Config, otel otel.Otel, clock timezone.Clock) Booking {
	return &serviceImpl{
		repo:     repo,
		events:   events,
		notifier: notifier,
		locker:   locker,
		cfg:      cfg,
		otel:     otel,
		clock:    clock,
	}
}

func (s *serviceImpl) scope(ctx context.Context, name, eventID, userID string) (context.Context, otel.Scope) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+"."+name)
	scope.SetAttributes(map[string]any{"event.id": eventID, "user.id": userID})

	return ctx, scope
}

func (s *serviceImpl) CreateBooking(ctx context.Context, eventID, userID string, info model.AdditionalInformation) (res model.Booking, err error) {
	ctx, scope := s.scope(ctx, "CreateBooking", eventID, userID)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var notes []notification

	err = s.withEventLock(ctx, eventID, func(ctx context.Context) error {
		if err := s.ensureNotBooked(ctx, eventID, userID); err != nil {
			return err
		}

		free, err := s.freeSeats(ctx, eventID)
		if err != nil {
			return err
		}

		status := model.StatusConfirmed
		if free <= 0 {
			status = model.StatusWaitingList
		}

		res, err = s.repo.Create(ctx, model.Booking{
			EventID:               eventID,
			UserID:                userID,
			Status:                status,
			AdditionalInformation: info,
		})
		if err != nil {
			return err //nolint:wrapcheck
		}

		template := notificationModel.TemplateBookingConfirmed
		if status == model.StatusWaitingList {
			template = notificationModel.TemplateWaitingListAddition
		}

		notes = append(notes, newNotification(res, template))

		return nil
	})

	s.notify(ctx, notes)

	if err != nil {
		return model.Booking{}, s.fail("create booking", err)
	}

	log.Info().Str("eventID", eventID).Str("userID", userID).Str("status", string(res.Status)).Msg("booking created")

	return res, nil
}

// CreateReservations books seats for userIDs on behalf of reservedByID. Either
// every reservation is created or none is.
func (s *serviceImpl) CreateReservations(ctx context.Context, eventID, reservedByID string, userIDs []string, info model.AdditionalInformation) (res []model.Booking, err error) {
	ctx, scope := s.scope(ctx, "CreateReservations", eventID, reservedByID)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validateReservation(reservedByID, userIDs); err != nil {
		return nil, s.fail("create reservations", err)
	}

	var notes []notification

	err = s.withEventLock(ctx, eventID, func(ctx context.Context) error {
		for _, userID := range userIDs {
			if err := s.ensureNotBooked(ctx, eventID, userID); err != nil {
				return err
			}
		}

		free, err := s.freeSeats(ctx, eventID)
		if err != nil {
			return err
		}

		if free < len(userIDs) {
			return fmt.Errorf("%w: %d places requested, %d available", model.ErrEventFull, len(userIDs), max(free, 0))
		}

		expiresAt := s.clock().Add(s.cfg.ReservationExpiry())
		bookings := make([]model.Booking, len(userIDs))

		for i, userID := range userIDs {
			bookings[i] = model.Booking{
				EventID:               eventID,
				UserID:                userID,
				ReservedByID:          &reservedByID,
				Status:                model.StatusConfirmed,
				AdditionalInformation: info,
				ReservationExpiresAt:  &expiresAt,
			}
		}

		res, err = s.repo.CreateBatch(ctx, bookings)
		if err != nil {
			return err //nolint:wrapcheck
		}

		for _, booking := range res {
			notes = append(notes, newNotification(booking, notificationModel.TemplateReservationCreated))
		}

		return nil
	})

	s.notify(ctx, notes)

	if err != nil {
		return nil, s.fail("create reservations", err)
	}

	log.Info().Str("eventID", eventID).Str("reservedByID", reservedByID).Int("count", len(res)).Msg("reservations created")

	return res, nil
}

func validateReservation(reservedByID string, userIDs []string) error {
	if reservedByID == constant.Empty {
		return fmt.Errorf("%w: reserving user is required", model.ErrInvalidReservation)
	}

	if len(userIDs) == 0 {
		return fmt.Errorf("%w: no users to reserve for", model.ErrInvalidReservation)
	}

	seen := make(map[string]struct{}, len(userIDs))

	for _, userID := range userIDs {
		if userID == constant.Empty {
			return fmt.Errorf("%w: empty user id", model.ErrInvalidReservation)
		}

		if userID == reservedByID {
			return fmt.Errorf("%w: users cannot reserve a place for themselves", model.ErrInvalidReservation)
		}

		if _, ok := seen[userID]; ok {
			return fmt.Errorf("%w: user %s listed twice", model.ErrInvalidReservation, userID)
		}

		seen[userID] = struct{}{}
	}

	return nil
}

// ConfirmReservation records the attendee's acceptance of a reservation made
// for them, which stops it from expiring.
func (s *serviceImpl) ConfirmReservation(ctx context.Context, eventID, userID string, info model.AdditionalInformation) (res model.Booking, err error) {
	ctx, scope := s.scope(ctx, "ConfirmReservation", eventID, userID)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var notes []notification

	err = s.withEventLock(ctx, eventID, func(ctx context.Context) error {
		current, err := s.findActive(ctx, eventID, userID)
		if err != nil {
			return err
		}

		if !current.IsPendingReservation() {
			return fmt.Errorf("%w: booking is not a pending reservation", model.ErrInvalidTransition)
		}

		if current.ReservationExpiresAt.Before(s.clock()) {
			return fmt.Errorf("%w: reservation expired at %s", model.ErrInvalidTransition,
				timezone.Format(*current.ReservationExpiresAt, constant.DateFormat))
		}

		if err = s.repo.ConfirmReservation(ctx, eventID, userID, info); err != nil {
			return err //nolint:wrapcheck
		}

		res = current
		res.ReservationExpiresAt = nil
		res.UpdatedAt = s.clock()

		if info != nil {
			res.AdditionalInformation = info
		}

		notes = append(notes, newNotification(res, notificationModel.TemplateReservationConfirmed))

		return nil
	})

	s.notify(ctx, notes)

	if err != nil {
		return model.Booking{}, s.fail("confirm reservation", err)
	}

	return res, nil
}

func (s *serviceImpl) CancelBooking(ctx context.Context, eventID, userID string) (res model.Booking, err error) {
	ctx, scope := s.scope(ctx, "CancelBooking", eventID, userID)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var notes []notification

	err = s.withEventLock(ctx, eventID, func(ctx context.Context) error {
		current, err := s.findActive(ctx, eventID, userID)
		if err != nil {
			return err
		}

		res, notes, err = s.cancel(ctx, current, notificationModel.TemplateBookingCancelled)

		return err
	})

	s.notify(ctx, notes)

	if err != nil {
		return model.Booking{}, s.fail("cancel booking", err)
	}

	log.Info().Str("eventID", eventID).Str("userID", userID).Msg("booking cancelled")

	return res, nil
}

// UpdateBookingStatus is the administrative status change. Promotion off the
// waiting list needs a free place; nothing leaves CANCELLED and confirmed
// bookings are never demoted.
func (s *serviceImpl) UpdateBookingStatus(ctx context.Context, eventID, userID string, status model.Status) (res model.Booking, err error) {
	ctx, scope := s.scope(ctx, "UpdateBookingStatus", eventID, userID)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !status.Valid() {
		return model.Booking{}, s.fail("update booking status", fmt.Errorf("%w: unknown status %q", model.ErrInvalidTransition, status))
	}

	var notes []notification

	err = s.withEventLock(ctx, eventID, func(ctx context.Context) error {
		current, err := s.repo.FindByEventAndUser(ctx, eventID, userID)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if current.IsCancelled() {
			return fmt.Errorf("%w: booking is cancelled", model.ErrInvalidTransition)
		}

		switch {
		case status == current.Status:
			res = current

			return nil
		case status == model.StatusCancelled:
			res, notes, err = s.cancel(ctx, current, notificationModel.TemplateBookingCancelled)

			return err
		case current.Status == model.StatusWaitingList && status == model.StatusConfirmed:
			free, err := s.freeSeats(ctx, eventID)
			if err != nil {
				return err
			}

			if free <= 0 {
				return fmt.Errorf("%w: no place to confirm the waiting list booking", model.ErrEventFull)
			}

			res, err = s.setStatus(ctx, current, model.StatusConfirmed)
			if err != nil {
				return err
			}

			notes = append(notes, newNotification(res, notificationModel.TemplateWaitingListPromotion))

			return nil
		default:
			return fmt.Errorf("%w: %s to %s", model.ErrInvalidTransition, current.Status, status)
		}
	})

	s.notify(ctx, notes)

	if err != nil {
		return model.Booking{}, s.fail("update booking status", err)
	}

	return res, nil
}

// DeleteBooking removes every row of the pair. A confirmed place freed this
// way is offered to the waiting list.
func (s *serviceImpl) DeleteBooking(ctx context.Context, eventID, userID string) (err error) {
	ctx, scope := s.scope(ctx, "DeleteBooking", eventID, userID)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var notes []notification

	err = s.withEventLock(ctx, eventID, func(ctx context.Context) error {
		current, err := s.repo.FindByEventAndUser(ctx, eventID, userID)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if err = s.repo.Delete(ctx, eventID, userID); err != nil {
			return err //nolint:wrapcheck
		}

		if current.Status != model.StatusConfirmed {
			return nil
		}

		notes, err = s.promote(ctx, eventID)

		return err
	})

	s.notify(ctx, notes)

	if err != nil {
		return s.fail("delete booking", err)
	}

	log.Info().Str("eventID", eventID).Str("userID", userID).Msg("booking deleted")

	return nil
}

// EraseUserInformation clears the additional information of every booking
// the user holds. Status is untouched, so no lock is taken.
func (s *serviceImpl) EraseUserInformation(ctx context.Context, userID string) (res int64, err error) {
	ctx, scope := s.scope(ctx, "EraseUserInformation", constant.Empty, userID)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.RedactAdditionalInformation(ctx, userID)
	if err != nil {
		return 0, s.fail("erase user booking information", err)
	}

	return res, nil
}

// ExpireReservations cancels the event's reservations whose deadline passed
// before now and promotes from the waiting list into the places they held.
// It returns how many reservations were cancelled, also on error.
func (s *serviceImpl) ExpireReservations(ctx context.Context, eventID string, now time.Time) (res int, err error) {
	ctx, scope := s.scope(ctx, "ExpireReservations", eventID, constant.Empty)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var notes []notification

	err = s.withEventLock(ctx, eventID, func(ctx context.Context) error {
		expired, err := s.repo.FindExpiredReservations(ctx, now, &eventID)
		if err != nil {
			return err //nolint:wrapcheck
		}

		freed := false

		for _, booking := range expired {
			cancelled, err := s.setStatus(ctx, booking, model.StatusCancelled)
			if err != nil {
				return err
			}

			res++
			freed = freed || booking.Status == model.StatusConfirmed
			notes = append(notes, newNotification(cancelled, notificationModel.TemplateReservationExpired))
		}

		if !freed {
			return nil
		}

		promoted, err := s.promote(ctx, eventID)
		notes = append(notes, promoted...)

		return err
	})

	s.notify(ctx, notes)

	if err != nil {
		return res, s.fail("expire reservations", err)
	}

	if res > 0 {
		log.Info().Str("eventID", eventID).Int("count", res).Msg("expired reservations cancelled")
	}

	return res, nil
}

func (s *serviceImpl) withEventLock(ctx context.Context, eventID string, fn func(ctx context.Context) error) error {
	err := lock.WithLock(ctx, s.locker, lock.Key(lock.NamespaceEventBookings, eventID), fn)
	if errors.Is(err, lock.ErrTimeout) {
		return fmt.Errorf("%w: %w", model.ErrLockTimeout, err)
	}

	return err //nolint:wrapcheck
}

// freeSeats is capacity minus confirmed bookings. Bookings of deleted users
// still hold their place. Must be called under the event lock.
func (s *serviceImpl) freeSeats(ctx context.Context, eventID string) (int, error) {
	capacity, err := s.events.GetEventCapacity(ctx, eventID)
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	counts, err := s.repo.StatusCountsByEvent(ctx, eventID, true)
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	return capacity - counts.Confirmed(), nil
}

func (s *serviceImpl) ensureNotBooked(ctx context.Context, eventID, userID string) error {
	current, err := s.repo.FindByEventAndUser(ctx, eventID, userID)

	switch {
	case errors.Is(err, model.ErrNotFound):
		return nil
	case err != nil:
		return err //nolint:wrapcheck
	case !current.IsCancelled():
		return fmt.Errorf("%w: event %s user %s", model.ErrDuplicateBooking, eventID, userID)
	default:
		return nil
	}
}

// findActive returns the pair's non-cancelled booking or ErrNotFound.
func (s *serviceImpl) findActive(ctx context.Context, eventID, userID string) (model.Booking, error) {
	current, err := s.repo.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return model.Booking{}, err //nolint:wrapcheck
	}

	if current.IsCancelled() {
		return model.Booking{}, fmt.Errorf("%w: no active booking for event %s user %s", model.ErrNotFound, eventID, userID)
	}

	return current, nil
}

func (s *serviceImpl) setStatus(ctx context.Context, booking model.Booking, status model.Status) (model.Booking, error) {
	if err := s.repo.UpdateStatus(ctx, booking.EventID, booking.UserID, nil, status, nil); err != nil {
		return booking, err //nolint:wrapcheck
	}

	booking.Status = status
	booking.UpdatedAt = s.clock()

	return booking, nil
}

// cancel moves booking to CANCELLED and, when it held a place, promotes from
// the waiting list in the same critical section.
func (s *serviceImpl) cancel(ctx context.Context, booking model.Booking, template string) (model.Booking, []notification, error) {
	cancelled, err := s.setStatus(ctx, booking, model.StatusCancelled)
	if err != nil {
		return booking, nil, err
	}

	notes := []notification{newNotification(cancelled, template)}

	if booking.Status != model.StatusConfirmed {
		return cancelled, notes, nil
	}

	promoted, err := s.promote(ctx, booking.EventID)

	return cancelled, append(notes, promoted...), err
}

// promote confirms waiting list bookings in creation order, ties broken by
// id, while places remain.
func (s *serviceImpl) promote(ctx context.Context, eventID string) ([]notification, error) {
	free, err := s.freeSeats(ctx, eventID)
	if err != nil || free <= 0 {
		return nil, err
	}

	waiting, err := s.repo.FindWaitingList(ctx, eventID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	slices.SortStableFunc(waiting, func(a, b model.Booking) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})

	var notes []notification

	for _, booking := range waiting {
		if free <= 0 {
			break
		}

		promoted, err := s.setStatus(ctx, booking, model.StatusConfirmed)
		if err != nil {
			return notes, err
		}

		free--

		notes = append(notes, newNotification(promoted, notificationModel.TemplateWaitingListPromotion))

		log.Info().Str("eventID", eventID).Str("userID", booking.UserID).Msg("waiting list booking promoted")
	}

	return notes, nil
}
