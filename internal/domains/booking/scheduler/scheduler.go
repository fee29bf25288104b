// Package scheduler runs the periodic booking lifecycle jobs: expiring
// unconfirmed reservations and redacting attendee information of events that
// finished more than the retention window ago.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/isaaccomputerscience/isaac-api-sub002/config"
	"github.com/isaaccomputerscience/isaac-api-sub002/infras/otel"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/booking/model"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/booking/repository"
	bookingService "github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/booking/service"
	eventModel "github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/event/model"
	eventService "github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/event/service"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/constant"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/timezone"
)

const (
	JobExpireReservations = "expire-reservations"
	JobRedactStalePII     = "redact-stale-pii"

	defaultEventDeadline = 30 * time.Second
)

var errSkipped = errors.New("skipped")

// Report summarises one job run. A run with Failed > 0 is a partial success.
type Report struct {
	Job       string
	Events    int
	Processed int64
	Failed    int
	Skipped   int
}

type Scheduler interface {
	ExpireReservations(ctx context.Context, now time.Time) (Report, error)
	RedactStalePII(ctx context.Context, now time.Time) (Report, error)
	// Run triggers both jobs on their intervals until ctx ends.
	Run(ctx context.Context)
}

type schedulerImpl struct {
	repo     repository.Booking
	bookings bookingService.Booking
	events   eventService.Event
	cfg      *config.Config
	otel     otel.Otel
	clock    timezone.Clock
}

func New(repo repository.Booking, bookings bookingService.Booking, events eventService.Event, cfg *config.Config, otel otel.Otel) Scheduler {
	return &schedulerImpl{
		repo:     repo,
		bookings: bookings,
		events:   events,
		cfg:      cfg,
		otel:     otel,
		clock:    timezone.Now,
	}
}

// ExpireReservations cancels every reservation whose deadline passed before
// now. Events are processed independently, each under its own deadline.
func (s *schedulerImpl) ExpireReservations(ctx context.Context, now time.Time) (res Report, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".scheduler.ExpireReservations")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res.Job = JobExpireReservations

	expired, err := s.repo.FindExpiredReservations(ctx, now, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to find expired reservations")

		return res, fmt.Errorf("failed to find expired reservations: %w", err)
	}

	eventIDs := distinctEventIDs(expired)

	return s.forEachEvent(ctx, res, eventIDs, func(ctx context.Context, eventID string) (int64, error) {
		n, err := s.bookings.ExpireReservations(ctx, eventID, now)

		return int64(n), err //nolint:wrapcheck
	})
}

// RedactStalePII clears additional information on bookings of events whose
// last day is older than the retention window. Events that no longer exist
// are skipped.
func (s *schedulerImpl) RedactStalePII(ctx context.Context, now time.Time) (res Report, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".scheduler.RedactStalePII")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res.Job = JobRedactStalePII

	eventIDs, err := s.repo.FindEventIDsWithAdditionalInformation(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to find events with additional information")

		return res, fmt.Errorf("failed to find events with additional information: %w", err)
	}

	retention := s.cfg.Retention()

	return s.forEachEvent(ctx, res, eventIDs, func(ctx context.Context, eventID string) (int64, error) {
		dates, err := s.events.GetEventDates(ctx, eventID)
		if errors.Is(err, eventModel.ErrEventNotFound) {
			return 0, errSkipped
		}

		if err != nil {
			return 0, err //nolint:wrapcheck
		}

		if !eventService.StaleSince(dates, retention, now) {
			return 0, errSkipped
		}

		return s.repo.RedactAdditionalInformationByEvent(ctx, eventID) //nolint:wrapcheck
	})
}

// forEachEvent runs fn for every event with bounded concurrency. A failing
// event is recorded and never stops the others.
func (s *schedulerImpl) forEachEvent(ctx context.Context, res Report, eventIDs []string, fn func(ctx context.Context, eventID string) (int64, error)) (Report, error) {
	var (
		mu   sync.Mutex
		errs *multierror.Error
		g    errgroup.Group
	)

	g.SetLimit(max(s.cfg.Booking.JobConcurrency, 1))

	deadline := time.Duration(s.cfg.Booking.EventDeadlineSeconds) * time.Second
	if deadline <= 0 {
		deadline = defaultEventDeadline
	}

	for _, eventID := range eventIDs {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			eventCtx, cancel := context.WithTimeout(ctx, deadline)
			defer cancel()

			n, err := fn(eventCtx, eventID)

			mu.Lock()
			defer mu.Unlock()

			res.Events++
			res.Processed += n

			switch {
			case errors.Is(err, errSkipped):
				res.Skipped++
			case err != nil:
				res.Failed++
				errs = multierror.Append(errs, fmt.Errorf("event %s: %w", eventID, err))

				log.Error().Err(err).Str("job", res.Job).Str("eventID", eventID).Msg("failed to process event")
			}

			return nil
		})
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("%s interrupted: %w", res.Job, err))
	}

	return res, errs.ErrorOrNil()
}

func distinctEventIDs(bookings []model.Booking) []string {
	seen := map[string]struct{}{}
	ids := []string{}

	for _, booking := range bookings {
		if _, ok := seen[booking.EventID]; ok {
			continue
		}

		seen[booking.EventID] = struct{}{}
		ids = append(ids, booking.EventID)
	}

	return ids
}
