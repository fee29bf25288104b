package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultExpiryInterval    = 5 * time.Minute
	defaultRedactionInterval = 24 * time.Hour
)

type job func(ctx context.Context, now time.Time) (Report, error)

func interval(seconds int, fallback time.Duration) time.Duration {
	if seconds <= 0 {
		return fallback
	}

	return time.Duration(seconds) * time.Second
}

func (s *schedulerImpl) Run(ctx context.Context) {
	expiry := time.NewTicker(interval(s.cfg.Booking.ExpiryIntervalSeconds, defaultExpiryInterval))
	defer expiry.Stop()

	redaction := time.NewTicker(interval(s.cfg.Booking.RedactionIntervalSeconds, defaultRedactionInterval))
	defer redaction.Stop()

	log.Info().
		Int("expiryIntervalSeconds", s.cfg.Booking.ExpiryIntervalSeconds).
		Int("redactionIntervalSeconds", s.cfg.Booking.RedactionIntervalSeconds).
		Msg("booking scheduler started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("booking scheduler stopped")

			return
		case <-expiry.C:
			s.runJob(ctx, s.ExpireReservations)
		case <-redaction.C:
			s.runJob(ctx, s.RedactStalePII)
		}
	}
}

func (s *schedulerImpl) runJob(ctx context.Context, run job) {
	started := s.clock()

	report, err := run(ctx, started)

	event := log.Info()
	if err != nil {
		event = log.Warn().Err(err)
	}

	event.Str("job", report.Job).
		Int("events", report.Events).
		Int64("processed", report.Processed).
		Int("failed", report.Failed).
		Int("skipped", report.Skipped).
		Dur("took", time.Since(started)).
		Msg("booking job finished")
}
