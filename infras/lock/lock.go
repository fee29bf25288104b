// Package lock provides named, non-reentrant locks shared by every instance
// of the service. Holders are serialized per key; different keys never block
// each other.
package lock

//go:generate go run go.uber.org/mock/mockgen -source=./lock.go -destination=./mocks/lock_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/isaaccomputerscience/isaac-api-sub002/config"
	"github.com/isaaccomputerscience/isaac-api-sub002/infras/otel"
	"github.com/isaaccomputerscience/isaac-api-sub002/infras/postgres"
)

const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"

	// NamespaceEventBookings guards every booking mutation of one event.
	NamespaceEventBookings = "event-bookings"
)

var (
	// ErrTimeout is returned when the lock was not obtained within the configured wait.
	ErrTimeout = errors.New("timed out waiting for lock")
	// ErrNotHeld is returned when releasing a lock that is no longer owned.
	ErrNotHeld = errors.New("lock not held")
)

// Key builds the resource id for id within namespace, e.g. "event-bookings:42".
func Key(namespace, id string) string {
	return namespace + ":" + id
}

type Lock interface {
	Key() string
	Release(ctx context.Context) error
}

type Locker interface {
	// AcquireLock blocks until the lock for resourceID is held, the wait
	// times out (ErrTimeout) or ctx ends.
	AcquireLock(ctx context.Context, resourceID string) (Lock, error)
}

type Options struct {
	Timeout      time.Duration
	PollInterval time.Duration
	// TTL bounds how long an abandoned redis lock survives its holder.
	TTL time.Duration
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Timeout:      cfg.LockTimeout(),
		PollInterval: cfg.LockPollInterval(),
		TTL:          cfg.LockTTL(),
	}
}

// New selects the backend named by BOOKING_LOCK_BACKEND. The postgres backend
// gets its own session pool sized by BOOKING_LOCK_POOL_SIZE.
func New(cfg *config.Config, rdb *redis.Client, ot otel.Otel) Locker {
	opts := OptionsFromConfig(cfg)

	switch cfg.Booking.LockBackend {
	case BackendRedis:
		log.Info().Str("backend", BackendRedis).Msg("lock backend initialized")

		return NewRedisLocker(rdb, opts, ot)
	case BackendPostgres, "":
		log.Info().Str("backend", BackendPostgres).Msg("lock backend initialized")

		return NewPostgresLocker(postgres.CreatePostgresLockConn(*cfg), opts, ot)
	default:
		log.Fatal().Str("backend", cfg.Booking.LockBackend).Msg("unknown lock backend")

		return nil
	}
}

// WithLock runs fn while holding the lock for key. The lock is released on
// every exit path of fn, panics included.
func WithLock(ctx context.Context, locker Locker, key string, fn func(ctx context.Context) error) (err error) {
	lk, err := locker.AcquireLock(ctx, key)
	if err != nil {
		return err //nolint:wrapcheck
	}

	defer func() {
		releaseCtx := context.WithoutCancel(ctx)
		if releaseErr := lk.Release(releaseCtx); releaseErr != nil {
			log.Error().Err(releaseErr).Str("key", key).Msg("failed to release lock")
		}
	}()

	return fn(ctx)
}

// waitErr maps the end of an acquisition wait to ErrTimeout when the
// acquisition deadline, not the caller, ended it.
func waitErr(parent, waitCtx context.Context, key string) error {
	if parent.Err() != nil {
		return fmt.Errorf("acquiring lock %s: %w", key, parent.Err())
	}

	if errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrTimeout, key)
	}

	return fmt.Errorf("acquiring lock %s: %w", key, waitCtx.Err())
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
