package lock_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaaccomputerscience/isaac-api-sub002/infras/lock"
	otelMocks "github.com/isaaccomputerscience/isaac-api-sub002/infras/otel/mocks"
)

const (
	tryLockQuery = `SELECT pg_try_advisory_lock(hashtextextended($1, 0))`
	unlockQuery  = `SELECT pg_advisory_unlock(hashtextextended($1, 0))`
)

func newPostgresLocker(t *testing.T, opts lock.Options) (lock.Locker, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	return lock.NewPostgresLocker(sqlx.NewDb(db, "postgres"), opts, otelMocks.NewOtel()), mock
}

func boolRow(column string, value bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{column}).AddRow(value)
}

func TestPostgresLockerAcquireAndRelease(t *testing.T) {
	locker, mock := newPostgresLocker(t, lock.Options{Timeout: time.Second, PollInterval: time.Millisecond})

	mock.ExpectQuery(tryLockQuery).WithArgs("event-bookings:9").WillReturnRows(boolRow("pg_try_advisory_lock", false))
	mock.ExpectQuery(tryLockQuery).WithArgs("event-bookings:9").WillReturnRows(boolRow("pg_try_advisory_lock", true))
	mock.ExpectQuery(unlockQuery).WithArgs("event-bookings:9").WillReturnRows(boolRow("pg_advisory_unlock", true))

	held, err := locker.AcquireLock(context.Background(), "event-bookings:9")
	require.NoError(t, err)
	assert.Equal(t, "event-bookings:9", held.Key())

	assert.NoError(t, held.Release(context.Background()))
	assert.ErrorIs(t, held.Release(context.Background()), lock.ErrNotHeld)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresLockerTimeout(t *testing.T) {
	locker, mock := newPostgresLocker(t, lock.Options{Timeout: 10 * time.Millisecond, PollInterval: time.Second})

	mock.ExpectQuery(tryLockQuery).WithArgs("event-bookings:9").WillReturnRows(boolRow("pg_try_advisory_lock", false))

	held, err := locker.AcquireLock(context.Background(), "event-bookings:9")
	assert.Nil(t, held)
	assert.ErrorIs(t, err, lock.ErrTimeout)
}

func TestPostgresLockerQueryError(t *testing.T) {
	locker, mock := newPostgresLocker(t, lock.Options{Timeout: time.Second, PollInterval: time.Millisecond})
	errDB := errors.New("connection reset")

	mock.ExpectQuery(tryLockQuery).WithArgs("event-bookings:9").WillReturnError(errDB)

	held, err := locker.AcquireLock(context.Background(), "event-bookings:9")
	assert.Nil(t, held)
	assert.ErrorIs(t, err, errDB)
	assert.NotErrorIs(t, err, lock.ErrTimeout)
}

func TestPostgresLockReleaseFailure(t *testing.T) {
	locker, mock := newPostgresLocker(t, lock.Options{Timeout: time.Second, PollInterval: time.Millisecond})
	errDB := errors.New("connection reset")

	mock.ExpectQuery(tryLockQuery).WithArgs("event-bookings:9").WillReturnRows(boolRow("pg_try_advisory_lock", true))
	mock.ExpectQuery(unlockQuery).WithArgs("event-bookings:9").WillReturnError(errDB)

	held, err := locker.AcquireLock(context.Background(), "event-bookings:9")
	require.NoError(t, err)

	assert.ErrorIs(t, held.Release(context.Background()), errDB)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresLockHoldersLeaveStorePoolFree(t *testing.T) {
	server := newAdvisoryServer()
	store := server.pool(t, 2)
	locker := lock.NewPostgresLocker(server.pool(t, 2), lock.Options{Timeout: time.Second, PollInterval: time.Millisecond}, otelMocks.NewOtel())

	first, err := locker.AcquireLock(context.Background(), "event-bookings:a")
	require.NoError(t, err)

	second, err := locker.AcquireLock(context.Background(), "event-bookings:b")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	var counter int64
	require.NoError(t, store.GetContext(ctx, &counter, "SELECT counter"), "store query while both locks are held")

	require.NoError(t, first.Release(context.Background()))
	require.NoError(t, second.Release(context.Background()))
	assert.Zero(t, server.heldLocks())
}

func TestPostgresLockWaitersDoNotPinSessions(t *testing.T) {
	server := newAdvisoryServer()
	locker := lock.NewPostgresLocker(server.pool(t, 2), lock.Options{Timeout: 2 * time.Second, PollInterval: time.Millisecond}, otelMocks.NewOtel())

	held, err := locker.AcquireLock(context.Background(), "event-bookings:a")
	require.NoError(t, err)

	waitCtx, stopWaiting := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	for range 5 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if waiter, err := locker.AcquireLock(waitCtx, "event-bookings:a"); err == nil {
				_ = waiter.Release(context.Background())
			}
		}()
	}

	other, err := locker.AcquireLock(context.Background(), "event-bookings:b")
	require.NoError(t, err, "a free key must stay reachable while others wait")
	require.NoError(t, other.Release(context.Background()))

	stopWaiting()
	wg.Wait()

	require.NoError(t, held.Release(context.Background()))
	assert.Zero(t, server.heldLocks())
}

func TestWithLockSerializesStoreWritesUnderContention(t *testing.T) {
	const callers = 20

	server := newAdvisoryServer()
	store := server.pool(t, 2)
	locker := lock.NewPostgresLocker(server.pool(t, 4), lock.Options{Timeout: 5 * time.Second, PollInterval: time.Millisecond}, otelMocks.NewOtel())

	var active, overlaps atomic.Int32

	errs := make(chan error, callers)
	wg := sync.WaitGroup{}

	for range callers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			errs <- lock.WithLock(context.Background(), locker, "event-bookings:7", func(ctx context.Context) error {
				if active.Add(1) > 1 {
					overlaps.Add(1)
				}
				defer active.Add(-1)

				var counter int64
				if err := store.GetContext(ctx, &counter, "SELECT counter"); err != nil {
					return err
				}

				time.Sleep(time.Millisecond)

				_, err := store.ExecContext(ctx, "UPDATE counter SET value = $1", counter+1)

				return err
			})
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	assert.Zero(t, overlaps.Load())
	assert.Equal(t, int64(callers), server.value())
	assert.Zero(t, server.heldLocks())
}

func TestWithLockDistinctEventsShareSmallStorePool(t *testing.T) {
	const events = 10

	server := newAdvisoryServer()
	store := server.pool(t, 2)
	locker := lock.NewPostgresLocker(server.pool(t, events), lock.Options{Timeout: 5 * time.Second, PollInterval: time.Millisecond}, otelMocks.NewOtel())

	errs := make(chan error, events)
	wg := sync.WaitGroup{}

	for i := range events {
		wg.Add(1)

		go func() {
			defer wg.Done()

			key := lock.Key(lock.NamespaceEventBookings, fmt.Sprint(i))
			errs <- lock.WithLock(context.Background(), locker, key, func(ctx context.Context) error {
				var counter int64

				return store.GetContext(ctx, &counter, "SELECT counter")
			})
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	assert.Zero(t, server.heldLocks())
}
