package lock

import (
	"context"
	"database/sql/driver"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/isaaccomputerscience/isaac-api-sub002/infras/otel"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/constant"
)

const (
	queryTryAdvisoryLock = `SELECT pg_try_advisory_lock(hashtextextended($1, 0))`
	queryAdvisoryUnlock  = `SELECT pg_advisory_unlock(hashtextextended($1, 0))`
)

// postgresLocker uses session-level advisory locks. A session is borrowed
// from the lock pool for each attempt and kept only while the lock is held,
// so waiters never occupy a session between polls.
type postgresLocker struct {
	db   *sqlx.DB
	opts Options
	otel otel.Otel
}

func NewPostgresLocker(db *sqlx.DB, opts Options, ot otel.Otel) Locker {
	return &postgresLocker{
		db:   db,
		opts: opts,
		otel: ot,
	}
}

func (l *postgresLocker) AcquireLock(ctx context.Context, resourceID string) (_ Lock, err error) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelLockScopeName, constant.OtelLockScopeName+".postgres.AcquireLock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("lock.key", resourceID)

	waitCtx, cancel := context.WithTimeout(ctx, l.opts.Timeout)
	defer cancel()

	for {
		conn, err := l.tryLock(waitCtx, resourceID)
		if err != nil {
			if waitCtx.Err() != nil {
				return nil, waitErr(ctx, waitCtx, resourceID)
			}

			return nil, err
		}

		if conn != nil {
			log.Debug().Str("key", resourceID).Msg("advisory lock acquired")

			return &postgresLock{key: resourceID, conn: conn}, nil
		}

		if !sleep(waitCtx, l.opts.PollInterval) {
			return nil, waitErr(ctx, waitCtx, resourceID)
		}
	}
}

// tryLock makes one attempt. It returns the session owning the lock, or nil
// when another session holds it.
func (l *postgresLocker) tryLock(ctx context.Context, key string) (*sqlx.Conn, error) {
	conn, err := l.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain lock connection: %w", err)
	}

	var acquired bool

	if err = conn.GetContext(ctx, &acquired, queryTryAdvisoryLock, key); err != nil {
		// the outcome is unknown, so end the session rather than pool it
		discardConn(conn)

		return nil, fmt.Errorf("failed to try advisory lock: %w", err)
	}

	if !acquired {
		closeConn(conn, key)

		return nil, nil //nolint:nilnil
	}

	return conn, nil
}

type postgresLock struct {
	key  string
	mu   sync.Mutex
	conn *sqlx.Conn
}

func (l *postgresLock) Key() string {
	return l.key
}

// Release unlocks and returns the connection to the pool. If the unlock
// statement fails the connection is discarded instead, which ends the
// session and with it the lock.
func (l *postgresLock) Release(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.conn == nil {
		return ErrNotHeld
	}

	conn := l.conn
	l.conn = nil

	var released bool

	err := conn.GetContext(ctx, &released, queryAdvisoryUnlock, l.key)
	if err != nil || !released {
		discardConn(conn)

		if err != nil {
			return fmt.Errorf("failed to release advisory lock %s: %w", l.key, err)
		}

		return fmt.Errorf("%w: %s", ErrNotHeld, l.key)
	}

	closeConn(conn, l.key)

	return nil
}

func closeConn(conn *sqlx.Conn, key string) {
	if err := conn.Close(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to return lock connection")
	}
}

func discardConn(conn *sqlx.Conn) {
	// returning ErrBadConn from Raw makes database/sql close the session
	_ = conn.Raw(func(any) error { return driver.ErrBadConn })
	_ = conn.Close()
}
