package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/isaaccomputerscience/isaac-api-sub002/infras/otel"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/constant"
)

const redisKeyPrefix = "lock:"

// releaseScript deletes the key only while it still carries the caller's token.
var releaseScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// refreshScript extends the lease only while the key still carries the caller's token.
var refreshScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('PEXPIRE', KEYS[1], ARGV[2])
	end
	return 0
`)

type redisLocker struct {
	client   *redis.Client
	opts     Options
	otel     otel.Otel
	newToken func() string
	// refreshEvery is how often a held lease is extended; a third of the TTL by default.
	refreshEvery time.Duration
}

type RedisOption func(*redisLocker)

// WithRefreshInterval overrides how often held leases are extended.
func WithRefreshInterval(d time.Duration) RedisOption {
	return func(l *redisLocker) {
		l.refreshEvery = d
	}
}

// WithTokenGenerator replaces the random owner token source.
func WithTokenGenerator(fn func() string) RedisOption {
	return func(l *redisLocker) {
		l.newToken = fn
	}
}

func NewRedisLocker(client *redis.Client, opts Options, ot otel.Otel, options ...RedisOption) Locker {
	locker := &redisLocker{
		client:   client,
		opts:     opts,
		otel:     ot,
		newToken: uuid.NewString,
	}

	for _, option := range options {
		option(locker)
	}

	if locker.refreshEvery <= 0 {
		locker.refreshEvery = opts.TTL / 3
	}

	return locker
}

func RedisKey(resourceID string) string {
	return redisKeyPrefix + resourceID
}

func (l *redisLocker) AcquireLock(ctx context.Context, resourceID string) (_ Lock, err error) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelLockScopeName, constant.OtelLockScopeName+".redis.AcquireLock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("lock.key", resourceID)

	waitCtx, cancel := context.WithTimeout(ctx, l.opts.Timeout)
	defer cancel()

	key := RedisKey(resourceID)
	token := l.newToken()

	for {
		acquired, err := l.client.SetNX(waitCtx, key, token, l.opts.TTL).Result()
		if err != nil {
			if waitCtx.Err() != nil {
				return nil, waitErr(ctx, waitCtx, resourceID)
			}

			return nil, fmt.Errorf("failed to set lock key: %w", err)
		}

		if acquired {
			log.Debug().Str("key", resourceID).Msg("redis lock acquired")

			return l.hold(resourceID, token), nil
		}

		if !sleep(waitCtx, l.opts.PollInterval) {
			return nil, waitErr(ctx, waitCtx, resourceID)
		}
	}
}

// hold keeps the lease alive until Release, so a holder that outlives the TTL
// keeps mutual exclusion.
func (l *redisLocker) hold(resourceID, token string) *redisLock {
	held := &redisLock{
		key:    resourceID,
		token:  token,
		client: l.client,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}

	go held.keepAlive(l.refreshEvery, l.opts.TTL)

	return held
}

type redisLock struct {
	key      string
	token    string
	client   *redis.Client
	mu       sync.Mutex
	released bool
	stop     chan struct{}
	done     chan struct{}
}

func (l *redisLock) Key() string {
	return l.key
}

func (l *redisLock) keepAlive(every, ttl time.Duration) {
	defer close(l.done)

	if every <= 0 {
		<-l.stop

		return
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			extended, err := refreshScript.Run(context.Background(), l.client, []string{RedisKey(l.key)}, l.token, ttl.Milliseconds()).Int64()
			if err != nil {
				log.Warn().Err(err).Str("key", l.key).Msg("failed to extend redis lock")

				continue
			}

			if extended == 0 {
				log.Error().Str("key", l.key).Msg("redis lock lost before release")

				return
			}
		}
	}
}

func (l *redisLock) Release(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.released {
		return ErrNotHeld
	}

	l.released = true

	close(l.stop)
	<-l.done

	deleted, err := releaseScript.Run(ctx, l.client, []string{RedisKey(l.key)}, l.token).Int64()
	if err != nil {
		return fmt.Errorf("failed to release redis lock %s: %w", l.key, err)
	}

	if deleted == 0 {
		// the TTL elapsed and another holder may own the key now
		return fmt.Errorf("%w: %s", ErrNotHeld, l.key)
	}

	return nil
}
