package payroll

import (
	"context"
	"fmt"
	"sync"
	"time"

	payrollerrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payroll/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Locker serializes processing and rollback of one payroll period.
// Acquire returns ErrRunInProgress when the period is already held.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

func PeriodLockKey(organizationID string, month, year int) string {
	return fmt.Sprintf("payroll:lock:%s:%04d-%02d", organizationID, year, month)
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// renewScript extends the lease only while this holder still owns the key.
var renewScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RedisLocker holds a lease for ttl and renews it every ttl/3 until released,
// so a pass that runs longer than ttl keeps the period to itself.
type RedisLocker struct {
	rdb      *redis.Client
	newToken func() string
	logger   *zap.Logger
}

func NewRedisLocker(rdb *redis.Client, logger ...*zap.Logger) *RedisLocker {
	l := zap.L().Named("payroll.locker")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.locker")
	}
	return &RedisLocker{rdb: rdb, newToken: uuid.NewString, logger: l}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	token := l.newToken()
	ok, err := l.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, payrollerrors.ErrRunInProgress
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go l.keepAlive(key, token, ttl, stop, done)

	var once sync.Once
	// The token check keeps a holder whose lease lapsed from deleting a newer holder's lock.
	return func() {
		once.Do(func() {
			close(stop)
			<-done
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(releaseCtx, l.rdb, []string{key}, token).Err(); err != nil {
				l.logger.Warn("release payroll lock failed", zap.String("key", key), zap.Error(err))
			}
		})
	}, nil
}

func (l *RedisLocker) keepAlive(key, token string, ttl time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	interval := ttl / 3
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			held, err := l.renew(ctx, key, token, ttl)
			cancel()
			if err != nil {
				l.logger.Warn("renew payroll lock failed", zap.String("key", key), zap.Error(err))
				continue
			}
			if !held {
				l.logger.Error("payroll lock lost before release", zap.String("key", key))
				return
			}
		}
	}
}

// renew reports whether the key was still held by token and has been extended.
func (l *RedisLocker) renew(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	n, err := renewScript.Run(ctx, l.rdb, []string{key}, token, ttl.Milliseconds()).Int64()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// LocalLocker is the in-process fallback when Redis is not configured.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]struct{})}
}

func (l *LocalLocker) Acquire(_ context.Context, key string, _ time.Duration) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, busy := l.held[key]; busy {
		return nil, payrollerrors.ErrRunInProgress
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, nil
}

// NewLocker picks the Redis locker when a client is available.
func NewLocker(rdb *redis.Client, logger ...*zap.Logger) Locker {
	if rdb == nil {
		return NewLocalLocker()
	}
	return NewRedisLocker(rdb, logger...)
}
