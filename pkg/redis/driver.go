package redis

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/charmbracelet/log"
	redisv8 "github.com/go-redis/redis/v8"
	"github.com/j0nas500/statsembed/pkg/rediskey"
)

type Parameters struct {
	Addr     string
	Username string
	Password string
}

type Driver struct {
	client *redisv8.Client
	locker *redislock.Client
}

func NewDriver(params Parameters) *Driver {
	rdb := redisv8.NewClient(&redisv8.Options{
		Addr:     params.Addr,
		Username: params.Username,
		Password: params.Password,
		DB:       0, // use default DB
	})
	return &Driver{client: rdb, locker: redislock.New(rdb)}
}

func (d *Driver) Ping(ctx context.Context) error {
	return d.client.Ping(ctx).Err()
}

func (d *Driver) Close() error {
	return d.client.Close()
}

// IdentityStore keeps the surface message id for one channel in redis.
type IdentityStore struct {
	driver    *Driver
	channelID string
}

func (d *Driver) IdentityStore(channelID string) *IdentityStore {
	return &IdentityStore{driver: d, channelID: channelID}
}

func (s *IdentityStore) Load(ctx context.Context) (string, error) {
	id, err := s.driver.client.Get(ctx, rediskey.SurfaceMessage(s.channelID)).Result()
	if errors.Is(err, redisv8.Nil) {
		return "", nil
	}
	return id, err
}

func (s *IdentityStore) Save(ctx context.Context, messageID string) error {
	return s.driver.client.Set(ctx, rediskey.SurfaceMessage(s.channelID), messageID, 0).Err()
}

// CycleLock makes sure only one process refreshes a given channel at a time.
type CycleLock struct {
	driver    *Driver
	channelID string
	logger    *log.Logger
}

func (d *Driver) CycleLock(channelID string, logger *log.Logger) *CycleLock {
	return &CycleLock{driver: d, channelID: channelID, logger: logger}
}

// TryLock does not wait: ok is false when another process holds the lock.
func (l *CycleLock) TryLock(ctx context.Context, ttl time.Duration) (release func(), ok bool, err error) {
	lock, err := l.driver.locker.Obtain(ctx, rediskey.RefreshLock(l.channelID), ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return func() {
		// the cycle may have outlived the ttl, in which case the lock is already gone
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.logger.Warn("failed to release refresh lock", "err", err)
		}
	}, true, nil
}
