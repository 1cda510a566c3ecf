package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"receivables/internal/ports"
)

const keyPrefix = "receivables:lease:"

// releaseScript deletes the lease only when it is still held by owner.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// renewScript extends the lease only when it is still held by owner.
var renewScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// Leaser implements ports.Leaser on a single Redis instance.
type Leaser struct {
	rdb *goredis.Client
}

var _ ports.Leaser = (*Leaser)(nil)

func New(url string) (*Leaser, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Leaser{rdb: goredis.NewClient(opts)}, nil
}

func NewFromClient(rdb *goredis.Client) *Leaser { return &Leaser{rdb: rdb} }

func (l *Leaser) Ping(ctx context.Context) error { return l.rdb.Ping(ctx).Err() }

func (l *Leaser) Close() error { return l.rdb.Close() }

func (l *Leaser) AcquireLease(ctx context.Context, key, owner string, ttl time.Duration) (bool, error) {
	k := keyPrefix + key
	ok, err := l.rdb.SetNX(ctx, k, owner, ttl).Result()
	if err != nil {
		return false, err
	}
	if ok {
		return true, nil
	}
	n, err := renewScript.Run(ctx, l.rdb, []string{k}, owner, ttl.Milliseconds()).Int64()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (l *Leaser) ReleaseLease(ctx context.Context, key, owner string) error {
	err := releaseScript.Run(ctx, l.rdb, []string{keyPrefix + key}, owner).Err()
	if errors.Is(err, goredis.Nil) {
		return nil
	}
	return err
}
