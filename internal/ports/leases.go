package ports

import (
	"context"
	"time"
)

// Leaser provides per-entity mutual exclusion across processes. A lease is
// held by owner until released or until ttl elapses.
type Leaser interface {
	AcquireLease(ctx context.Context, key, owner string, ttl time.Duration) (bool, error)
	ReleaseLease(ctx context.Context, key, owner string) error
}

func AuctionLeaseKey(id string) string { return "auction/" + id }
