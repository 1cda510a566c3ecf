package auctions

import (
	"context"
	"time"
)

// lease wraps one settlement attempt's hold on the auction.
type lease struct {
	svc   *Service
	key   string
	owner string
}

func (l *lease) acquire(ctx context.Context) (bool, error) {
	return l.svc.leases.AcquireLease(ctx, l.key, l.owner, l.svc.cfg.LeaseTTL)
}

// renew extends the lease before each ledger step. False means it expired
// and someone else took it; the caller must stop.
func (l *lease) renew(ctx context.Context) (bool, error) {
	return l.acquire(ctx)
}

func (l *lease) release(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := l.svc.leases.ReleaseLease(ctx, l.key, l.owner); err != nil {
		log.Warnw("release lease", "key", l.key, "err", err)
	}
}
