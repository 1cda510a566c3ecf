package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"github.com/jonboulle/clockwork"
)

var log = logging.Logger("scheduler")

// Task performs one pass and reports how many entities it moved.
type Task func(ctx context.Context) (int, error)

// Driver runs a Task immediately and then once per Interval.
type Driver struct {
	Name     string
	Interval time.Duration
	Task     Task
	Clock    clockwork.Clock
}

// Run blocks until ctx is cancelled and every in-flight tick has returned.
// Each tick runs in its own goroutine so a slow pass never delays the next
// one; the engines behind a Task are idempotent and lease-guarded.
func (d Driver) Run(ctx context.Context) {
	if d.Interval <= 0 || d.Task == nil {
		log.Warnw("driver disabled", "driver", d.Name, "interval", d.Interval)
		return
	}
	clock := d.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	var wg sync.WaitGroup
	defer wg.Wait()

	tick := func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.once(ctx)
		}()
	}

	log.Infow("driver started", "driver", d.Name, "interval", d.Interval)
	tick()
	ticker := clock.NewTicker(d.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Infow("driver stopping", "driver", d.Name)
			return
		case <-ticker.Chan():
			tick()
		}
	}
}

func (d Driver) once(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("tick panicked", "driver", d.Name, "panic", fmt.Sprint(r))
		}
	}()
	n, err := d.Task(ctx)
	switch {
	case err != nil && errors.Is(err, context.Canceled):
		log.Debugw("tick cancelled", "driver", d.Name)
	case err != nil:
		log.Errorw("tick failed", "driver", d.Name, "processed", n, "err", err)
	case n > 0:
		log.Infow("tick", "driver", d.Name, "processed", n)
	default:
		log.Debugw("tick", "driver", d.Name, "processed", 0)
	}
}

// Sequence runs tasks in order within one tick. A failing task does not
// prevent the ones after it; the first error is returned.
func Sequence(tasks ...Task) Task {
	return func(ctx context.Context) (int, error) {
		total := 0
		var first error
		for _, t := range tasks {
			n, err := t(ctx)
			total += n
			if err != nil && first == nil {
				first = err
			}
		}
		return total, first
	}
}
