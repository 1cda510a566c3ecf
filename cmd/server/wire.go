package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"

	httpadapter "receivables/internal/adapters/http"
	"receivables/internal/adapters/ledger"
	"receivables/internal/adapters/memory"
	natsadapter "receivables/internal/adapters/nats"
	pg "receivables/internal/adapters/postgres"
	redisadapter "receivables/internal/adapters/redis"
	"receivables/internal/config"
	"receivables/internal/ports"
	"receivables/internal/services/auctions"
	"receivables/internal/services/bids"
	"receivables/internal/services/maturity"
)

type storage interface {
	ports.Store
	ports.Leaser
}

// services is the wired application. close releases every connection that
// was opened, in reverse order.
type services struct {
	cfg      config.Config
	store    storage
	db       *pg.DB
	auctions *auctions.Service
	bids     *bids.Service
	maturity *maturity.Service
	closers  []func()
}

func (s *services) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func (s *services) reader() httpadapter.Reader { return s.store }

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoDatabase) {
		if !cfg.Development() {
			return cfg, err
		}
		log.Warnw("DATABASE_URL not set; using in-memory store", "env", cfg.Env)
		return cfg, nil
	}
	return cfg, err
}

func wire(ctx context.Context, cfg config.Config) (*services, error) {
	s := &services{cfg: cfg}
	clock := clockwork.NewRealClock()

	if cfg.DatabaseURL != "" {
		db, err := pg.Connect(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		s.db = db
		s.store = db
		s.closers = append(s.closers, db.Close)
	} else {
		s.store = memory.New(clock.Now)
	}

	var leases ports.Leaser = s.store
	if cfg.RedisURL != "" {
		rl, err := redisadapter.New(cfg.RedisURL)
		if err != nil {
			s.close()
			return nil, err
		}
		if err := rl.Ping(ctx); err != nil {
			_ = rl.Close()
			s.close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		leases = rl
		s.closers = append(s.closers, func() { _ = rl.Close() })
	}

	var gw ports.LedgerGateway
	switch {
	case cfg.LedgerURL != "":
		gw = ledger.NewClient(cfg.LedgerURL, cfg.LedgerToken, cfg.LedgerTimeout)
	case cfg.Development():
		log.Warnw("LEDGER_URL not set; using in-memory ledger")
		gw = ledger.NewMemory()
	default:
		s.close()
		return nil, errors.New("LEDGER_URL is required outside development")
	}
	gw = ledger.WithTimeout(gw, cfg.LedgerTimeout)

	var events ports.EventPublisher = ports.NopPublisher{}
	if cfg.NATSURL != "" {
		pub, err := natsadapter.Connect(natsadapter.Config{URL: cfg.NATSURL})
		if err != nil {
			s.close()
			return nil, err
		}
		events = pub
		s.closers = append(s.closers, pub.Close)
	}

	s.auctions = auctions.New(s.store, leases, gw, events, clock, auctions.Config{
		PlatformAccount: cfg.PlatformAccount,
		Currency:        cfg.Currency,
		LeaseTTL:        cfg.LeaseTTL,
		BatchSize:       cfg.ScanBatch,
		Concurrency:     cfg.FinalizeConcurrency,

		ReconcileAttempts: cfg.ReconcileAttempts,
		ReconcileDelay:    cfg.ReconcileDelay,
	})
	s.bids = bids.New(s.store, gw, clock, cfg.Currency)
	s.maturity = maturity.New(s.store, gw, events, clock, maturity.Config{
		GracePeriod:       cfg.GracePeriod,
		BatchSize:         cfg.ScanBatch,
		ReconcileAttempts: cfg.ReconcileAttempts,
		ReconcileDelay:    cfg.ReconcileDelay,
	})
	return s, nil
}
