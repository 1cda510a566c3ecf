package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	Env         string
	ListenAddr  string
	MaxConns    int
	DatabaseURL string
	DBMaxConns  int32
	RedisURL    string
	NATSURL     string

	LedgerURL     string
	LedgerToken   string
	LedgerTimeout time.Duration
	// Re-queries after an indeterminate ledger call.
	ReconcileAttempts int
	ReconcileDelay    time.Duration

	PlatformAccount string
	Currency        string

	AuctionInterval     time.Duration
	MaturityInterval    time.Duration
	GracePeriod         time.Duration
	LeaseTTL            time.Duration
	FinalizeConcurrency int
	ScanBatch           int
}

// Development reports whether in-memory adapters may stand in for missing
// infrastructure.
func (c Config) Development() bool { return c.Env == "development" }

// LedgerStepBudget bounds one settlement step between lease renewals: a
// ledger call followed by a full reconciliation (ReconcileAttempts+1
// re-queries and their delays).
func (c Config) LedgerStepBudget() time.Duration {
	calls := time.Duration(c.ReconcileAttempts + 2)
	return calls*c.LedgerTimeout + time.Duration(c.ReconcileAttempts)*c.ReconcileDelay
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() (Config, error) {
	cfg := Config{
		Env:         getenv("APP_ENV", "development"),
		ListenAddr:  getenv("LISTEN_ADDR", ":8080"),
		MaxConns:    getenvInt("MAX_CONNS", 256),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBMaxConns:  int32(getenvInt("DB_MAX_CONNS", 10)),
		RedisURL:    os.Getenv("REDIS_URL"),
		NATSURL:     os.Getenv("NATS_URL"),

		LedgerURL:     os.Getenv("LEDGER_URL"),
		LedgerToken:   os.Getenv("LEDGER_TOKEN"),
		LedgerTimeout: getenvDuration("LEDGER_TIMEOUT", 10*time.Second),

		ReconcileAttempts: getenvInt("RECONCILE_ATTEMPTS", 3),
		ReconcileDelay:    getenvDuration("RECONCILE_DELAY", 500*time.Millisecond),

		PlatformAccount: getenv("PLATFORM_ACCOUNT", "platform"),
		Currency:        getenv("SETTLEMENT_CURRENCY", "USD"),

		AuctionInterval:     getenvDuration("AUCTION_INTERVAL", time.Minute),
		MaturityInterval:    getenvDuration("MATURITY_INTERVAL", 5*time.Minute),
		GracePeriod:         getenvDuration("GRACE_PERIOD", 7*24*time.Hour),
		LeaseTTL:            getenvDuration("LEASE_TTL", 5*time.Minute),
		FinalizeConcurrency: getenvInt("FINALIZE_CONCURRENCY", 4),
		ScanBatch:           getenvInt("SCAN_BATCH", 100),
	}
	if step := cfg.LedgerStepBudget(); cfg.LeaseTTL <= step {
		return cfg, fmt.Errorf("LEASE_TTL (%s) must exceed the longest ledger step (%s = %d calls of LEDGER_TIMEOUT %s plus retry delays)",
			cfg.LeaseTTL, step, cfg.ReconcileAttempts+2, cfg.LedgerTimeout)
	}
	if cfg.DatabaseURL == "" {
		// Not fatal for local runs; callers decide.
		return cfg, ErrNoDatabase
	}
	return cfg, nil
}

var ErrNoDatabase = fmt.Errorf("DATABASE_URL not set")

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var out int
		_, err := fmt.Sscanf(v, "%d", &out)
		if err == nil {
			return out
		}
	}
	return def
}

// getenvDuration accepts Go duration syntax ("90s", "168h").
func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
