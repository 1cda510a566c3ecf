package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	"github.com/urfave/cli/v2"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"

	httpadapter "receivables/internal/adapters/http"
	"receivables/internal/workers/scheduler"
)

var cmdServe = &cli.Command{
	Name:  "serve",
	Usage: "Run the HTTP API and the settlement schedulers",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "listen",
			Usage: "listen address, overrides LISTEN_ADDR",
		},
		&cli.BoolFlag{
			Name:  "migrate",
			Usage: "apply database migrations before serving",
		},
		&cli.BoolFlag{
			Name:  "no-schedulers",
			Usage: "serve manual endpoints only",
		},
	},
	Action: func(cctx *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if addr := cctx.String("listen"); addr != "" {
			cfg.ListenAddr = addr
		}

		ctx, stop := signal.NotifyContext(cctx.Context, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		svc, err := wire(ctx, cfg)
		if err != nil {
			return err
		}
		defer svc.close()

		if cctx.Bool("migrate") && svc.db != nil {
			if err := svc.db.Migrate(ctx); err != nil {
				return err
			}
		}

		srv := httpadapter.New(svc.auctions, svc.bids, svc.maturity, svc.reader())
		r := chi.NewRouter()
		r.Mount("/", srv.Routes())

		ln, err := net.Listen("tcp", cfg.ListenAddr)
		if err != nil {
			return err
		}
		if cfg.MaxConns > 0 {
			ln = netutil.LimitListener(ln, cfg.MaxConns)
		}
		hs := &http.Server{Handler: r, ReadHeaderTimeout: 10 * time.Second}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			log.Infow("listening", "addr", cfg.ListenAddr, "env", cfg.Env)
			if err := hs.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return hs.Shutdown(shutdownCtx)
		})

		if !cctx.Bool("no-schedulers") {
			clock := clockwork.NewRealClock()
			drivers := []scheduler.Driver{
				{Name: "auctions", Interval: cfg.AuctionInterval, Task: svc.auctions.ProcessExpiredAuctions, Clock: clock},
				{Name: "maturity", Interval: cfg.MaturityInterval, Clock: clock, Task: scheduler.Sequence(
					svc.maturity.ProcessMaturedClaims,
					svc.maturity.MarkOverduePayments,
				)},
			}
			for _, d := range drivers {
				g.Go(func() error {
					d.Run(gctx)
					return nil
				})
			}
		}

		err = g.Wait()
		log.Infow("stopped")
		return err
	},
}
