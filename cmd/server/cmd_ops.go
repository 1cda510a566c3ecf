package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var cmdFinalize = &cli.Command{
	Name:  "finalize",
	Usage: "Finalize one auction now and print the outcome",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "auction",
			Usage:    "auction id",
			Required: true,
		},
	},
	Action: func(cctx *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, err := wire(cctx.Context, cfg)
		if err != nil {
			return err
		}
		defer svc.close()

		res, err := svc.auctions.FinalizeAuction(cctx.Context, cctx.String("auction"))
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(res); encErr != nil {
			return encErr
		}
		return err
	},
}

var cmdScan = &cli.Command{
	Name:  "scan",
	Usage: "Run one settlement pass now",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "auctions", Usage: "finalize expired auctions"},
		&cli.BoolFlag{Name: "maturity", Usage: "open payments for matured claims"},
		&cli.BoolFlag{Name: "overdue", Usage: "mark payments past grace as overdue"},
	},
	Action: func(cctx *cli.Context) error {
		if !cctx.Bool("auctions") && !cctx.Bool("maturity") && !cctx.Bool("overdue") {
			return errors.New("pick at least one of --auctions, --maturity, --overdue")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, err := wire(cctx.Context, cfg)
		if err != nil {
			return err
		}
		defer svc.close()

		type pass struct {
			flag string
			run  func() (int, error)
		}
		passes := []pass{
			{"auctions", func() (int, error) { return svc.auctions.ProcessExpiredAuctions(cctx.Context) }},
			{"maturity", func() (int, error) { return svc.maturity.ProcessMaturedClaims(cctx.Context) }},
			{"overdue", func() (int, error) { return svc.maturity.MarkOverduePayments(cctx.Context) }},
		}
		for _, p := range passes {
			if !cctx.Bool(p.flag) {
				continue
			}
			n, err := p.run()
			if err != nil {
				return fmt.Errorf("%s: %w", p.flag, err)
			}
			log.Infow("pass finished", "pass", p.flag, "processed", n)
		}
		return nil
	},
}
