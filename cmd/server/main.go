package main

import (
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/urfave/cli/v2"
)

var log = logging.Logger("receivables")

func main() {
	if err := logging.SetLogLevel("*", "info"); err != nil {
		log.Fatal(err)
	}
	app := &cli.App{
		Name:  "receivables",
		Usage: "receivables auction and maturity settlement service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level for all subsystems",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(cctx *cli.Context) error {
			if ll := cctx.String("log-level"); ll != "" {
				return logging.SetLogLevel("*", ll)
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe,
			cmdMigrate,
			cmdFinalize,
			cmdScan,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
