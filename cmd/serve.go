package cmd

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	"github.com/ferd/folio"
	"github.com/ferd/folio/server"
)

type serveCmd struct {
	listen string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the ledger over a JSON REST API" }
func (*serveCmd) Usage() string {
	return `serve [-listen <addr>]

  Starts the REST server. See 'fol topic server' for the API.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.listen, "listen", "", "Bind address, host:port (overrides the configuration)")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := appConfig()
	if err != nil {
		return fail(err)
	}
	if c.listen != "" {
		cfg.Listen = c.listen
	}

	prices, err := openPriceSource(cfg)
	if err != nil {
		// The server can still record transactions and report holdings; only
		// the pnl endpoint needs prices and it reports the failure itself.
		cause := err
		prices = folio.PriceSourceFunc(func(context.Context, []string) (map[string]folio.Money, error) {
			return nil, cause
		})
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fail(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(openAccounts(cfg), prices, logger)
	if err := srv.Run(ctx, cfg.Listen); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
