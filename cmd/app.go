// Package cmd implements the CLI application to manage the position ledger.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ferd/folio"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&resetCmd{}, "transactions")

	c.Register(&holdingsCmd{}, "reports")
	c.Register(&pnlCmd{}, "reports")
	c.Register(&fetchCmd{}, "reports")

	c.Register(&serveCmd{}, "server")

	c.Register(&loginCmd{}, "credentials")

	c.Register(&topicCmd{}, "documentation")
	c.Register(&AssistCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "folio.yaml", "Path to the configuration file")
var ledgerFile = flag.String("ledger-file", "", "Path to the ledger state file (overrides the configuration)")

// appConfig loads the configuration file and applies command line overrides.
func appConfig() (*folio.Config, error) {
	cfg, err := folio.LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	if *ledgerFile != "" {
		cfg.LedgerFile = *ledgerFile
	}
	return cfg, nil
}

// openAccounts restores the accounting system from the configured ledger
// file.
func openAccounts(cfg *folio.Config) *folio.AccountingSystem {
	accounts, _ := folio.NewAccountingSystem(folio.NewLedgerStore(cfg.LedgerFile))
	return accounts
}

// openPriceSource resolves credentials and builds the market-data client.
// Commands that never need prices must not call it.
func openPriceSource(cfg *folio.Config) (folio.PriceSource, error) {
	creds, err := folio.LoadCredentials(cfg.CredentialsFile, os.Getenv("FOLIO_PASSPHRASE"))
	if err != nil {
		return nil, err
	}
	return folio.NewAlpacaClient(creds, cfg.Market.BaseURL, cfg.Market.Feed), nil
}

// fail prints the error and converts it to an exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
