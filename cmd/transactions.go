package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/ferd/folio"
	"github.com/ferd/folio/renderer"
)

// recordTransaction runs tx through the accounting system and prints the
// confirmation with the resulting totals.
func recordTransaction(tx folio.Transaction) subcommands.ExitStatus {
	cfg, err := appConfig()
	if err != nil {
		return fail(err)
	}

	snapshot, err := openAccounts(cfg).ProcessTransaction(tx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording transaction: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println(renderer.Transaction(tx))
	fmt.Printf("Total assets %s, realized PnL %s\n", snapshot.TotalAssets, snapshot.RealizedPnL.SignedString())
	return subcommands.ExitSuccess
}

// --- Buy Command ---

type buyCmd struct {
	symbol   string
	quantity int64
	price    float64
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "purchase shares to open or add to a position" }
func (*buyCmd) Usage() string {
	return `buy -s <symbol> -q <quantity> -p <price>

  Purchases shares of a stock. Buying folds the shares into the position's
  weighted average cost.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Stock symbol")
	f.Int64Var(&c.quantity, "q", 0, "Number of shares")
	f.Float64Var(&c.price, "p", 0, "Price per share")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.quantity <= 0 || c.price < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return recordTransaction(folio.NewBuy(c.symbol, c.quantity, folio.M(c.price), time.Now()))
}

// --- Sell Command ---

type sellCmd struct {
	symbol   string
	quantity int64
	price    float64
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares to trim or close a position" }
func (*sellCmd) Usage() string {
	return `sell -s <symbol> -q <quantity> -p <price>

  Sells shares of a held position. Selling realizes the difference between
  the sale price and the position's average cost.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Stock symbol")
	f.Int64Var(&c.quantity, "q", 0, "Number of shares")
	f.Float64Var(&c.price, "p", 0, "Price per share")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.quantity <= 0 || c.price < 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return recordTransaction(folio.NewSell(c.symbol, c.quantity, folio.M(c.price), time.Now()))
}

// --- Reset Command ---

type resetCmd struct {
	force bool
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "clear the ledger" }
func (*resetCmd) Usage() string {
	return `reset -f

  Removes every position, total and realized figure from the ledger and
  persists the empty state. Requires -f.
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "f", false, "Confirm clearing the ledger")
}

func (c *resetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.force {
		fmt.Fprintln(os.Stderr, "reset discards the whole ledger, pass -f to confirm")
		return subcommands.ExitUsageError
	}
	cfg, err := appConfig()
	if err != nil {
		return fail(err)
	}
	if _, err := openAccounts(cfg).Reset(); err != nil {
		return fail(err)
	}
	fmt.Println("Ledger cleared.")
	return subcommands.ExitSuccess
}
