package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/ferd/folio/renderer"
)

type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "list open positions and their cost basis" }
func (*holdingsCmd) Usage() string {
	return `holdings

  Lists the open positions with quantity, average cost and cost basis, plus
  the ledger totals. Works offline, no price is fetched.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := appConfig()
	if err != nil {
		return fail(err)
	}
	view := renderer.NewHoldings(openAccounts(cfg).Snapshot())
	printMarkdown(renderer.HoldingsMarkdown(view))
	return subcommands.ExitSuccess
}
