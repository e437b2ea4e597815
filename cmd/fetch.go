package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/google/subcommands"

	"github.com/ferd/folio"
)

type fetchCmd struct {
	days int
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch market prices from the provider" }
func (*fetchCmd) Usage() string {
	return `fetch [-days <n>] [symbol...]

  Fetches the latest price for the given symbols, or for every held symbol
  when none is given. With -days, also fetches the daily closing prices over
  the last n days.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 0, "Also fetch daily bars over the last n days")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := appConfig()
	if err != nil {
		return fail(err)
	}
	source, err := openPriceSource(cfg)
	if err != nil {
		return fail(err)
	}

	symbols := make([]string, 0, f.NArg())
	for _, arg := range f.Args() {
		symbols = append(symbols, folio.NormalizeSymbol(arg))
	}
	if len(symbols) == 0 {
		symbols = openAccounts(cfg).Symbols()
	}
	if len(symbols) == 0 {
		fmt.Println("Nothing to fetch: no symbol given and no open position.")
		return subcommands.ExitSuccess
	}

	prices, err := source.LatestPrices(ctx, symbols)
	if err != nil {
		return fail(err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# Latest Prices\n\n")
	fmt.Fprintf(&b, "| Symbol | Price |\n")
	fmt.Fprintf(&b, "|:---|---:|\n")
	for _, symbol := range symbols {
		price, ok := prices[symbol]
		if !ok {
			fmt.Fprintf(&b, "| %s | unquoted |\n", symbol)
			continue
		}
		fmt.Fprintf(&b, "| %s | %s |\n", symbol, price)
	}
	printMarkdown(b.String())

	if c.days > 0 {
		client, ok := source.(*folio.AlpacaClient)
		if !ok {
			return fail(fmt.Errorf("daily bars are not supported by this price source"))
		}
		to := time.Now()
		from := to.AddDate(0, 0, -c.days)
		bars, err := client.DailyBars(ctx, symbols, from, to)
		if err != nil {
			return fail(err)
		}
		var d strings.Builder
		fmt.Fprintf(&d, "# Daily Closes\n\n")
		fmt.Fprintf(&d, "| Symbol | Day | Close |\n")
		fmt.Fprintf(&d, "|:---|:---|---:|\n")
		for _, symbol := range symbols {
			for _, bar := range bars[symbol] {
				fmt.Fprintf(&d, "| %s | %s | %s |\n", symbol, bar.Day, folio.M(bar.Close))
			}
		}
		printMarkdown(d.String())
	}
	return subcommands.ExitSuccess
}
