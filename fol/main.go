package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/ferd/folio/cmd"
)

// completion describes the CLI for shell completion. Complete() returns
// immediately unless the binary is invoked by the shell's completion hook.
func completion() {
	configFlags := map[string]complete.Predictor{
		"config":      predict.Files("*.yaml"),
		"ledger-file": predict.Files("*.json"),
	}
	tradeFlags := map[string]complete.Predictor{
		"s": predict.Something,
		"q": predict.Something,
		"p": predict.Something,
	}
	fol := &complete.Command{
		Flags: configFlags,
		Sub: map[string]*complete.Command{
			"buy":      {Flags: tradeFlags},
			"sell":     {Flags: tradeFlags},
			"reset":    {Flags: map[string]complete.Predictor{"f": predict.Nothing}},
			"holdings": {},
			"pnl":      {},
			"fetch":    {Flags: map[string]complete.Predictor{"days": predict.Something}},
			"serve":    {Flags: map[string]complete.Predictor{"listen": predict.Something}},
			"login": {Flags: map[string]complete.Predictor{
				"key":    predict.Something,
				"secret": predict.Something,
			}},
			"topic":  {Args: predict.Set{"ledger", "pnl", "server", "credentials", "readme"}},
			"assist": {},
		},
	}
	fol.Complete("fol")
}

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
