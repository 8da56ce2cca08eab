package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/pnlyzer/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// shell completion, a no-op outside of a completion request
	completer := &complete.Command{
		Sub: map[string]*complete.Command{
			"analyze": {
				Flags: map[string]complete.Predictor{
					"auto":         predict.Nothing,
					"C":            predict.Dirs("*"),
					"json":         predict.Files("*.json"),
					"json-only":    predict.Nothing,
					"monthly-csv":  predict.Files("*.csv"),
					"percentiles":  predict.Nothing,
					"sample-limit": predict.Nothing,
					"progress":     predict.Nothing,
				},
				Args: predict.Files("*.csv"),
			},
			"chunks": {
				Flags: map[string]complete.Predictor{"C": predict.Dirs("*")},
			},
			"topic": {
				Args: predict.Set{"readme", "format", "chunks", "quirks"},
			},
		},
	}
	completer.Complete("pnla")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
