package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pnlyzer"
	"github.com/google/subcommands"
)

// chunksCmd holds the flags for the 'chunks' subcommand.
type chunksCmd struct {
	dir string
}

func (*chunksCmd) Name() string     { return "chunks" }
func (*chunksCmd) Synopsis() string { return "list discovered chunk files in processing order" }
func (*chunksCmd) Usage() string {
	return `pnla chunks [-C <dir>]

  Lists the chunk files that 'analyze -auto' would process, in order.
  Useful to check the naming convention before a long run.
`
}

func (c *chunksCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "C", ".", "Directory to scan.")
}

func (c *chunksCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	chunks, err := pnlyzer.DiscoverChunks(c.dir)
	if errors.Is(err, pnlyzer.ErrNoChunksFound) {
		fmt.Fprintf(os.Stderr, "No chunk files found in %q.\n", c.dir)
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, chunk := range chunks {
		fmt.Printf("%3d. %s\n", chunk.Seq, chunk.Path)
	}
	return subcommands.ExitSuccess
}
