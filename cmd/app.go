// Package cmd implements the CLI application to analyze PNL chunk files.
package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&analyzeCmd{}, "analysis")
	c.Register(&chunksCmd{}, "analysis")

	c.Register(&topicCmd{}, "documentation")
}

// printMarkdown renders a markdown document to the terminal. When the
// terminal renderer cannot be set up (e.g. output is a pipe), the raw
// markdown is printed instead.
func printMarkdown(doc string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(doc)
		return
	}
	out, err := r.Render(doc)
	if err != nil {
		fmt.Print(doc)
		return
	}
	fmt.Print(out)
}
