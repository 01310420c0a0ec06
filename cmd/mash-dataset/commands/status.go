package commands

import (
	"flag"
	"fmt"
	"io"
)

// RunStatus runs the status command.
func RunStatus(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(stderr)
	common := addCommonFlags(fs)

	fs.Usage = func() {
		fmt.Fprintln(stderr, `
Usage: mash-dataset status [options]

Show whether each dataset is saved, its timestamp, and the remaining
delay of the Pending dataset.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}

	node, ok := openFromFlags(fs, common, stderr)
	if !ok {
		return exitCommandError
	}
	defer node.Close()

	PrintStatus(stdout, node)
	return exitSuccess
}
