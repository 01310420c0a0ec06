package commands

import (
	"flag"
	"fmt"
	"io"
)

// RunClear runs the clear command.
func RunClear(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("clear", flag.ContinueOnError)
	fs.SetOutput(stderr)
	common := addCommonFlags(fs)
	role := fs.String("role", "", "Dataset role: active, pending, all (required)")

	fs.Usage = func() {
		fmt.Fprintln(stderr, `
Usage: mash-dataset clear -role <role> [options]

Delete the persisted dataset and its secrets.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	if *role == "" {
		fmt.Fprintln(stderr, "Error: -role required")
		fs.Usage()
		return exitCommandError
	}
	roles, err := ParseRoles(*role)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	node, ok := openFromFlags(fs, common, stderr)
	if !ok {
		return exitCommandError
	}
	defer node.Close()

	for _, r := range roles {
		node.Dataset(r).Clear()
		fmt.Fprintf(stdout, "%s dataset cleared\n", r)
	}
	return exitSuccess
}
