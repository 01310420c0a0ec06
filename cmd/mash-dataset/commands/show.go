package commands

import (
	"flag"
	"fmt"
	"io"
)

// RunShow runs the show command.
func RunShow(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(stderr)
	common := addCommonFlags(fs)
	role := fs.String("role", "all", "Dataset role: active, pending, all")
	format := fs.String("format", FormatYAML, "Output format: yaml, json, hex")
	showSecrets := fs.Bool("show-secrets", false, "Include network key and PSKc")

	fs.Usage = func() {
		fmt.Fprintln(stderr, `
Usage: mash-dataset show [options]

Print the persisted datasets. Secrets are omitted unless -show-secrets is set.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
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

	for i, r := range roles {
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		if err := PrintDataset(stdout, node, r, *format, *showSecrets); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
	}
	return exitSuccess
}

// openFromFlags resolves the configuration and opens the node, reporting
// errors to stderr.
func openFromFlags(fs *flag.FlagSet, common *commonFlags, stderr io.Writer) (*Node, bool) {
	cfg, err := common.resolve(fs)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return nil, false
	}

	node, err := OpenNode(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return nil, false
	}
	return node, true
}

// OpenNodeFromArgs parses the common storage flags from args and opens the
// node. Used by commands that have no flags of their own.
func OpenNodeFromArgs(name string, args []string, stderr io.Writer) (*Node, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	common := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := common.resolve(fs)
	if err != nil {
		return nil, err
	}
	return OpenNode(cfg, stderr)
}
