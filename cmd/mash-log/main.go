// Command mash-log is a tool for viewing and analyzing dataset store event logs.
//
// Log files are written by mash-dataset when run with the -event-log flag,
// or by any host that attaches a log.FileLogger to its local dataset stores.
//
// Usage:
//
//	mash-log <command> [flags] <file.dlog>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSON or CSV format
//	filter   Filter log file and write to new file
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View all events
//	mash-log view node.dlog
//
//	# View only Pending dataset events
//	mash-log view --role pending node.dlog
//
//	# View only failed operations
//	mash-log view --category error node.dlog
//
//	# Export to JSONL
//	mash-log export --format jsonl node.dlog
//
//	# Keep only saves of one store instance
//	mash-log filter --store-id abc12345-... --op save -o saves.dlog node.dlog
//
//	# Show statistics
//	mash-log stats node.dlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mash-protocol/meshcop-go/cmd/mash-log/commands"
)

const usage = `mash-log - Dataset Store Event Log Analyzer

Usage:
  mash-log <command> [flags] <file.dlog>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSON or CSV format
  filter   Filter log file and write to new file
  stats    Show statistics about the log file

Use "mash-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `mash-log view - View log file in human-readable format

Usage:
  mash-log view [flags] <file.dlog>

Flags:
`)
		fs.PrintDefaults()
	}

	role := fs.String("role", "", "Filter by dataset role (active, pending)")
	category := fs.String("category", "", "Filter by category (operation, state, error)")
	op := fs.String("op", "", "Filter by operation (save, read, clear, restore)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	var filter commands.ViewFilter

	if *role != "" {
		r, err := commands.ParseRoleFlag(*role)
		if err != nil {
			fatalf("%v", err)
		}
		filter.Role = &r
	}

	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fatalf("%v", err)
		}
		filter.Category = &c
	}

	if *op != "" {
		o, err := commands.ParseOpFlag(*op)
		if err != nil {
			fatalf("%v", err)
		}
		filter.Op = &o
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fatalf("%v", err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `mash-log export - Export log file to JSON or CSV format

Usage:
  mash-log export [flags] <file.dlog>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fatalf("%v", err)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `mash-log filter - Filter log file and write to new file

Usage:
  mash-log filter [flags] <file.dlog>

Flags:
`)
		fs.PrintDefaults()
	}

	output := fs.String("o", "", "Output file (required)")
	storeID := fs.String("store-id", "", "Filter by store instance ID")
	role := fs.String("role", "", "Filter by dataset role (active, pending)")
	category := fs.String("category", "", "Filter by category (operation, state, error)")
	op := fs.String("op", "", "Filter by operation (save, read, clear, restore)")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	opts := commands.FilterOptions{
		Output:    *output,
		StoreID:   *storeID,
		Role:      *role,
		Category:  *category,
		Op:        *op,
		TimeStart: *timeStart,
		TimeEnd:   *timeEnd,
	}

	n, err := commands.RunFilter(path, opts)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Filtered %d events to %s\n", n, opts.Output)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `mash-log stats - Show statistics about the log file

Usage:
  mash-log stats <file.dlog>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fatalf("%v", err)
	}
}
