// Command mash-dataset inspects and edits the operational datasets a node
// keeps in local storage.
//
// Usage:
//
//	mash-dataset <command> [flags]
//
// Commands:
//
//	show         Print the Active and/or Pending dataset
//	save         Save a dataset from a YAML file
//	save-hex     Save a dataset from hex-encoded TLVs
//	clear        Delete a dataset and its secrets
//	status       Show saved state, timestamps and pending delay
//	interactive  Start an interactive shell
//
// Storage flags (all commands):
//
//	-config string       Configuration file path (YAML)
//	-data-dir string     Data directory (default "./mash-data")
//	-backend string      Settings backend: file, leveldb, memory (default "file")
//	-keystore string     Key store: none, file (default "none")
//	-secret-file string  Master secret file for the file key store
//	-event-log string    Append store events to this .dlog file
//	-log-level string    Log level: debug, info, warn, error (default "warn")
//
// Examples:
//
//	# Save an Active dataset, keeping secrets in a sealed key store
//	mash-dataset save -role active -keystore file -secret-file ./secret network.yaml
//
//	# Show both datasets as hex TLVs
//	mash-dataset show -format hex
//
//	# Save a Pending dataset and record events for mash-log
//	mash-dataset save-hex -role pending -event-log node.dlog 0e080000...
//
//	# Explore an in-memory store
//	mash-dataset interactive -backend memory
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mash-protocol/meshcop-go/cmd/mash-dataset/commands"
	"github.com/mash-protocol/meshcop-go/cmd/mash-dataset/interactive"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitCommandError)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var exitCode int
	switch cmd {
	case "show":
		exitCode = commands.RunShow(args, os.Stdout, os.Stderr)
	case "save":
		exitCode = commands.RunSave(args, os.Stdout, os.Stderr)
	case "save-hex":
		exitCode = commands.RunSaveHex(args, os.Stdout, os.Stderr)
	case "clear":
		exitCode = commands.RunClear(args, os.Stdout, os.Stderr)
	case "status":
		exitCode = commands.RunStatus(args, os.Stdout, os.Stderr)
	case "interactive", "shell":
		exitCode = runInteractive(args)
	case "help", "-h", "--help":
		printUsage()
		exitCode = exitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		exitCode = exitCommandError
	}

	os.Exit(exitCode)
}

func runInteractive(args []string) int {
	node, err := commands.OpenNodeFromArgs("interactive", args, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitSuccess
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer node.Close()

	shell, err := interactive.New(node)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCommandError
	}
	shell.Run()
	return exitSuccess
}

func printUsage() {
	fmt.Println(`mash-dataset - Local operational dataset store tool

Usage:
  mash-dataset <command> [options]

Commands:
  show         Print the Active and/or Pending dataset
  save         Save a dataset from a YAML file
  save-hex     Save a dataset from hex-encoded TLVs
  clear        Delete a dataset and its secrets
  status       Show saved state, timestamps and pending delay
  interactive  Start an interactive shell

Examples:
  mash-dataset save -role active network.yaml
  mash-dataset show -role pending -format hex
  mash-dataset clear -role all
  mash-dataset interactive -backend memory

For command-specific help, run:
  mash-dataset <command> -help`)
}
