package commands

import (
	"bytes"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mash-protocol/meshcop-go/pkg/dataset"
)

// LoadInfo reads a dataset in YAML form. Unknown fields are rejected.
func LoadInfo(r io.Reader) (*dataset.Info, error) {
	var info dataset.Info

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&info); err != nil {
		if err == io.EOF {
			return &info, nil
		}
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	return &info, nil
}

// ParseHexTLVs parses a hex string of dataset TLVs. Whitespace and an
// optional 0x prefix are ignored.
func ParseHexTLVs(s string) (*dataset.TLVs, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")

	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	if len(data) > dataset.MaxSize {
		return nil, fmt.Errorf("%w: size %d exceeds %d", dataset.ErrInvalidDataset, len(data), dataset.MaxSize)
	}

	var tlvs dataset.TLVs
	tlvs.Length = uint8(copy(tlvs.Data[:], data))
	return &tlvs, nil
}

func parseSingleRole(s string) (dataset.Role, error) {
	role, err := dataset.ParseRole(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (must be active or pending)", err, s)
	}
	return role, nil
}

// RunSave runs the save command.
func RunSave(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("save", flag.ContinueOnError)
	fs.SetOutput(stderr)
	common := addCommonFlags(fs)
	roleFlag := fs.String("role", "", "Dataset role: active, pending (required)")

	fs.Usage = func() {
		fmt.Fprintln(stderr, `
Usage: mash-dataset save -role <role> [options] <dataset.yaml>

Save a dataset given in YAML form. Use "-" to read from stdin.
An empty document deletes the dataset.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	role, err := parseSingleRole(*roleFlag)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(stderr, "Error: dataset file required")
		fs.Usage()
		return exitCommandError
	}

	data, err := readInput(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	info, err := LoadInfo(bytes.NewReader(data))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	node, ok := openFromFlags(fs, common, stderr)
	if !ok {
		return exitCommandError
	}
	defer node.Close()

	if err := node.Dataset(role).SaveInfo(info); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	reportSaved(stdout, node, role)
	return exitSuccess
}

// RunSaveHex runs the save-hex command.
func RunSaveHex(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("save-hex", flag.ContinueOnError)
	fs.SetOutput(stderr)
	common := addCommonFlags(fs)
	roleFlag := fs.String("role", "", "Dataset role: active, pending (required)")

	fs.Usage = func() {
		fmt.Fprintln(stderr, `
Usage: mash-dataset save-hex -role <role> [options] <hex-tlvs>

Save a dataset given as hex-encoded TLVs.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}
	role, err := parseSingleRole(*roleFlag)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(stderr, "Error: hex TLVs required")
		fs.Usage()
		return exitCommandError
	}

	tlvs, err := ParseHexTLVs(strings.Join(fs.Args(), ""))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	node, ok := openFromFlags(fs, common, stderr)
	if !ok {
		return exitCommandError
	}
	defer node.Close()

	if err := node.Dataset(role).SaveTLVs(tlvs); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	reportSaved(stdout, node, role)
	return exitSuccess
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func reportSaved(w io.Writer, node *Node, role dataset.Role) {
	ld := node.Dataset(role)
	if !ld.IsSaved() {
		fmt.Fprintf(w, "%s dataset deleted\n", role)
		return
	}
	if ts, ok := ld.Timestamp(); ok {
		fmt.Fprintf(w, "%s dataset saved (timestamp %s)\n", role, ts)
	} else {
		fmt.Fprintf(w, "%s dataset saved (no timestamp)\n", role)
	}
}
