// Package interactive provides the interactive shell for mash-dataset.
package interactive

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/mash-protocol/meshcop-go/cmd/mash-dataset/commands"
	"github.com/mash-protocol/meshcop-go/pkg/dataset"
)

// Shell runs dataset commands against an open node.
type Shell struct {
	node *commands.Node
	rl   *readline.Instance
}

// New creates a shell for node.
func New(node *commands.Node) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "dataset> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("show", readline.PcItem("active"), readline.PcItem("pending")),
			readline.PcItem("secrets", readline.PcItem("active"), readline.PcItem("pending")),
			readline.PcItem("hex", readline.PcItem("active"), readline.PcItem("pending")),
			readline.PcItem("save", readline.PcItem("active"), readline.PcItem("pending")),
			readline.PcItem("save-hex", readline.PcItem("active"), readline.PcItem("pending")),
			readline.PcItem("clear", readline.PcItem("active"), readline.PcItem("pending")),
			readline.PcItem("compare", readline.PcItem("active"), readline.PcItem("pending")),
			readline.PcItem("status"),
			readline.PcItem("help"),
			readline.PcItem("quit"),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Shell{node: node, rl: rl}, nil
}

// Stdout returns a writer that coordinates with the readline prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run starts the interactive command loop. It returns on quit or EOF.
func (s *Shell) Run() {
	defer s.rl.Close()

	w := s.rl.Stdout()
	printHelp(w)

	for {
		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(w, "Exiting...")
			return
		}

		if quit := Exec(s.node, line, w); quit {
			return
		}
	}
}

// Exec runs one command line against node and reports whether the shell
// should exit.
func Exec(node *commands.Node, line string, w io.Writer) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		printHelp(w)

	case "show", "s":
		cmdShow(node, w, args, commands.FormatYAML, false)

	case "secrets":
		cmdShow(node, w, args, commands.FormatYAML, true)

	case "hex":
		cmdShow(node, w, args, commands.FormatHex, true)

	case "save":
		cmdSave(node, w, args)

	case "save-hex":
		cmdSaveHex(node, w, args)

	case "clear":
		cmdClear(node, w, args)

	case "compare", "cmp":
		cmdCompare(node, w, args)

	case "status", "st":
		commands.PrintStatus(w, node)

	case "quit", "exit", "q":
		fmt.Fprintln(w, "Exiting...")
		return true

	default:
		fmt.Fprintf(w, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, `
Dataset Commands:
  Inspection:
    show [role]             - Show datasets (secrets omitted)
    secrets [role]          - Show datasets including network key and PSKc
    hex [role]              - Show datasets as hex TLVs
    status                  - Show saved state, timestamps and pending delay
    compare <role> <ts>     - Compare a timestamp (e.g. 12.0A) with the stored one

  Changes:
    save <role> <file.yaml> - Save a dataset from a YAML file
    save-hex <role> <hex>   - Save a dataset from hex TLVs
    clear <role|all>        - Delete a dataset and its secrets

  General:
    help                    - Show this help
    quit                    - Exit`)
}

func roleArg(w io.Writer, args []string, allowAll bool) ([]dataset.Role, bool) {
	s := "all"
	if len(args) > 0 {
		s = strings.ToLower(args[0])
	}
	if s == "all" && !allowAll {
		fmt.Fprintln(w, "Error: role required (active or pending)")
		return nil, false
	}
	roles, err := commands.ParseRoles(s)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return nil, false
	}
	return roles, true
}

func cmdShow(node *commands.Node, w io.Writer, args []string, format string, secrets bool) {
	roles, ok := roleArg(w, args, true)
	if !ok {
		return
	}
	for _, role := range roles {
		if err := commands.PrintDataset(w, node, role, format, secrets); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
		}
	}
}

func cmdSave(node *commands.Node, w io.Writer, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(w, "Usage: save <role> <file.yaml>")
		return
	}
	roles, ok := roleArg(w, args, false)
	if !ok {
		return
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	info, err := commands.LoadInfo(bytes.NewReader(data))
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	if err := node.Dataset(roles[0]).SaveInfo(info); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "%s dataset saved\n", roles[0])
}

func cmdSaveHex(node *commands.Node, w io.Writer, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(w, "Usage: save-hex <role> <hex>")
		return
	}
	roles, ok := roleArg(w, args, false)
	if !ok {
		return
	}

	tlvs, err := commands.ParseHexTLVs(strings.Join(args[1:], ""))
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	if err := node.Dataset(roles[0]).SaveTLVs(tlvs); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "%s dataset saved\n", roles[0])
}

func cmdClear(node *commands.Node, w io.Writer, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(w, "Usage: clear <role|all>")
		return
	}
	roles, ok := roleArg(w, args, true)
	if !ok {
		return
	}
	for _, role := range roles {
		node.Dataset(role).Clear()
		fmt.Fprintf(w, "%s dataset cleared\n", role)
	}
}

func cmdCompare(node *commands.Node, w io.Writer, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(w, "Usage: compare <role> <seconds[.ticks][A]>")
		return
	}
	roles, ok := roleArg(w, args, false)
	if !ok {
		return
	}

	ts, err := dataset.ParseTimestamp(args[1])
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	ld := node.Dataset(roles[0])
	local, present := ld.Timestamp()
	localStr := "none"
	if present {
		localStr = local.String()
	}

	switch ld.CompareTimestamp(&ts) {
	case -1:
		fmt.Fprintf(w, "stored %s is older than %s\n", localStr, ts)
	case 1:
		fmt.Fprintf(w, "stored %s is newer than %s\n", localStr, ts)
	default:
		fmt.Fprintf(w, "stored %s equals %s\n", localStr, ts)
	}
}
