package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mash-protocol/meshcop-go/pkg/dataset"
	"github.com/mash-protocol/meshcop-go/pkg/settings"
)

// Output formats for datasets.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatHex  = "hex"
)

// ParseRoles parses a role argument. "all" selects both roles.
func ParseRoles(s string) ([]dataset.Role, error) {
	if s == "all" || s == "" {
		return []dataset.Role{dataset.RoleActive, dataset.RolePending}, nil
	}
	role, err := dataset.ParseRole(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (must be active, pending, or all)", err, s)
	}
	return []dataset.Role{role}, nil
}

// redact removes the secret TLVs from d.
func redact(d *dataset.Dataset) bool {
	found := d.Contains(dataset.TypeNetworkKey) || d.Contains(dataset.TypePskc)
	d.Remove(dataset.TypeNetworkKey)
	d.Remove(dataset.TypePskc)
	return found
}

// PrintDataset reads the dataset for role and writes it to w.
// Secrets are omitted unless showSecrets is set.
func PrintDataset(w io.Writer, node *Node, role dataset.Role, format string, showSecrets bool) error {
	var d dataset.Dataset
	err := node.Dataset(role).Read(&d)
	if errors.Is(err, settings.ErrNotFound) {
		fmt.Fprintf(w, "# %s dataset: none\n", role)
		return nil
	}
	if err != nil {
		return err
	}

	redacted := false
	if !showSecrets {
		redacted = redact(&d)
	}

	fmt.Fprintf(w, "# %s dataset (%d bytes)\n", role, d.Size())
	if redacted {
		fmt.Fprintln(w, "# network_key and pskc omitted (use -show-secrets)")
	}

	switch format {
	case FormatHex:
		fmt.Fprintln(w, d.String())
	case FormatJSON:
		var info dataset.Info
		d.ConvertToInfo(&info)
		data, err := json.MarshalIndent(&info, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
	case FormatYAML:
		var info dataset.Info
		d.ConvertToInfo(&info)
		data, err := yaml.Marshal(&info)
		if err != nil {
			return err
		}
		fmt.Fprint(w, string(data))
	default:
		return fmt.Errorf("unknown format: %s (supported: yaml, json, hex)", format)
	}
	return nil
}

// PrintStatus writes the cached state of both datasets to w.
func PrintStatus(w io.Writer, node *Node) {
	cfg := node.Config()
	fmt.Fprintf(w, "Backend:   %s", cfg.Backend)
	if cfg.Backend != BackendMemory {
		fmt.Fprintf(w, " (%s)", cfg.DataDir)
	}
	fmt.Fprintln(w)
	if node.SecretsExternalized() {
		fmt.Fprintln(w, "Secrets:   key store")
	} else {
		fmt.Fprintln(w, "Secrets:   in dataset")
	}

	for _, role := range []dataset.Role{dataset.RoleActive, dataset.RolePending} {
		ld := node.Dataset(role)
		fmt.Fprintf(w, "\n%s dataset:\n", role)
		fmt.Fprintf(w, "  Saved:     %t\n", ld.IsSaved())
		if ts, ok := ld.Timestamp(); ok {
			fmt.Fprintf(w, "  Timestamp: %s\n", ts)
		} else {
			fmt.Fprintln(w, "  Timestamp: none")
		}

		if role != dataset.RolePending || !ld.IsSaved() {
			continue
		}
		var d dataset.Dataset
		if err := ld.Read(&d); err != nil {
			fmt.Fprintf(w, "  Error:     %v\n", err)
			continue
		}
		if delay, ok := d.DelayTimer(); ok {
			fmt.Fprintf(w, "  Delay:     %dms\n", delay)
		}
	}
}
