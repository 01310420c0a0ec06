package commands

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/meshcop-go/pkg/dataset"
	"github.com/mash-protocol/meshcop-go/pkg/log"
)

const testDatasetYAML = `
active_timestamp:
  seconds: 7
network_key: 00112233445566778899aabbccddeeff
network_name: Test-Net
extended_pan_id: dead00beef00cafe
mesh_local_prefix: fdde:ad00:beef:0::/64
pan_id: 64206
channel: 15
pskc: 3aa55f91ca47d1e4e71a08cb35e91591
`

const testNetworkKeyHex = "00112233445566778899aabbccddeeff"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func run(t *testing.T, fn func([]string, io.Writer, io.Writer) int, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := fn(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func pendingHex(t *testing.T, delayMs uint32) string {
	t.Helper()
	var d dataset.Dataset
	delay := delayMs
	name := "Pending-Net"
	require.NoError(t, d.SetFromInfo(&dataset.Info{
		ActiveTimestamp:  &dataset.Timestamp{Seconds: 8},
		PendingTimestamp: &dataset.Timestamp{Seconds: 9, Authoritative: true},
		DelayTimer:       &delay,
		NetworkName:      &name,
	}))
	return d.String()
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"memory without data dir", func(c *Config) { c.Backend = BackendMemory; c.DataDir = "" }, ""},
		{"bad backend", func(c *Config) { c.Backend = "sqlite" }, "invalid backend"},
		{"bad key store", func(c *Config) { c.KeyStore = "tpm" }, "invalid key store"},
		{"file key store needs secret", func(c *Config) { c.KeyStore = KeyStoreFile }, "secret_file"},
		{"missing data dir", func(c *Config) { c.DataDir = "" }, "data_dir"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigFileAndFlagPrecedence(t *testing.T) {
	path := writeFile(t, "node.yaml", `
data_dir: /var/lib/node
backend: leveldb
log_level: info
event_log: /var/log/node.dlog
`)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	common := addCommonFlags(fs)
	require.NoError(t, fs.Parse([]string{"-config", path, "-log-level", "debug"}))

	cfg, err := common.resolve(fs)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/node", cfg.DataDir)
	assert.Equal(t, BackendLevelDB, cfg.Backend)
	assert.Equal(t, KeyStoreNone, cfg.KeyStore, "default kept")
	assert.Equal(t, "debug", cfg.LogLevel, "flag overrides file")
	assert.Equal(t, "/var/log/node.dlog", cfg.EventLog)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "bad.yaml", "backend: [file"))
	assert.Error(t, err)
}

func TestSaveAndShow(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, "net.yaml", testDatasetYAML)

	code, out, errOut := run(t, RunSave, "-data-dir", dir, "-role", "active", file)
	require.Equal(t, exitSuccess, code, errOut)
	assert.Contains(t, out, "Active dataset saved (timestamp 7.0)")

	code, out, errOut = run(t, RunShow, "-data-dir", dir, "-role", "active")
	require.Equal(t, exitSuccess, code, errOut)
	assert.Contains(t, out, "network_name: Test-Net")
	assert.Contains(t, out, "omitted")
	assert.NotContains(t, out, testNetworkKeyHex)

	code, out, _ = run(t, RunShow, "-data-dir", dir, "-role", "active", "-show-secrets", "-format", "json")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, testNetworkKeyHex)
	assert.Contains(t, out, `"network_name": "Test-Net"`)

	code, out, _ = run(t, RunShow, "-data-dir", dir, "-role", "pending")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "Pending dataset: none")
}

func TestSaveWithFileKeyStore(t *testing.T) {
	dir := t.TempDir()
	secret := writeFile(t, "secret", "correct horse battery staple\n")
	file := writeFile(t, "net.yaml", testDatasetYAML)
	storage := []string{"-data-dir", dir, "-keystore", "file", "-secret-file", secret}

	code, _, errOut := run(t, RunSave, append(storage, "-role", "active", file)...)
	require.Equal(t, exitSuccess, code, errOut)

	blob, err := os.ReadFile(filepath.Join(dir, "settings", "active-dataset.tlv"))
	require.NoError(t, err)
	assert.NotContains(t, string(blob), "\x00\x11\x22\x33\x44\x55\x66\x77")

	code, out, errOut := run(t, RunShow, append(storage, "-role", "active", "-show-secrets")...)
	require.Equal(t, exitSuccess, code, errOut)
	assert.Contains(t, out, testNetworkKeyHex)

	// Without the key store the zero-filled placeholders are all that is left.
	code, out, _ = run(t, RunShow, "-data-dir", dir, "-role", "active", "-show-secrets")
	require.Equal(t, exitSuccess, code)
	assert.NotContains(t, out, testNetworkKeyHex)
	assert.Contains(t, out, "00000000000000000000000000000000")

	code, out, _ = run(t, RunStatus, storage...)
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "Secrets:   key store")
}

func TestSaveHexRejectsEmptyKeyWithFileKeyStore(t *testing.T) {
	dir := t.TempDir()
	secret := writeFile(t, "secret", "correct horse battery staple\n")
	storage := []string{"-data-dir", dir, "-keystore", "file", "-secret-file", secret}

	code, _, errOut := run(t, RunSaveHex, append(storage, "-role", "active", "000300000f0500")...)
	assert.Equal(t, exitCommandError, code)
	assert.Contains(t, errOut, "invalid dataset")

	code, out, _ := run(t, RunStatus, storage...)
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "Active dataset:\n  Saved:     false")
}

func TestSaveHexLevelDB(t *testing.T) {
	dir := t.TempDir()
	storage := []string{"-data-dir", dir, "-backend", "leveldb"}

	code, out, errOut := run(t, RunSaveHex, append(storage, "-role", "pending", pendingHex(t, 60000))...)
	require.Equal(t, exitSuccess, code, errOut)
	assert.Contains(t, out, "Pending dataset saved (timestamp 9.0A)")

	code, out, errOut = run(t, RunStatus, storage...)
	require.Equal(t, exitSuccess, code, errOut)
	assert.Contains(t, out, "Pending dataset:\n  Saved:     true\n  Timestamp: 9.0A")
	assert.Contains(t, out, "Delay:")

	code, out, _ = run(t, RunShow, append(storage, "-role", "pending", "-format", "hex")...)
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "# Pending dataset")
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, "net.yaml", testDatasetYAML)

	code, _, _ := run(t, RunSave, "-data-dir", dir, "-role", "active", file)
	require.Equal(t, exitSuccess, code)
	code, _, _ = run(t, RunSaveHex, "-data-dir", dir, "-role", "pending", pendingHex(t, 1000))
	require.Equal(t, exitSuccess, code)

	code, out, _ := run(t, RunClear, "-data-dir", dir, "-role", "all")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "Active dataset cleared")
	assert.Contains(t, out, "Pending dataset cleared")

	code, out, _ = run(t, RunShow, "-data-dir", dir)
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "Active dataset: none")
	assert.Contains(t, out, "Pending dataset: none")

	// Clearing again is fine.
	code, _, _ = run(t, RunClear, "-data-dir", dir, "-role", "active")
	assert.Equal(t, exitSuccess, code)
}

func TestEmptyYAMLDeletes(t *testing.T) {
	dir := t.TempDir()
	code, _, _ := run(t, RunSave, "-data-dir", dir, "-role", "active", writeFile(t, "net.yaml", testDatasetYAML))
	require.Equal(t, exitSuccess, code)

	code, out, _ := run(t, RunSave, "-data-dir", dir, "-role", "active", writeFile(t, "empty.yaml", ""))
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "Active dataset deleted")
}

func TestEventLog(t *testing.T) {
	dir := t.TempDir()
	eventLog := filepath.Join(t.TempDir(), "node.dlog")
	file := writeFile(t, "net.yaml", testDatasetYAML)

	code, _, errOut := run(t, RunSave, "-data-dir", dir, "-event-log", eventLog, "-role", "active", file)
	require.Equal(t, exitSuccess, code, errOut)

	reader, err := log.NewReader(eventLog)
	require.NoError(t, err)
	defer reader.Close()
	events, err := reader.ReadAll()
	require.NoError(t, err)

	var saves int
	for _, e := range events {
		if e.Operation != nil && e.Operation.Op == log.OpSave {
			saves++
			assert.Equal(t, dataset.RoleActive, e.Role)
		}
	}
	assert.Equal(t, 1, saves)
}

func TestDebugLogging(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, "net.yaml", testDatasetYAML)

	code, _, errOut := run(t, RunSave, "-data-dir", dir, "-log-level", "debug", "-role", "active", file)
	require.Equal(t, exitSuccess, code, errOut)
	assert.Contains(t, errOut, "Active dataset set")
	assert.Contains(t, errOut, "op=SAVE")
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, "net.yaml", testDatasetYAML)

	tests := []struct {
		name    string
		fn      func([]string, io.Writer, io.Writer) int
		args    []string
		wantErr string
	}{
		{"save without role", RunSave, []string{"-data-dir", dir, file}, "role"},
		{"save without file", RunSave, []string{"-data-dir", dir, "-role", "active"}, "dataset file required"},
		{"save unknown field", RunSave, []string{"-data-dir", dir, "-role", "active", writeFile(t, "x.yaml", "pan: 1\n")}, "field pan not found"},
		{"save-hex bad hex", RunSaveHex, []string{"-data-dir", dir, "-role", "active", "zz"}, "invalid hex"},
		{"save-hex truncated", RunSaveHex, []string{"-data-dir", dir, "-role", "active", "0310"}, "invalid dataset"},
		{"clear without role", RunClear, []string{"-data-dir", dir}, "-role required"},
		{"show bad role", RunShow, []string{"-data-dir", dir, "-role", "leader"}, "invalid dataset role"},
		{"bad backend", RunStatus, []string{"-backend", "sqlite"}, "invalid backend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := run(t, tt.fn, tt.args...)
			assert.Equal(t, exitCommandError, code)
			assert.Contains(t, errOut, tt.wantErr)
		})
	}
}

func TestParseHexTLVs(t *testing.T) {
	tlvs, err := ParseHexTLVs("0x0102 face")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0xfa, 0xce}, tlvs.Bytes())

	_, err = ParseHexTLVs(strings.Repeat("00", dataset.MaxSize+1))
	assert.True(t, errors.Is(err, dataset.ErrInvalidDataset))
}

func TestParseRoles(t *testing.T) {
	roles, err := ParseRoles("all")
	require.NoError(t, err)
	assert.Equal(t, []dataset.Role{dataset.RoleActive, dataset.RolePending}, roles)

	roles, err = ParseRoles("pending")
	require.NoError(t, err)
	assert.Equal(t, []dataset.Role{dataset.RolePending}, roles)

	_, err = ParseRoles("Active")
	assert.ErrorIs(t, err, dataset.ErrInvalidRole)
}
