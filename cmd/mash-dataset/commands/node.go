package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mash-protocol/meshcop-go/pkg/dataset"
	"github.com/mash-protocol/meshcop-go/pkg/keystore"
	"github.com/mash-protocol/meshcop-go/pkg/log"
	"github.com/mash-protocol/meshcop-go/pkg/persistence"
	"github.com/mash-protocol/meshcop-go/pkg/settings"
)

// Node is the local storage of one node: the settings store, the optional
// key store, and a LocalDataset per role.
type Node struct {
	cfg      Config
	logger   *slog.Logger
	settings settings.Store
	keys     keystore.Store
	eventLog *log.FileLogger
	closers  []func() error

	datasets [2]*persistence.LocalDataset
}

// OpenNode opens the backends described by cfg and restores both datasets.
// Operational logs go to logOut.
func OpenNode(cfg Config, logOut io.Writer) (*Node, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, _ := parseLevel(cfg.LogLevel)

	n := &Node{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level})),
	}

	if err := n.openSettings(); err != nil {
		n.Close()
		return nil, err
	}
	if err := n.openKeyStore(); err != nil {
		n.Close()
		return nil, err
	}

	events, err := n.openEventLog(level)
	if err != nil {
		n.Close()
		return nil, err
	}

	for _, role := range []dataset.Role{dataset.RoleActive, dataset.RolePending} {
		pcfg := persistence.Config{
			Logger:      n.logger,
			EventLogger: events,
		}
		if n.keys != nil {
			pcfg.KeyPolicy = persistence.NewSecureKeyPolicy(n.keys, persistence.DefaultKeyRefs(role))
		}
		ld := persistence.NewLocalDataset(role, n.settings, pcfg)

		var d dataset.Dataset
		if err := ld.Restore(&d); err != nil && !errors.Is(err, settings.ErrNotFound) {
			n.Close()
			return nil, fmt.Errorf("restore %s dataset: %w", role, err)
		}
		n.datasets[role] = ld
	}

	return n, nil
}

func (n *Node) openSettings() error {
	switch n.cfg.Backend {
	case BackendMemory:
		n.settings = settings.NewMemoryStore()
	case BackendFile:
		n.settings = settings.NewFileStore(filepath.Join(n.cfg.DataDir, "settings"))
	case BackendLevelDB:
		db, err := settings.OpenLevelDBStore(filepath.Join(n.cfg.DataDir, "settings.ldb"))
		if err != nil {
			return err
		}
		n.settings = db
		n.closers = append(n.closers, db.Close)
	}
	n.logger.Debug("settings store opened", "backend", n.cfg.Backend, "data_dir", n.cfg.DataDir)
	return nil
}

func (n *Node) openKeyStore() error {
	if n.cfg.KeyStore != KeyStoreFile {
		return nil
	}

	secret, err := os.ReadFile(n.cfg.SecretFile)
	if err != nil {
		return fmt.Errorf("read secret file: %w", err)
	}
	secret = bytes.TrimSpace(secret)

	keys, err := keystore.NewFileStore(filepath.Join(n.cfg.DataDir, "keys"), secret)
	if err != nil {
		return err
	}
	n.keys = keys
	n.logger.Debug("key store opened", "dir", filepath.Join(n.cfg.DataDir, "keys"))
	return nil
}

// openEventLog builds the store event sink: the .dlog file if configured,
// plus the operational log at debug level.
func (n *Node) openEventLog(level slog.Level) (log.Logger, error) {
	var sinks []log.Logger

	if n.cfg.EventLog != "" {
		fl, err := log.NewFileLogger(n.cfg.EventLog)
		if err != nil {
			return nil, err
		}
		n.eventLog = fl
		n.closers = append(n.closers, fl.Close)
		sinks = append(sinks, fl)
	}
	if level <= slog.LevelDebug {
		sinks = append(sinks, log.NewSlogAdapter(n.logger))
	}

	switch len(sinks) {
	case 0:
		return log.NoopLogger{}, nil
	case 1:
		return sinks[0], nil
	default:
		return log.NewMultiLogger(sinks...), nil
	}
}

// Dataset returns the local dataset store for role.
func (n *Node) Dataset(role dataset.Role) *persistence.LocalDataset {
	return n.datasets[role]
}

// Config returns the node configuration.
func (n *Node) Config() Config { return n.cfg }

// SecretsExternalized reports whether a key store holds the secrets.
func (n *Node) SecretsExternalized() bool { return n.keys != nil }

// Close releases all backends. It is safe to call more than once.
func (n *Node) Close() error {
	var errs []error
	for i := len(n.closers) - 1; i >= 0; i-- {
		if err := n.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	n.closers = nil
	return errors.Join(errs...)
}
