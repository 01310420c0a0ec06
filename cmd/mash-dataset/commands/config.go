// Package commands implements the mash-dataset CLI commands.
package commands

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
)

// Settings backends.
const (
	BackendFile    = "file"
	BackendLevelDB = "leveldb"
	BackendMemory  = "memory"
)

// Key store kinds.
const (
	KeyStoreNone = "none"
	KeyStoreFile = "file"
)

// Config holds the node storage configuration.
type Config struct {
	// DataDir is the root directory for settings and keys.
	DataDir string `yaml:"data_dir"`

	// Backend selects the settings store: file, leveldb or memory.
	Backend string `yaml:"backend"`

	// KeyStore selects where secrets live: none (in the dataset) or file.
	KeyStore string `yaml:"key_store"`

	// SecretFile holds the master secret that seals the file key store.
	SecretFile string `yaml:"secret_file"`

	// EventLog is an optional path for a CBOR event log (.dlog).
	EventLog string `yaml:"event_log"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() Config {
	return Config{
		DataDir:  "./mash-data",
		Backend:  BackendFile,
		KeyStore: KeyStoreNone,
		LogLevel: "warn",
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendLevelDB, BackendMemory:
	default:
		return fmt.Errorf("invalid backend: %s (must be file, leveldb, or memory)", c.Backend)
	}

	switch c.KeyStore {
	case KeyStoreNone:
	case KeyStoreFile:
		if c.SecretFile == "" {
			return errors.New("key store \"file\" requires secret_file")
		}
	default:
		return fmt.Errorf("invalid key store: %s (must be none or file)", c.KeyStore)
	}

	if c.Backend != BackendMemory && c.DataDir == "" {
		return errors.New("data_dir is required")
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level: %s", s)
	}
	return level, nil
}

// commonFlags holds the storage flags shared by every command.
type commonFlags struct {
	configFile string
	cfg        Config
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	cf := &commonFlags{cfg: DefaultConfig()}

	fs.StringVar(&cf.configFile, "config", "", "Configuration file path (YAML)")
	fs.StringVar(&cf.cfg.DataDir, "data-dir", cf.cfg.DataDir, "Data directory")
	fs.StringVar(&cf.cfg.Backend, "backend", cf.cfg.Backend, "Settings backend: file, leveldb, memory")
	fs.StringVar(&cf.cfg.KeyStore, "keystore", cf.cfg.KeyStore, "Key store: none, file")
	fs.StringVar(&cf.cfg.SecretFile, "secret-file", "", "Master secret file for the file key store")
	fs.StringVar(&cf.cfg.EventLog, "event-log", "", "Append store events to this .dlog file")
	fs.StringVar(&cf.cfg.LogLevel, "log-level", cf.cfg.LogLevel, "Log level: debug, info, warn, error")

	return cf
}

// resolve merges the config file with flags. Flags set explicitly on the
// command line win over the file.
func (cf *commonFlags) resolve(fs *flag.FlagSet) (Config, error) {
	if cf.configFile == "" {
		return cf.cfg, cf.cfg.Validate()
	}

	cfg, err := LoadConfig(cf.configFile)
	if err != nil {
		return cfg, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data-dir":
			cfg.DataDir = cf.cfg.DataDir
		case "backend":
			cfg.Backend = cf.cfg.Backend
		case "keystore":
			cfg.KeyStore = cf.cfg.KeyStore
		case "secret-file":
			cfg.SecretFile = cf.cfg.SecretFile
		case "event-log":
			cfg.EventLog = cf.cfg.EventLog
		case "log-level":
			cfg.LogLevel = cf.cfg.LogLevel
		}
	})

	return cfg, cfg.Validate()
}
