// Package rcconfig is the TOML-backed configuration for cmd/primrecd,
// grounded on server/config.go's Database/Config split and FillDefaults/
// Validate pattern, and on internal/tqw's file-loading convention for
// locating and parsing a manifest.
package rcconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// DBType is the type of persistence backing the job store.
type DBType string

const (
	DatabaseNone     DBType = "none"
	DatabaseInMemory DBType = "inmem"
	DatabaseSQLite   DBType = "sqlite"
)

// ParseDBType parses a string found in config or on the command line into a
// DBType.
func ParseDBType(s string) (DBType, error) {
	switch strings.ToLower(s) {
	case string(DatabaseInMemory):
		return DatabaseInMemory, nil
	case string(DatabaseSQLite):
		return DatabaseSQLite, nil
	default:
		return DatabaseNone, fmt.Errorf("DB type not one of 'sqlite' or 'inmem': %q", s)
	}
}

// Database configures the job store's persistence layer.
type Database struct {
	Type DBType `toml:"type"`

	// DataDir is where sqlite stores its files. Only applicable to
	// DatabaseSQLite.
	DataDir string `toml:"data_dir"`
}

func (db Database) Validate() error {
	switch db.Type {
	case DatabaseInMemory:
		return nil
	case DatabaseSQLite:
		if db.DataDir == "" {
			return fmt.Errorf("data_dir not set to path")
		}
		return nil
	case DatabaseNone:
		return fmt.Errorf("'none' DB is not valid")
	default:
		return fmt.Errorf("unknown database type: %q", db.Type)
	}
}

// Config is the full configuration for the search API server.
type Config struct {
	// ListenAddress is the host:port the HTTP server binds to.
	ListenAddress string `toml:"listen_address"`

	// TokenSecret signs the server's JWTs. If not provided, a default
	// (insecure) key is used, same as server/config.go's Config.TokenSecret.
	TokenSecret string `toml:"token_secret"`

	// DB configures job persistence.
	DB Database `toml:"db"`

	// DefaultScanRange and DefaultStepBudget are used whenever a /jobs
	// request omits those fields.
	DefaultScanRange  int `toml:"default_scan_range"`
	DefaultStepBudget int `toml:"default_step_budget"`
}

const (
	MinSecretSize = 32
	MaxSecretSize = 64
)

// Load reads and parses a TOML config file at path.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// FillDefaults returns a copy of cfg with unset fields set to their
// defaults.
func (cfg Config) FillDefaults() Config {
	newCfg := cfg

	if newCfg.ListenAddress == "" {
		newCfg.ListenAddress = ":8080"
	}
	if newCfg.TokenSecret == "" {
		newCfg.TokenSecret = "DEFAULT_TOKEN_SECRET-DO_NOT_USE_IN_PROD!"
	}
	if newCfg.DB.Type == DatabaseNone {
		newCfg.DB = Database{Type: DatabaseInMemory}
	}
	if newCfg.DefaultScanRange == 0 {
		newCfg.DefaultScanRange = 20
	}
	if newCfg.DefaultStepBudget == 0 {
		newCfg.DefaultStepBudget = 100000
	}

	return newCfg
}

// Validate returns an error if cfg has invalid field values. Call
// FillDefaults first if defaults are intended to be used.
func (cfg Config) Validate() error {
	if len(cfg.TokenSecret) < MinSecretSize {
		return fmt.Errorf("token_secret: must be at least %d bytes, but is %d", MinSecretSize, len(cfg.TokenSecret))
	}
	if len(cfg.TokenSecret) > MaxSecretSize {
		return fmt.Errorf("token_secret: must be no more than %d bytes, but is %d", MaxSecretSize, len(cfg.TokenSecret))
	}
	if err := cfg.DB.Validate(); err != nil {
		return fmt.Errorf("db: %w", err)
	}
	if cfg.DefaultScanRange < 1 {
		return fmt.Errorf("default_scan_range: must be positive")
	}
	if cfg.DefaultStepBudget < 1 {
		return fmt.Errorf("default_step_budget: must be positive")
	}
	return nil
}

// EnsureDataDir creates the sqlite data directory if it does not already
// exist.
func (cfg Config) EnsureDataDir() error {
	if cfg.DB.Type != DatabaseSQLite {
		return nil
	}
	return os.MkdirAll(cfg.DB.DataDir, 0770)
}
