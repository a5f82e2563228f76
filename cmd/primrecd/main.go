/*
Primrecd starts the search API server and begins listening for new
connections.

Usage:

	primrecd [flags]

If a config file is not given, primrecd falls back to an in-memory job store
and a generated (ephemeral) token secret, suitable for local exploration but
not for production: a restart invalidates every previously-issued token.

The flags are:

	-v, --version
		Give the current version of primrecd and then exit.

	-c, --config PATH
		Load a TOML configuration file. If not given, built-in defaults are
		used.

	-l, --listen LISTEN_ADDRESS
		Override the configured listen address. Must be in ADDRESS:PORT or
		:PORT format.
*/
package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/dekarrin/primrec/internal/jobstore"
	"github.com/dekarrin/primrec/internal/jobstore/inmem"
	"github.com/dekarrin/primrec/internal/jobstore/sqlite"
	"github.com/dekarrin/primrec/internal/rcconfig"
	"github.com/dekarrin/primrec/internal/searchapi"
	"github.com/dekarrin/primrec/internal/version"
	"github.com/spf13/pflag"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of primrecd and then exit.")
	flagConfig  = pflag.StringP("config", "c", "", "Load a TOML configuration file.")
	flagListen  = pflag.StringP("listen", "l", "", "Override the configured listen address.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("primrecd %s\n", version.Current)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(1)
	}

	if *flagListen != "" {
		cfg.ListenAddress = *flagListen
	}

	if err := cfg.EnsureDataDir(); err != nil {
		log.Fatalf("FATAL could not create data directory: %s", err.Error())
	}

	store, err := openStore(cfg.DB)
	if err != nil {
		log.Fatalf("FATAL could not open job store: %s", err.Error())
	}
	defer store.Close()

	api := searchapi.API{
		Jobs:              store,
		Secret:            []byte(cfg.TokenSecret),
		DefaultScanRange:  cfg.DefaultScanRange,
		DefaultStepBudget: cfg.DefaultStepBudget,
	}

	log.Printf("INFO  Starting primrecd %s on %s (db=%s)", version.Current, cfg.ListenAddress, cfg.DB.Type)
	if err := http.ListenAndServe(cfg.ListenAddress, api.Router()); err != nil {
		log.Fatalf("FATAL server exited: %s", err.Error())
	}
}

// loadConfig reads --config if given, otherwise falls back to defaults with
// a freshly generated (and thus restart-invalidated) token secret, mirroring
// cmd/tqserver's no-secret-given behavior.
func loadConfig() (rcconfig.Config, error) {
	var cfg rcconfig.Config
	var err error

	if *flagConfig != "" {
		cfg, err = rcconfig.Load(*flagConfig)
		if err != nil {
			return rcconfig.Config{}, err
		}
	}

	cfg = cfg.FillDefaults()

	if *flagConfig == "" {
		secret := make([]byte, rcconfig.MaxSecretSize)
		if _, err := rand.Read(secret); err != nil {
			return rcconfig.Config{}, fmt.Errorf("generate token secret: %w", err)
		}
		cfg.TokenSecret = string(secret)
		log.Printf("WARN  Using generated token secret; all tokens issued will become invalid at shutdown")
	}

	if err := cfg.Validate(); err != nil {
		return rcconfig.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func openStore(db rcconfig.Database) (jobstore.Store, error) {
	switch db.Type {
	case rcconfig.DatabaseSQLite:
		return sqlite.New(db.DataDir)
	default:
		return inmem.New(), nil
	}
}
