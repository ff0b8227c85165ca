// Package cmd implements the CLI application to track net worth and
// passive income.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/phuslu/log"

	"github.com/nboul/networth"
	"github.com/nboul/networth/store"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&historyCmd{}, "portfolio")
	c.Register(&metricsCmd{}, "portfolio")
	c.Register(&incomeCmd{}, "portfolio")
	c.Register(&refreshCmd{}, "portfolio")

	c.Register(&exportCmd{}, "store")
	c.Register(&importCmd{}, "store")
	c.Register(&pruneCmd{}, "store")
	c.Register(&sizeCmd{}, "store")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", defaultConfigPath(), "Path to the TOML config file")
var assetsFile = flag.String("assets", "assets.jsonl", "Path to the asset definitions file (JSONL format)")
var transactionsFile = flag.String("transactions", "transactions.jsonl", "Path to the transactions file (JSONL format)")
var storePath = flag.String("store", "", "Path to the portfolio history database (overrides config)")

func defaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".networth", "config.toml")
}

// loadConfig reads the config file and applies flag overrides and log level.
func loadConfig() (Config, error) {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return cfg, err
	}
	if *storePath != "" {
		cfg.StorePath = *storePath
	}
	networth.Log.Level = log.ParseLevel(cfg.LogLevel)
	return cfg, nil
}

// loadAssets reads the asset definitions file. A missing file yields an
// empty set with a warning, so a fresh directory just works.
func loadAssets() ([]*networth.AssetDefinition, error) {
	f, err := os.Open(*assetsFile)
	if errors.Is(err, fs.ErrNotExist) {
		networth.Log.Warn().Str("file", *assetsFile).Msg("asset file does not exist, using an empty set instead")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open asset file %q: %w", *assetsFile, err)
	}
	defer f.Close()
	return networth.ImportAssets(f)
}

// loadTransactions reads the transactions file, tolerating absence the
// same way.
func loadTransactions() ([]networth.Transaction, error) {
	f, err := os.Open(*transactionsFile)
	if errors.Is(err, fs.ErrNotExist) {
		networth.Log.Warn().Str("file", *transactionsFile).Msg("transaction file does not exist, using an empty set instead")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open transaction file %q: %w", *transactionsFile, err)
	}
	defer f.Close()
	return networth.ImportTransactions(f)
}

// openStore opens the portfolio history database configured for the app.
func openStore(cfg Config) (*store.Store, error) {
	return store.Open(cfg.StorePath, &networth.Log)
}
