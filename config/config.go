// Package config provides runtime configuration for the stock engine.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Store backends selectable via LEDGER_STORE.
const (
	StoreCSV    = "csv"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config holds all runtime knobs. Values come from the environment with
// defaults; cmd/server exposes flag overrides for the common ones.
type Config struct {
	Addr            string        `envconfig:"LEDGER_ADDR" default:":8080"`
	ReadTimeout     time.Duration `envconfig:"LEDGER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"LEDGER_WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"LEDGER_SHUTDOWN_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LEDGER_LOG_FORMAT" default:"text"` // text|json

	Store        string `envconfig:"LEDGER_STORE" default:"csv"` // csv|sqlite|memory
	ProductsFile string `envconfig:"LEDGER_PRODUCTS_FILE" default:"products.csv"`
	SalesFile    string `envconfig:"LEDGER_SALES_FILE" default:"sales.csv"`
	SQLitePath   string `envconfig:"LEDGER_SQLITE_PATH" default:"ledger.db"`

	AllowDuplicateCodes bool `envconfig:"LEDGER_ALLOW_DUPLICATE_CODES" default:"false"`
	UndoByRecordID      bool `envconfig:"LEDGER_UNDO_BY_RECORD_ID" default:"false"`

	RequestsPerMinute int      `envconfig:"LEDGER_REQUESTS_PER_MINUTE" default:"300"`
	AllowedOrigins    []string `envconfig:"LEDGER_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:8080"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	switch cfg.Store {
	case StoreCSV, StoreSQLite, StoreMemory:
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
	return &cfg, nil
}
