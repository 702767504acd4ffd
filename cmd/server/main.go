/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the stock ledger server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load environment configuration, apply flag overrides
  2. Build the snapshot store (csv, sqlite, or memory)
  3. Create the ledger service and load the persisted snapshots
  4. Configure the HTTP router
  5. Start the server with graceful shutdown

COMMAND-LINE FLAGS:
  -addr      Listen address (overrides LEDGER_ADDR)
  -store     Store backend: csv, sqlite, memory (overrides LEDGER_STORE)
  -products  Products CSV path (overrides LEDGER_PRODUCTS_FILE)
  -sales     Sales CSV path (overrides LEDGER_SALES_FILE)
  -db        SQLite database path (overrides LEDGER_SQLITE_PATH)
             Use ":memory:" for an in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete
  3. Save both snapshots to the store
  4. Exit

  The original application saved on exit; the save in step 3 keeps that
  behavior. /api/save exists for saving on demand before that.

ENVIRONMENT:
  See config/config.go for the full LEDGER_* variable list.

SEE ALSO:
  - api/server.go: Router configuration
  - ledger/service.go: The core being served
*/
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/toko/stock-engine/api"
	"github.com/toko/stock-engine/config"
	"github.com/toko/stock-engine/ledger"
	memstore "github.com/toko/stock-engine/ledger/store"
	"github.com/toko/stock-engine/store/csvfile"
	"github.com/toko/stock-engine/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Flag overrides for the common knobs
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flag.StringVar(&cfg.Store, "store", cfg.Store, "store backend: csv, sqlite, memory")
	flag.StringVar(&cfg.ProductsFile, "products", cfg.ProductsFile, "products CSV path")
	flag.StringVar(&cfg.SalesFile, "sales", cfg.SalesFile, "sales CSV path")
	flag.StringVar(&cfg.SQLitePath, "db", cfg.SQLitePath, "SQLite database path")
	flag.Parse()

	logger := newLogger(cfg.LogFormat)
	slog.SetDefault(logger)

	// Build the snapshot store
	var store ledger.Store
	switch cfg.Store {
	case config.StoreSQLite:
		s, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			logger.Error("failed to open database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer s.Close()
		store = s
	case config.StoreMemory:
		store = memstore.NewMemory()
	default:
		store = csvfile.New(cfg.ProductsFile, cfg.SalesFile)
	}

	svc := ledger.NewService(store, ledger.Options{
		AllowDuplicateCodes: cfg.AllowDuplicateCodes,
		UndoByRecordID:      cfg.UndoByRecordID,
		Logger:              logger,
	})

	if err := svc.LoadAll(context.Background()); err != nil {
		// Malformed snapshots are a hard failure: silently starting empty
		// would overwrite the data on the next save.
		logger.Error("failed to load snapshots", slog.String("error", err.Error()))
		os.Exit(1)
	}

	router := api.NewRouter(api.NewHandler(svc), api.RouterOptions{
		AllowedOrigins:    cfg.AllowedOrigins,
		RequestsPerMinute: cfg.RequestsPerMinute,
	})

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Info("server starting", slog.String("addr", cfg.Addr), slog.String("store", cfg.Store))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", slog.String("error", err.Error()))
	}

	// Save on exit, like the desktop app this replaces. A fresh timeout so
	// a slow drain above cannot starve the save.
	saveCtx, cancelSave := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelSave()
	if err := svc.SaveAll(saveCtx); err != nil {
		logger.Error("failed to save snapshots on exit", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func newLogger(format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
