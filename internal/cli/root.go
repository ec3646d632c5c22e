// Package cli wires the cobra command tree around the review engine and
// maps errors to process exit codes.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PixelCode01/syllabo/internal/config"
	"github.com/PixelCode01/syllabo/internal/database"
	"github.com/PixelCode01/syllabo/internal/logging"
	"github.com/PixelCode01/syllabo/internal/spaced_repetition"
)

// Exit codes surfaced to shell callers.
const (
	ExitOK          = 0
	ExitNotFound    = 1
	ExitDuplicate   = 2
	ExitPersistence = 3
	ExitUsage       = 64
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "syllabo",
	Short:         "Personal spaced-repetition review scheduler",
	Long:          "syllabo tracks study topics on a fixed interval ladder,\ntells you what is due for review, and adjusts cadence from recall outcomes.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the config file")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err}
	})
	rootCmd.AddCommand(
		addCmd,
		reviewCmd,
		listCmd,
		statsCmd,
		removeCmd,
		exportCmd,
		importCmd,
		notifyCmd,
	)
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitCode(err)
	}
	return ExitOK
}

func exitCode(err error) int {
	var ue *usageError
	switch {
	case errors.Is(err, database.ErrTopicNotFound):
		return ExitNotFound
	case errors.Is(err, database.ErrDuplicateTopic):
		return ExitDuplicate
	case database.IsPersistence(err):
		return ExitPersistence
	case errors.Is(err, spaced_repetition.ErrInvalidName), errors.As(err, &ue):
		return ExitUsage
	default:
		return ExitNotFound
	}
}

// usageError marks argument and flag problems so they exit with 64.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...interface{}) error {
	return &usageError{fmt.Errorf(format, args...)}
}

// app bundles the wired components a command needs.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	store  database.Store
	engine *spaced_repetition.Engine
}

// newApp loads config, builds the logger, opens the configured store
// backend and constructs the engine.
func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, usagef("%v", err)
	}

	log, err := logging.New(cfg.Debug)
	if err != nil {
		return nil, err
	}

	ladder := spaced_repetition.DefaultLadder()
	if len(cfg.Intervals) > 0 {
		ladder = spaced_repetition.Ladder(cfg.Intervals)
	}

	var store database.Store
	switch cfg.Storage.Driver {
	case "json":
		store, err = database.NewJSONStore(cfg.StorePath(), ladder, time.Duration(cfg.Storage.LockTimeout), log)
	case "sqlite":
		store, err = database.NewSQLStore("sqlite3", cfg.SQLitePath(), ladder, log)
	case "postgres":
		store, err = database.NewSQLStore("postgres", cfg.Storage.DSN, ladder, log)
	}
	if err != nil {
		return nil, err
	}

	engine, err := spaced_repetition.NewEngine(store, ladder, log)
	if err != nil {
		store.Close()
		return nil, usagef("%v", err)
	}

	return &app{cfg: cfg, log: log, store: store, engine: engine}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("failed to close store", zap.Error(err))
	}
	_ = a.log.Sync()
}
