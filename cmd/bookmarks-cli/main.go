package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dastanaron/mozbookmarks/internal/config"
	"github.com/dastanaron/mozbookmarks/internal/logging"
	"github.com/dastanaron/mozbookmarks/internal/repository"

	"github.com/spf13/cobra"
)

// env is shared by all subcommands. The repository is opened on first use
// so file-only commands never touch the database.
type env struct {
	cfgFile  string
	dbPath   string
	logLevel string
	name     string

	cfg  *config.Config
	repo *repository.SQLiteRepository
}

func (e *env) repository() (*repository.SQLiteRepository, error) {
	if e.repo != nil {
		return e.repo, nil
	}

	// Ensure database directory exists
	dbDir := filepath.Dir(e.cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	repo, err := repository.NewSQLiteRepository(e.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logging.Debugf("opened database %s", e.cfg.DBPath)
	e.repo = repo
	return repo, nil
}

func (e *env) close() {
	if e.repo != nil {
		if err := e.repo.Close(); err != nil {
			logging.Warnf("closing database: %v", err)
		}
		e.repo = nil
	}
	logging.Sync()
}

func newRootCmd(e *env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bookmarks-cli",
		Short:         "Read, store and convert Firefox bookmark backups",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&e.cfgFile, "config", "", "Config file (default: ~/.bookmarks/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&e.dbPath, "db", "", "Path to database file (default: ~/.bookmarks/bookmarks.db)")
	rootCmd.PersistentFlags().StringVar(&e.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVarP(&e.name, "name", "n", "default", "Name of the stored bookmark tree")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(e.cfgFile)
		if err != nil {
			return err
		}
		if e.dbPath != "" {
			cfg.WithDBPath(e.dbPath)
		}
		if e.logLevel != "" {
			cfg.WithLogLevel(e.logLevel)
		}
		if err := logging.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		e.cfg = cfg
		return nil
	}

	rootCmd.AddCommand(newImportCmd(e))
	rootCmd.AddCommand(newExportCmd(e))
	rootCmd.AddCommand(newConvertCmd(e))
	rootCmd.AddCommand(newPrintCmd(e))
	rootCmd.AddCommand(newCheckCmd(e))
	rootCmd.AddCommand(newSearchCmd(e))
	rootCmd.AddCommand(newDoublesCmd(e))
	rootCmd.AddCommand(newStatsCmd(e))
	rootCmd.AddCommand(newListCmd(e))
	rootCmd.AddCommand(newDeleteCmd(e))
	rootCmd.AddCommand(newTuiCmd(e))
	return rootCmd
}

func main() {
	e := &env{}
	err := newRootCmd(e).Execute()
	if err != nil {
		logging.Errorf("%v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	e.close()
	if err != nil {
		os.Exit(1)
	}
}
