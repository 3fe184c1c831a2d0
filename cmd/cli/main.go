package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"time-tracking-assistant/config"
	"time-tracking-assistant/internal/app"
	"time-tracking-assistant/internal/tracker"
	"time-tracking-assistant/pkg/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	driver     string
	dbPath     string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "timetracker",
		Short: "Track your time by chatting with an assistant",
		Long: `Tell the assistant what you start and stop working on, in plain words.
Type "exit" to quit.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(cmd, opts, func(ctx context.Context, uc tracker.UseCase) error {
				return newREPL(uc, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
			})
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default ./config/config.yaml)")
	flags.StringVar(&opts.driver, "driver", config.DriverSQLite, "storage driver: sqlite or postgres")
	flags.StringVar(&opts.dbPath, "db", "", "SQLite database file (default from config)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")

	cmd.AddCommand(statusCmd(opts), historyCmd(opts), statsCmd(opts))
	return cmd
}

func statusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show running tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(cmd, opts, func(ctx context.Context, uc tracker.UseCase) error {
				out, err := uc.Status(ctx, localScope)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), newStyles(cmd.OutOrStdout()).status(out))
				return nil
			})
		},
	}
}

func historyCmd(opts *options) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List completed tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return tracker.ErrInvalidDays
			}
			return withTracker(cmd, opts, func(ctx context.Context, uc tracker.UseCase) error {
				out, err := uc.History(ctx, localScope, tracker.HistoryInput{Days: days})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), newStyles(cmd.OutOrStdout()).history(out))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&days, "days", "d", tracker.DefaultHistoryDays, "look back this many days (1-365)")
	return cmd
}

func statsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show time per task today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(cmd, opts, func(ctx context.Context, uc tracker.UseCase) error {
				out, err := uc.Stats(ctx, localScope)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), newStyles(cmd.OutOrStdout()).stats(out))
				return nil
			})
		},
	}
}

// withTracker loads configuration, builds the tracker and runs fn until it
// returns or the process is interrupted.
func withTracker(cmd *cobra.Command, opts *options, fn func(ctx context.Context, uc tracker.UseCase) error) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	logger := log.Init(log.ZapConfig{
		Level:        level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
		FilePath:     cfg.Logger.FilePath,
		MaxSizeMB:    cfg.Logger.MaxSizeMB,
		MaxBackups:   cfg.Logger.MaxBackups,
		MaxAgeDays:   cfg.Logger.MaxAgeDays,
		Stderr:       true,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tr, err := app.NewTracker(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer tr.Close()

	return fn(ctx, tr.UseCase)
}

func loadConfig(opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	switch opts.driver {
	case config.DriverSQLite, config.DriverPostgres:
		cfg.Database.Driver = opts.driver
	default:
		return nil, fmt.Errorf("--driver must be %q or %q, got %q", config.DriverSQLite, config.DriverPostgres, opts.driver)
	}
	if opts.dbPath != "" {
		cfg.Database.SQLitePath = opts.dbPath
	}
	return cfg, nil
}
