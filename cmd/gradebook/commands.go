package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	sdkworker "go.temporal.io/sdk/worker"

	"github.com/ahrav/go-gradebook/internal/cache"
	"github.com/ahrav/go-gradebook/internal/cli"
	"github.com/ahrav/go-gradebook/internal/config"
	"github.com/ahrav/go-gradebook/internal/worker"
)

const programName = "gradebook"

// rootCmd bundles the cobra command tree with the state its commands share.
type rootCmd struct {
	cmd *cobra.Command

	configPath string
	logLevel   string
	logFormat  string

	cfg      *config.Config
	logger   *slog.Logger
	exitCode int
}

func newRootCmd() *rootCmd {
	r := &rootCmd{}

	r.cmd = &cobra.Command{
		Use:           programName + " [courses.csv] [students.csv] [tests.csv] [marks.csv] [output.json]",
		Short:         "Build a per-student grade report from CSV tables",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return r.setup()
		},
		RunE: r.runReport,
	}

	flags := r.cmd.PersistentFlags()
	flags.StringVar(&r.configPath, "config", "", "path to a YAML configuration file")
	flags.StringVar(&r.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flags.StringVar(&r.logFormat, "log-format", "", "log format override (text, json)")

	r.cmd.AddCommand(
		&cobra.Command{
			Use:   "report [courses.csv] [students.csv] [tests.csv] [marks.csv] [output.json]",
			Short: "Build the report in process",
			Args:  cobra.ArbitraryArgs,
			RunE:  r.runReport,
		},
		&cobra.Command{
			Use:   "submit [courses.csv] [students.csv] [tests.csv] [marks.csv] [output.json]",
			Short: "Build the report through the Temporal report workflow",
			Args:  cobra.ArbitraryArgs,
			RunE:  r.runSubmit,
		},
		&cobra.Command{
			Use:   "worker",
			Short: "Run a Temporal worker serving the report workflow",
			Args:  cobra.NoArgs,
			RunE:  r.runWorker,
		},
	)

	return r
}

// execute runs the command tree with args and returns the exit code.
func (r *rootCmd) execute(ctx context.Context, args []string) (int, error) {
	r.cmd.SetArgs(args)
	if err := r.cmd.ExecuteContext(ctx); err != nil {
		return cli.ExitFailure, err
	}
	return r.exitCode, nil
}

func (r *rootCmd) setup() error {
	cfg, err := config.Load(r.configPath)
	if err != nil {
		return err
	}
	if r.logLevel != "" {
		cfg.Log.Level = r.logLevel
	}
	if r.logFormat != "" {
		cfg.Log.Format = r.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	r.cfg = cfg
	r.logger = cfg.Log.NewLogger(os.Stderr)
	slog.SetDefault(r.logger)
	return nil
}

func (r *rootCmd) runReport(cmd *cobra.Command, args []string) error {
	return r.run(cmd.Context(), args, cli.LocalGenerator{})
}

func (r *rootCmd) runSubmit(cmd *cobra.Command, args []string) error {
	c, err := worker.Dial(r.cfg.Temporal, r.logger)
	if err != nil {
		return err
	}
	defer c.Close()

	return r.run(cmd.Context(), args, cli.TemporalGenerator{
		Client:   c,
		Config:   r.cfg.Temporal,
		NewRunID: uuid.NewString,
	})
}

func (r *rootCmd) run(ctx context.Context, args []string, gen cli.Generator) error {
	inv, err := cli.ParseInvocation(args, cli.IsRegularFile)
	if err != nil {
		return err
	}

	results := cache.New(ctx, r.cfg.Cache, nil)

	code, err := cli.Run(ctx, inv, gen, results)
	r.exitCode = code
	return err
}

func (r *rootCmd) runWorker(_ *cobra.Command, _ []string) error {
	c, err := worker.Dial(r.cfg.Temporal, r.logger)
	if err != nil {
		return err
	}
	defer c.Close()

	w := worker.New(c, r.cfg.Temporal, r.logger)
	r.logger.Info("starting worker", "task_queue", r.cfg.Temporal.TaskQueue)
	if err := w.Run(sdkworker.InterruptCh()); err != nil {
		return fmt.Errorf("worker stopped: %w", err)
	}
	return nil
}
