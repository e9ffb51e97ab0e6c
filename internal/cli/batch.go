package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomolar/internal/logging"
	"github.com/yaklabco/gomolar/pkg/batch"
	"github.com/yaklabco/gomolar/pkg/config"
	"github.com/yaklabco/gomolar/pkg/reporter"
)

type batchFlags struct {
	format    string
	precision int
	breakdown bool
	jobs      int
	patterns  []string
	exclude   []string
	name      bool
	watch     bool
	debounce  time.Duration
	compact   bool
}

func newBatchCommand() *cobra.Command {
	flags := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "batch [paths...]",
		Short: "Evaluate formula files",
		Long:  batchLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, flags)
		},
	}

	addBatchFlags(cmd, flags)

	return cmd
}

const batchLongDescription = `Evaluate every formula in formula files.

A formula file holds one formula per line; blank lines are skipped and '#'
starts a comment. Directories are searched for files matching the batch
patterns (default **/*.formulas). Files run in parallel and results are
reported in file and line order. A path of "-" reads formulas from standard
input, reported after any files.

Examples:
  gomolar batch                          # Evaluate *.formulas under .
  gomolar batch lab/ extra.txt           # Directories and explicit files
  gomolar batch --pattern "**/*.txt"     # Custom discovery pattern
  gomolar batch --format table           # One row per formula
  gomolar batch --format html > out.html # Standalone HTML report
  cat list.txt | gomolar batch -         # Formulas from standard input
  gomolar batch --watch                  # Re-evaluate on every change`

func addBatchFlags(cmd *cobra.Command, flags *batchFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, table, json, yaml, markdown, html")
	cmd.Flags().IntVar(&flags.precision, "precision", config.DefaultPrecision, "decimals shown for masses")
	cmd.Flags().BoolVar(&flags.breakdown, "breakdown", false, "show the per-element breakdown")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.patterns, "pattern", nil, "glob patterns selecting formula files")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip")
	cmd.Flags().BoolVar(&flags.name, "name", true, "look up compound names")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-evaluate when formula files change")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", batch.DefaultDebounce, "delay before re-evaluating in watch mode")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "compact JSON output")
}

// batchConfig maps explicitly set flags onto a CLI config layer. Batch
// runs show the breakdown only when asked.
func batchConfig(cmd *cobra.Command, flags *batchFlags) *config.Config {
	cfg := &config.Config{
		ShowBreakdown: config.Bool(flags.breakdown),
		NoHistory:     true,
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("precision") {
		cfg.Precision = config.Int(flags.precision)
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Batch.Jobs = flags.jobs
	}
	cfg.Batch.Patterns = flags.patterns
	cfg.Batch.Exclude = flags.exclude
	return cfg
}

func runBatch(cmd *cobra.Command, args []string, flags *batchFlags) error {
	sess, err := loadSession(cmd, batchConfig(cmd, flags))
	if err != nil {
		return err
	}

	paths, fromStdin := splitStdinArg(args)
	if fromStdin && flags.watch {
		return fmt.Errorf("%w: --watch cannot read standard input", errUsage)
	}

	runner := batch.New(sess.batchOptions(paths, flags.name))

	opts, err := sess.reporterOptions(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	opts.Compact = flags.compact

	if flags.watch {
		return watchBatch(cmd, sess, runner, opts, flags.debounce)
	}

	sess.logger.Debug("starting batch run",
		logging.FieldPaths, paths,
		logging.FieldWorkingDir, sess.workDir,
		logging.FieldJobs, sess.cfg.Batch.Jobs,
	)

	start := time.Now()
	result, err := collectBatch(cmd, sess, runner, len(paths) > 0 || !fromStdin, fromStdin)
	if err != nil {
		return err
	}

	sess.logger.Debug("batch run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFormulasTotal, result.Stats.FormulasTotal,
		logging.FieldFormulasInvalid, result.Stats.FormulasInvalid,
		logging.FieldDuration, time.Since(start),
	)

	if err := report(cmd, opts, result); err != nil {
		return err
	}

	if len(result.Errors) > 0 {
		errs := make([]error, 0, len(result.Errors))
		for _, ferr := range result.Errors {
			errs = append(errs, ferr)
		}
		return errors.Join(errs...)
	}
	return nil
}

// splitStdinArg removes every "-" from args and reports whether one was
// present.
func splitStdinArg(args []string) ([]string, bool) {
	paths := make([]string, 0, len(args))
	fromStdin := false
	for _, arg := range args {
		if arg == "-" {
			fromStdin = true
			continue
		}
		paths = append(paths, arg)
	}
	return paths, fromStdin
}

// collectBatch evaluates formula files and standard input. Standard input
// items follow the file items.
func collectBatch(cmd *cobra.Command, sess *session, runner *batch.Runner, runFiles, fromStdin bool) (*batch.Result, error) {
	var stdinResult *batch.Result
	if fromStdin {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read standard input: %w", err)
		}
		stdinResult = runner.EvaluateLines(batch.StdinSource, batch.ParseLines(content))
	}

	if !runFiles {
		return stdinResult, nil
	}

	result, err := runner.Run(sess.ctx)
	if err != nil {
		return nil, fmt.Errorf("batch run failed: %w", err)
	}
	result.Merge(stdinResult)
	return result, nil
}

// watchBatch reports every run until interrupted. Invalid formulas do not
// end the watch.
func watchBatch(cmd *cobra.Command, sess *session, runner *batch.Runner, opts reporter.Options, debounce time.Duration) error {
	ctx, stop := signal.NotifyContext(sess.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.NewInteractive()
	ctx = logging.WithLogger(ctx, sess.logger)

	logger.Info("watching for changes; press Ctrl+C to stop", logging.FieldWorkingDir, sess.workDir)

	err := runner.Watch(ctx, debounce, func(result *batch.Result, runErr error) {
		if runErr != nil {
			if !errors.Is(runErr, context.Canceled) {
				logger.Error("batch run failed", logging.FieldError, runErr)
			}
			return
		}

		if err := report(cmd, opts, result); err != nil && !errors.Is(err, ErrInvalidFormula) {
			logger.Error("report failed", logging.FieldError, err)
			return
		}
		logger.Info("evaluated",
			logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
			logging.FieldFormulasTotal, result.Stats.FormulasTotal,
			logging.FieldFormulasInvalid, result.Stats.FormulasInvalid,
		)
	})
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}
