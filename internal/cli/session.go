package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomolar/internal/configloader"
	"github.com/yaklabco/gomolar/internal/logging"
	"github.com/yaklabco/gomolar/pkg/batch"
	"github.com/yaklabco/gomolar/pkg/config"
	"github.com/yaklabco/gomolar/pkg/elements"
	"github.com/yaklabco/gomolar/pkg/formula"
	"github.com/yaklabco/gomolar/pkg/history"
	"github.com/yaklabco/gomolar/pkg/molarmass"
	"github.com/yaklabco/gomolar/pkg/reporter"
)

// errConfig marks configuration and element table failures.
var errConfig = errors.New("failed to load configuration")

// session is the resolved configuration and the calculation pipeline built
// from it, shared by every command that evaluates formulas.
type session struct {
	ctx     context.Context
	cfg     *config.Config
	workDir string
	table   *elements.Table
	parser  *formula.Parser
	calc    *molarmass.Calculator
	logger  *log.Logger
}

// loadSession loads configuration with cliCfg as the highest-precedence
// layer and builds the parser and calculator it describes.
func loadSession(cmd *cobra.Command, cliCfg *config.Config) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	if cliCfg == nil {
		cliCfg = &config.Config{}
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	if colorMode, err := cmd.Flags().GetString("color"); err == nil {
		cliCfg.Color = config.ColorMode(colorMode)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errConfig, err)
	}

	cfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	table, err := elements.Load(cfg.ElementsFile)
	if err != nil {
		return nil, errors.Join(errConfig, fmt.Errorf("load element table: %w", err))
	}

	logger.Debug("configuration loaded",
		logging.FieldFormat, cfg.Format,
		logging.FieldTable, cfg.ElementsFile,
		logging.FieldJobs, cfg.Batch.Jobs,
	)

	parser := formula.New(formula.Options{
		Table:    table,
		MaxCount: cfg.Parser.MaxCount,
		MaxDepth: cfg.Parser.MaxDepth,
		MaxAtoms: cfg.Parser.MaxAtoms,
	})

	return &session{
		ctx:     ctx,
		cfg:     cfg,
		workDir: workDir,
		table:   table,
		parser:  parser,
		calc:    molarmass.NewCalculator(table),
		logger:  logger,
	}, nil
}

// batchOptions returns runner options for paths. Compound names are
// resolved when withNames is set.
func (s *session) batchOptions(paths []string, withNames bool) batch.Options {
	opts := batch.Options{
		Paths:      paths,
		WorkingDir: s.workDir,
		Patterns:   s.cfg.Batch.Patterns,
		Exclude:    s.cfg.Batch.Exclude,
		Jobs:       s.cfg.Batch.Jobs,
		Parser:     s.parser,
		Calculator: s.calc,
	}
	if withNames {
		opts.Resolver = batch.NewCachingResolver(opts)
	}
	return opts
}

// reporterOptions returns reporter options writing to w.
func (s *session) reporterOptions(w io.Writer) (reporter.Options, error) {
	format, err := reporter.ParseFormat(string(s.cfg.Format))
	if err != nil {
		return reporter.Options{}, errors.Join(errUsage, err)
	}

	opts := reporter.DefaultOptions()
	opts.Writer = w
	opts.WorkingDir = s.workDir
	opts.Format = format
	opts.Color = string(s.cfg.Color)
	opts.Precision = s.cfg.PrecisionOrDefault()
	opts.ShowBreakdown = s.cfg.BreakdownEnabled()
	opts.ShowSummary = true
	return opts, nil
}

// historyStore returns the configured history store, or nil when history
// is disabled.
func (s *session) historyStore() *history.Store {
	if !s.cfg.HistoryEnabled() {
		return nil
	}
	return history.NewStore(s.cfg.HistoryPath(), history.WithLimit(s.cfg.HistoryLimit()))
}

// record adds every valid item to the history. Failures are logged; they
// never fail the calculation.
func (s *session) record(result *batch.Result) {
	store := s.historyStore()
	if store == nil || result == nil {
		return
	}

	for _, item := range result.Items {
		if !item.Valid() {
			continue
		}
		entry, added, err := store.Add(s.ctx, item.Parse.Clean, item.Mass.TotalMass)
		if err != nil {
			s.logger.Warn("failed to record history",
				logging.FieldPath, store.Path(),
				logging.FieldError, err,
			)
			return
		}
		if added {
			s.logger.Debug("recorded calculation",
				logging.FieldEntryID, entry.ID,
				logging.FieldFormula, entry.Formula,
			)
		}
	}
}
