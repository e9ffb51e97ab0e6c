package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomolar/internal/logging"
	"github.com/yaklabco/gomolar/pkg/config"
	"github.com/yaklabco/gomolar/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gomolar configuration file",
		Long: `Create a new .gomolar.yml configuration file in the current directory.
The minimal template lists every setting commented out; the full template
sets each one to its default.

Examples:
  gomolar init                       Create minimal .gomolar.yml
  gomolar init --full                Create full config with every setting
  gomolar init --format json         Create .gomolar.json instead
  gomolar init --output custom.yml   Write to a custom file path
  gomolar init --force               Overwrite, keeping a .bak backup`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.Context(), flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every setting")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: .gomolar.yml or .gomolar.json)")

	return cmd
}

func runInit(ctx context.Context, flags *initFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", errUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		if flags.format == "json" {
			outputPath = ".gomolar.json"
		} else {
			outputPath = ".gomolar.yml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	backedUp := false
	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", errUsage, outputPath)
		}
		backedUp, err = fsutil.Backup(ctx, absPath)
		if err != nil {
			return fmt.Errorf("back up existing file: %w", err)
		}
		if backedUp {
			logger.Warn("overwriting existing file", logging.FieldPath, outputPath,
				"backup", fsutil.BackupPath(outputPath))
		}
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, configFilePermissions); err != nil {
		if backedUp {
			if _, restoreErr := fsutil.Restore(ctx, absPath); restoreErr != nil {
				logger.Error("restore backup failed", logging.FieldPath, outputPath, logging.FieldError, restoreErr)
			}
		}
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	if flags.full {
		logger.Info("full template sets every option to its default")
	}

	logger.Info("customize your configuration by editing the file")
	logger.Info("run 'gomolar elements' to see the active element table")

	return nil
}
