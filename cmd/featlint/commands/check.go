package commands

import (
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/featlint/featlint/internal/config"
	ferrors "github.com/featlint/featlint/internal/errors"
	"github.com/featlint/featlint/internal/logging"
	manifestvalidator "github.com/featlint/featlint/internal/manifest/validator"
	"github.com/featlint/featlint/internal/validator"
	"github.com/featlint/featlint/pkg/fileutil"
)

var (
	manifestPath string
	exceptions   []string
	outputFormat string
)

// successMessage is the line printed when every entry passes the policy.
const successMessage = "all workspace dependencies have default-features = false"

func init() {
	checkCmd.Flags().StringVar(&manifestPath, "manifest-path", "",
		"path to the workspace manifest (default: Cargo.toml)")
	checkCmd.Flags().StringSliceVarP(&exceptions, "exceptions", "e", nil,
		"comma-separated dependencies to exclude from the default-features check")
	checkCmd.Flags().StringVar(&outputFormat, "format", "",
		"output format: text, json, yaml (default: text)")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Ensure workspace dependencies have default-features = false",
	Long: `Check every entry in [workspace.dependencies] of a workspace manifest.

Each dependency must be declared as a table that sets
default-features = false. Bare version strings, missing flags, and
non-boolean flag values are all reported. Every offending entry is
listed in one run, in the order it appears in the manifest.

Dependencies named with --exceptions are skipped; a warning is printed
for any exception that does not appear in the table.

Exit codes:
  0 - All dependencies conform to the policy
  1 - Policy violations or a malformed manifest
  2 - Manifest could not be read`,
	Example: `  # Check ./Cargo.toml
  featlint check

  # Check a specific manifest with exceptions
  featlint check --manifest-path crates/Cargo.toml -e serde,tokio

  # JSON output for CI
  featlint check --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := loadedConfig
		if cfg == nil {
			cfg = &config.Config{ManifestPath: config.DefaultManifestPath, Format: "text"}
		}
		path := manifestPath
		if path == "" {
			path = cfg.ManifestPath
		}
		excepted := exceptions
		if !cmd.Flags().Changed("exceptions") && len(cfg.Exceptions) > 0 {
			excepted = cfg.Exceptions
		}
		format := outputFormat
		if format == "" {
			format = cfg.Format
		}
		logger := slog.Default()
		if ctx := cmd.Context(); ctx != nil {
			logger = logging.FromContext(ctx)
		}
		return runCheck(path, excepted, validator.Format(format), cmd.OutOrStdout(), logger)
	},
}

// runCheck reads the manifest at path, validates its shared dependency
// table, and writes the report to w.
func runCheck(path string, excepted []string, format validator.Format, w io.Writer, logger *slog.Logger) error {
	if !validator.ValidFormat(format) {
		return ferrors.NewUserError(
			errors.Newf("invalid output format: %q", format),
			"Valid formats: text, json, yaml")
	}

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return ferrors.NewSystemError(
			errors.Wrapf(err, "failed to read %s", path),
			"Pass --manifest-path to point at the workspace manifest")
	}
	logger.Debug("manifest read", "path", path, "bytes", len(data))

	v := manifestvalidator.New(manifestvalidator.WithExceptions(excepted))
	res, err := v.Validate(data)
	if err != nil {
		// Parse and schema failures abort before any violation list exists.
		return errors.Wrapf(err, "checking %s", path)
	}
	logger.Info("dependency table checked",
		"path", path,
		"entries", len(res.Found),
		"violations", len(res.Violations))

	result := &validator.Result{}
	for _, violation := range res.Violations {
		result.AddError(violation.Name, violation.Reason)
	}
	for _, name := range res.UnusedExceptions(excepted) {
		result.AddWarning(name, "exception not found in [workspace.dependencies]")
	}

	reporter := validator.NewReporter(w, format, validator.WithSuccessMessage(successMessage))
	if err := reporter.Report(result); err != nil {
		return err
	}

	if res.HasViolations() {
		return ferrors.NewExitError(ferrors.ErrPolicyViolation, ferrors.ExitUser)
	}
	return nil
}
