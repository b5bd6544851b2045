package svgsizecheck

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/grafana/svgsizecheck/pkg/analysis"
	"github.com/grafana/svgsizecheck/pkg/analysis/output"
	"github.com/grafana/svgsizecheck/pkg/analysis/passes"
	"github.com/grafana/svgsizecheck/pkg/archivetool"
	"github.com/grafana/svgsizecheck/pkg/logme"
	"github.com/grafana/svgsizecheck/pkg/runner"
)

// exitError is returned when the check itself worked but found problems.
type exitError struct{ code int }

func (e exitError) Error() string {
	return fmt.Sprintf("check failed (exit %d)", e.code)
}

// ExitCode extracts the exit code from an error returned by Execute.
// Returns -1 if the error does not carry one.
func ExitCode(err error) int {
	var ee exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return -1
}

type flags struct {
	config       string
	strict       bool
	jsonOutput   bool
	ghaOutput    bool
	debug        bool
	maxSizeRatio float64
	ignorePaths  []string
}

// NewCommand builds the root command. Reports go to stdout, everything else
// to stderr.
func NewCommand(stdout, stderr io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "svgsizecheck [flags] <dir|archive.zip|url>",
		Short: "Find oversized base64 images embedded in SVG files",
		Long: "Checks every SVG file under the target and reports embedded data:image " +
			"images whose declared width or height is larger than the SVG itself times maxSizeRatio.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], f, stdout, stderr)
		},
	}

	cmd.Flags().StringVarP(&f.config, "config", "c", "", "Path to configuration file (yaml, json or jsonc)")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "If set, returns non-zero exit code for warnings")
	cmd.Flags().BoolVar(&f.jsonOutput, "json", false, "Print diagnostics as JSON")
	cmd.Flags().BoolVar(&f.ghaOutput, "gha", false, "Print diagnostics as GitHub Actions annotations")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "Print debug output, same as DEBUG=1")
	cmd.Flags().Float64Var(&f.maxSizeRatio, "max-size-ratio", 0, "Overrides maxSizeRatio of the svgsize analyzer (default 2)")
	cmd.Flags().StringArrayVar(&f.ignorePaths, "ignore", nil, "Path pattern to skip, '*' matches anything. Can be repeated")

	return cmd
}

func run(cmd *cobra.Command, target string, f flags, stdout, stderr io.Writer) error {
	if f.debug {
		logme.SetDebug(true)
	}

	logme.Debugln("strict mode: ", f.strict)
	logme.Debugln("config file: ", f.config)
	logme.Debugln("target: ", target)

	if cmd.Flags().Changed("max-size-ratio") && f.maxSizeRatio <= 0 {
		return fmt.Errorf("--max-size-ratio must be a positive number, got %v", f.maxSizeRatio)
	}

	cfg := runner.DefaultConfig()
	if f.config != "" {
		var err error
		cfg, err = runner.ReadConfigFile(f.config)
		if err != nil {
			return fmt.Errorf("couldn't read configuration: %w", err)
		}
	}
	if f.jsonOutput {
		cfg.Global.JSONOutput = true
	}
	if f.ghaOutput {
		cfg.Global.GHAOutput = true
	}

	targetDir, cleanup, err := archivetool.ResolveTarget(target)
	if err != nil {
		return fmt.Errorf("couldn't read target: %w", err)
	}
	defer cleanup()

	diags, err := runner.Check(passes.Analyzers, analysis.CheckParams{
		Target:       target,
		TargetDir:    targetDir,
		MaxSizeRatio: f.maxSizeRatio,
		IgnorePaths:  f.ignorePaths,
	}, cfg, "")
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	var (
		marshaler output.Marshaler = output.MarshalCLI
		out                        = stderr
	)
	switch {
	case cfg.Global.JSONOutput:
		marshaler, out = output.NewJSONMarshaler(target), stdout
	case cfg.Global.GHAOutput:
		marshaler, out = output.MarshalGHA, stdout
	}

	b, err := marshaler.Marshal(diags)
	if err != nil {
		return err
	}
	if _, err := out.Write(b); err != nil {
		return err
	}
	if cfg.Global.JSONOutput {
		fmt.Fprintln(out)
	}

	if code := output.ExitCode(f.strict, diags); code != 0 {
		return exitError{code: code}
	}
	return nil
}

// Execute runs the command with the process arguments.
func Execute() error {
	return NewCommand(os.Stdout, os.Stderr).Execute()
}
