// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"uvs-cli/internal/config"
	"uvs-cli/internal/issue"
	"uvs-cli/internal/runner"
	"uvs-cli/pkg/uvsfile"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose prints commands before executing them
	verbose bool
	// listFlag lists available scripts instead of running one
	listFlag bool
	// noEditable ignores editable installs from pyproject.toml
	noEditable bool
	// noFeatures ignores features (extras) from pyproject.toml
	noFeatures bool
	// pyprojectPath allows specifying an explicit pyproject.toml
	pyprojectPath string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "uvs [script] [args...]",
		Short: "Run scripts defined in [tool.uvs.scripts] via uv run",
		Long: TitleStyle.Render("uvs") + SubtitleStyle.Render(" - a task runner for uv projects") + `

uvs reads named scripts from the [tool.uvs] table of your pyproject.toml
and executes them through 'uv run'. Scripts can be single commands or
composite lists that chain other scripts by name.

` + SubtitleStyle.Render("Examples:") + `
  uvs --list                List available scripts
  uvs test                  Run the 'test' script
  uvs test -- -k foo        Forward extra arguments to the last step
  uvs -v check              Echo each command before it runs`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		RunE:              runRoot,
		ValidArgsFunction: completeScripts,
	}
)

func init() {
	// Everything after the script name is forwarded verbatim, including
	// flag-shaped arguments.
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.Flags().BoolVarP(&listFlag, "list", "l", false, "list available scripts")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print commands before executing")
	rootCmd.Flags().BoolVar(&noEditable, "no-editable", false, "ignore editable installs from config")
	rootCmd.Flags().BoolVar(&noFeatures, "no-features", false, "ignore features (extras) from config")
	rootCmd.Flags().StringVar(&pyprojectPath, "pyproject", "", "path to pyproject.toml (default: walk up from the current directory)")

	rootCmd.AddCommand(newCompletionCommand())
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command through fang and maps ExitError to the
// process exit code. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// launchOverride, when non-nil, replaces the runner's default os/exec spawn
// path. Tests set it to record invocations without executing anything.
var launchOverride runner.Launcher

// runRoot dispatches the bare `uvs` invocation: list scripts, or resolve and
// execute the named one with any trailing arguments forwarded.
func runRoot(cmd *cobra.Command, args []string) error {
	stderr := cmd.ErrOrStderr()
	logger := log.NewWithOptions(stderr, log.Options{ReportTimestamp: false})

	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "%s failed to load settings: %v\n", WarningStyle.Render("Warning:"), err)
		settings = config.DefaultSettings()
	}
	echoVerbose := verbose || settings.Verbose
	if echoVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	if len(args) == 0 && !listFlag {
		_ = cmd.Help()
		return &ExitError{Code: 1}
	}

	file, err := loadProject()
	if err != nil {
		fmt.Fprintf(stderr, "%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, echoVerbose))
		return &ExitError{Code: 1, Err: err}
	}
	logger.Debug("loaded scripts", "pyproject", file.Path, "count", len(file.Scripts))

	if listFlag {
		return listScripts(cmd.OutOrStdout(), file)
	}

	name, extraArgs := args[0], args[1:]
	// Interspersed parsing is off, so a "--" separator after the script name
	// is not consumed by flag parsing. Drop it; everything after is forwarded.
	if len(extraArgs) > 0 && extraArgs[0] == "--" {
		extraArgs = extraArgs[1:]
	}
	script, ok := file.Scripts[name]
	if !ok {
		fmt.Fprintf(stderr, "%s unknown script %q\n", ErrorStyle.Render("Error:"), name)
		fmt.Fprintf(stderr, "Available scripts: %s\n", strings.Join(file.Scripts.Names(), ", "))
		return &ExitError{Code: 1, Err: fmt.Errorf("unknown script %q", name)}
	}

	editable := file.Editable
	if noEditable || settings.NoEditable {
		editable = nil
	}
	features := file.Features
	if noFeatures || settings.NoFeatures {
		features = nil
	}

	r := &runner.Runner{
		Launcher: launchOverride,
		Diag:     stderr,
		Verbose:  echoVerbose,
		Editable: editable,
		Features: features,
	}
	code, err := r.Run(cmd.Context(), script, file.Scripts, extraArgs)
	if err != nil {
		fmt.Fprintf(stderr, "%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, echoVerbose))
		return &ExitError{Code: 1, Err: err}
	}
	if !code.IsSuccess() {
		return &ExitError{Code: code}
	}
	return nil
}

// loadProject locates and parses the pyproject.toml, honoring the
// --pyproject flag before walk-up discovery.
func loadProject() (*uvsfile.File, error) {
	path := pyprojectPath
	if path == "" {
		found, err := uvsfile.Find("")
		if err != nil {
			return nil, err
		}
		path = found
	}
	return uvsfile.Load(path)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// completeScripts offers script names for shell completion of the first
// positional argument.
func completeScripts(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	file, err := loadProject()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	completions := make([]string, 0, len(file.Scripts))
	for _, name := range file.Scripts.Names() {
		completions = append(completions, name+"\t"+file.Scripts[name].Summary())
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
