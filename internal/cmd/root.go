// Package cmd implements the CLI commands for cmdguard.
package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/xdg/cmdguard/internal/clog"
	"github.com/xdg/cmdguard/internal/term"
	"github.com/xdg/cmdguard/internal/version"
)

var (
	debugFlag  bool
	silentFlag bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cmdguard",
	Short: "Static danger analysis for shell command lines",
	Long: `Cmdguard assesses a shell command line before an AI coding agent runs it.

It parses the line, follows cd across compound commands, resolves every
path a command would touch, and rates the line safe, unknown, dangerous, or
destructive. Destructive means a dangerous command reaches outside the
project directory. The check command turns that rating into allow, confirm,
or block and reports it through its exit status.`,
	Version:           version.Get(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupOutput,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Log analysis details to stderr")
	rootCmd.PersistentFlags().BoolVar(&silentFlag, "silent", false, "Suppress normal output; rely on exit status")
}

// setupOutput applies the global flags before any subcommand runs.
func setupOutput(cmd *cobra.Command, args []string) error {
	term.SetSilent(silentFlag)
	term.SetColor(term.ColorSupported(os.Stdout))
	if debugFlag {
		return clog.Configure("", clog.LevelDebug, true)
	}
	return nil
}

// Execute runs the root command and returns any error. Errors other than
// exit codes are reported on stderr.
func Execute(ctx context.Context) error {
	defer func() { _ = clog.Close() }()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		var exitErr *ExitCodeError
		if !errors.As(err, &exitErr) {
			term.Error("%v", err)
		}
	}
	return err
}
