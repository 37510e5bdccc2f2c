package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xdg/cmdguard/internal/config"
	"github.com/xdg/cmdguard/internal/term"
)

var configProjectDir string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage cmdguard's configuration.

The global configuration file is stored at ~/.config/cmdguard/config.yaml
(or $XDG_CONFIG_HOME/cmdguard/config.yaml if XDG_CONFIG_HOME is set).
A project may add a .cmdguard.yaml at its root; it can only add unsafe
commands and deny patterns.

Use the subcommands to view, edit, or initialize the configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective config for the current project",
	Long: `Print the effective configuration as YAML.

The result merges the global config, the project's .cmdguard.yaml, and the
approvals remembered for the project. If no global config file exists, one
with default values is created first.`,
	RunE: runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit global config in $EDITOR",
	Long: `Open the global configuration file in your editor.

The editor is determined by the EDITOR environment variable, falling back to vi.
If the configuration file doesn't exist, a default one is created first.`,
	RunE: runConfigEdit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print config file paths",
	Long: `Print the paths of the global configuration file, the approvals file,
and the current project's configuration file.`,
	RunE: runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default config file",
	Long: `Create the default global configuration file if it doesn't exist.

This creates a fully-commented configuration file with all default values.
If the file already exists, this command does nothing.`,
	RunE: runConfigInit,
}

func init() {
	configCmd.PersistentFlags().StringVar(&configProjectDir, "project-dir", "", "Project directory (default: git root of the current directory)")
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(cmd.Context(), configProjectDir)
	if err != nil {
		return err
	}

	cfg, err := config.ResolveConfig(root)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	term.Print(string(data))
	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	if err := config.EditGlobalConfig(); err != nil {
		return fmt.Errorf("failed to edit config: %w", err)
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(cmd.Context(), configProjectDir)
	if err != nil {
		return err
	}

	term.Printf("global:    %s\n", config.GlobalConfigPath())
	term.Printf("approvals: %s\n", config.ApprovalsPath())
	term.Printf("project:   %s\n", config.ProjectConfigPath(root))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.GlobalConfigPath()

	if err := config.WriteDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	term.Printf("Config at: %s\n", path)
	return nil
}
