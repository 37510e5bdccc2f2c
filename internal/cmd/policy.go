package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xdg/cmdguard/internal/danger"
	"github.com/xdg/cmdguard/internal/term"
)

var (
	policyProjectDir string
	policyListLevel  string
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Inspect the command classification tables",
	Long: `Inspect how command names are classified.

The tables are the built-in safe and unsafe sets plus any names added by the
global config and the project's .cmdguard.yaml. A name in both sets is safe.
Names in neither set are unknown.`,
}

var policyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List classified command names",
	Args:  cobra.NoArgs,
	RunE:  runPolicyList,
}

var policyClassifyCmd = &cobra.Command{
	Use:   "classify NAME...",
	Short: "Print the base level of command names",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPolicyClassify,
}

func init() {
	policyCmd.PersistentFlags().StringVar(&policyProjectDir, "project-dir", "", "Project directory (default: git root of the current directory)")
	policyListCmd.Flags().StringVar(&policyListLevel, "level", "", "Only list names at this level (safe or dangerous)")
	rootCmd.AddCommand(policyCmd)
	policyCmd.AddCommand(policyListCmd)
	policyCmd.AddCommand(policyClassifyCmd)
}

// effectivePolicy returns the policy configured for the selected project.
func effectivePolicy(cmd *cobra.Command) (*danger.Policy, error) {
	root, err := resolveRoot(cmd.Context(), policyProjectDir)
	if err != nil {
		return nil, err
	}
	cfg, err := loadEffectiveConfig(root)
	if err != nil {
		return nil, err
	}
	if p := cfg.AnalyzerOptions(homeDir()).Policy; p != nil {
		return p, nil
	}
	return danger.DefaultPolicy(), nil
}

func runPolicyList(cmd *cobra.Command, args []string) error {
	var levels []danger.Level
	switch policyListLevel {
	case "":
		levels = []danger.Level{danger.Safe, danger.Dangerous}
	case "safe", "dangerous":
		l, err := danger.ParseLevel(policyListLevel)
		if err != nil {
			return err
		}
		levels = []danger.Level{l}
	default:
		return fmt.Errorf("invalid --level %q: must be safe or dangerous", policyListLevel)
	}

	p, err := effectivePolicy(cmd)
	if err != nil {
		return err
	}

	for _, level := range levels {
		names := p.SafeNames()
		if level == danger.Dangerous {
			names = p.UnsafeNames()
		}
		for _, name := range names {
			// A name listed in both sets classifies as safe.
			if p.Classify(name) != level {
				continue
			}
			if len(levels) == 1 {
				term.Println(name)
			} else {
				term.Printf("%s\t%s\n", level, name)
			}
		}
	}
	return nil
}

func runPolicyClassify(cmd *cobra.Command, args []string) error {
	p, err := effectivePolicy(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(term.Stdout(), 0, 0, 2, ' ', 0)
	for _, name := range args {
		fmt.Fprintf(w, "%s\t%s\n", name, p.Classify(name))
	}
	return w.Flush()
}
