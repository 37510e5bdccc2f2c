package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/xdg/cmdguard/internal/clog"
	"github.com/xdg/cmdguard/internal/config"
	"github.com/xdg/cmdguard/internal/danger"
	"github.com/xdg/cmdguard/internal/gate"
	"github.com/xdg/cmdguard/internal/prompt"
	"github.com/xdg/cmdguard/internal/term"
)

var (
	checkProjectDir string
	checkJSON       bool
	checkConfirm    bool
	checkStdin      bool
	checkJobs       int
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [--] COMMAND-LINE",
	Short: "Check a command line and report allow, confirm, or block",
	Long: `Analyze a shell command line and gate it.

The exit status carries the decision:
  0  allow
  1  error (the line could not be analyzed; treat as block)
  2  confirm
  3  block

Arguments are joined with spaces, so quote the line or put it after --.
With --confirm, a confirm decision prompts on the terminal and exits 0 if the
user approves it or 3 if the user declines. With --stdin, one command line is
read per input line and the exit status is the most severe result.`,
	Example: `  cmdguard check 'rm -rf build'
  cmdguard check --json -- git clean -fdx
  printf '%s\n' 'ls' 'rm /etc/hosts' | cmdguard check --stdin`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkProjectDir, "project-dir", "", "Project directory (default: git root of the current directory)")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Print the full report as JSON")
	checkCmd.Flags().BoolVar(&checkConfirm, "confirm", false, "Prompt instead of exiting 2 when confirmation is needed")
	checkCmd.Flags().BoolVar(&checkStdin, "stdin", false, "Read command lines from stdin, one per line")
	checkCmd.Flags().IntVar(&checkJobs, "jobs", runtime.GOMAXPROCS(0), "Lines analyzed in parallel with --stdin")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	switch {
	case checkStdin && len(args) > 0:
		return errors.New("--stdin does not take a command line argument")
	case checkStdin && checkConfirm:
		return errors.New("--confirm cannot be used with --stdin")
	case !checkStdin && len(args) == 0:
		return errors.New("a command line is required")
	case checkJobs < 1:
		return fmt.Errorf("--jobs must be at least 1, got %d", checkJobs)
	}

	root, err := resolveRoot(cmd.Context(), checkProjectDir)
	if err != nil {
		return err
	}

	c, err := newChecker(root)
	if err != nil {
		return err
	}
	defer c.close()

	if checkStdin {
		return checkBatch(cmd.Context(), c, cmd.InOrStdin())
	}

	res := c.check(strings.Join(args, " "))
	if err := printResult(res); err != nil {
		return err
	}
	if res.err != nil {
		return res.err
	}

	if res.Action == gate.Confirm && checkConfirm {
		return confirm(cmd, c, res)
	}
	return exitError(res.code())
}

// confirm asks the user about a confirm decision and returns the exit
// status for the answer.
func confirm(cmd *cobra.Command, c *checker, res *checkResult) error {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && !prompt.IsInteractive(f) {
		term.Warn("stdin is not a terminal; not prompting")
		return exitError(ExitConfirm)
	}

	p := prompt.NewStdinPrompter(in, cmd.ErrOrStderr())
	answer, err := prompt.Confirm(p, res.Line, res.Reason)
	if err != nil {
		term.Warn("confirmation failed: %v", err)
	}

	approved := answer != prompt.Decline
	c.logAudit(c.audit.LogConfirmation(res.ID, c.root, res.Line, approved))

	if answer == prompt.ApproveAlways {
		if err := config.RememberApproval(c.root, res.Line); err != nil {
			term.Warn("could not remember approval: %v", err)
		} else {
			clog.Info("remembered approval for %q in %s", res.Line, c.root)
		}
	}

	if approved {
		return nil
	}
	return exitError(ExitBlock)
}

// checkBatch checks every non-blank line of r in parallel and prints the
// results in input order.
func checkBatch(ctx context.Context, c *checker, r io.Reader) error {
	lines, err := readLines(r)
	if err != nil {
		return err
	}

	results := make([]*checkResult, len(lines))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(checkJobs)
	for i, line := range lines {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = c.check(line)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	worst := ExitAllow
	for _, res := range results {
		if err := printBatchResult(res); err != nil {
			return err
		}
		if code := res.code(); severity(code) > severity(worst) {
			worst = code
		}
	}
	return exitError(worst)
}

// readLines returns the non-blank lines of r without their line endings.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if trimmed := strings.TrimRight(line, "\r\n"); strings.TrimSpace(trimmed) != "" {
			lines = append(lines, trimmed)
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
	}
}

// printResult prints a single-line result, as JSON or as a decision line
// followed by a table of atoms.
func printResult(res *checkResult) error {
	if checkJSON {
		return printJSON(res)
	}
	if res.err != nil {
		// The error itself is reported by Execute.
		return nil
	}

	term.Printf("%s (%s): %s\n", paintAction(res.Action), res.Level, res.Reason)
	if len(res.Atoms) == 0 {
		return nil
	}

	w := tabwriter.NewWriter(term.Stdout(), 0, 0, 2, ' ', 0)
	for _, a := range res.Atoms {
		fmt.Fprintf(w, "  %s  %s\t%s\n", paintLevel(a.Level), a.Path, a.Name)
	}
	return w.Flush()
}

// printBatchResult prints one result of a batch as a JSON line or a
// tab-separated row.
func printBatchResult(res *checkResult) error {
	if checkJSON {
		return printJSON(res)
	}
	if res.err != nil {
		term.Printf("error\t-\t%s\t%v\n", res.Line, res.err)
		return nil
	}
	term.Printf("%s\t%s\t%s\n", res.Action, res.Level, res.Line)
	return nil
}

func printJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}
	term.Println(string(data))
	return nil
}

func paintAction(a gate.Action) string {
	switch a {
	case gate.Allow:
		return term.Paint(term.Green, a.String())
	case gate.Confirm:
		return term.Paint(term.Yellow, a.String())
	default:
		return term.Paint(term.Red, a.String())
	}
}

// paintLevel pads the level name to a fixed width before coloring it so
// escape sequences do not skew the table.
func paintLevel(l danger.Level) string {
	s := fmt.Sprintf("%-11s", l)
	switch l {
	case danger.Safe:
		return term.Paint(term.Green, s)
	case danger.Unknown:
		return s
	case danger.Dangerous:
		return term.Paint(term.Yellow, s)
	default:
		return term.Paint(term.Red, s)
	}
}
