package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/xdg/cmdguard/internal/audit"
	"github.com/xdg/cmdguard/internal/clog"
	"github.com/xdg/cmdguard/internal/config"
	"github.com/xdg/cmdguard/internal/danger"
	"github.com/xdg/cmdguard/internal/gate"
	"github.com/xdg/cmdguard/internal/project"
	"github.com/xdg/cmdguard/internal/term"
)

// checker analyzes and gates command lines for one project. It is safe for
// concurrent use.
type checker struct {
	root     string
	analyzer *danger.Analyzer
	gate     *gate.Gate
	audit    *audit.Logger
}

// checkResult is the outcome for one command line. Exactly one of Decision
// and Err is set.
type checkResult struct {
	ID   string `json:"id"`
	Line string `json:"line"`
	*gate.Decision
	*danger.Report
	Error string `json:"error,omitempty"`

	err error
}

// code returns the exit code for the result.
func (r *checkResult) code() int {
	if r.err != nil {
		return ExitError
	}
	return exitCode(r.Action)
}

// resolveRoot returns the project root for dir.
func resolveRoot(ctx context.Context, dir string) (string, error) {
	root, err := project.Root(ctx, dir)
	if err != nil {
		if gitErr := gitDetectionError(err); gitErr != nil {
			return "", gitErr
		}
		return "", err
	}
	return root, nil
}

// loadEffectiveConfig resolves the configuration for root and points
// operational logging at the configured file.
func loadEffectiveConfig(root string) (*config.EffectiveConfig, error) {
	cfg, err := config.ResolveConfig(root)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := clog.ParseLevel(cfg.LogLevel)
	if debugFlag {
		level = clog.LevelDebug
	}
	if err := clog.Configure(cfg.LogFile, level, debugFlag); err != nil {
		term.Warn("operational log disabled: %v", err)
	}
	return cfg, nil
}

// homeDir returns the user's home directory, or "" if it is unknown.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		clog.Debug("no home directory: %v", err)
		return ""
	}
	return home
}

// newChecker builds a checker for root from its effective configuration.
func newChecker(root string) (*checker, error) {
	cfg, err := loadEffectiveConfig(root)
	if err != nil {
		return nil, err
	}

	gateCfg, err := cfg.GateConfig()
	if err != nil {
		return nil, err
	}

	c := &checker{
		root:     root,
		analyzer: danger.New(cfg.AnalyzerOptions(homeDir())),
		gate:     gate.New(gateCfg),
	}

	if cfg.AuditEnabled {
		logger, err := audit.OpenFile(cfg.AuditFile)
		if err != nil {
			clog.Warn("audit log disabled: %v", err)
		} else {
			c.audit = logger
		}
	}
	return c, nil
}

// close releases the audit log.
func (c *checker) close() {
	if err := c.audit.Close(); err != nil {
		clog.Warn("close audit log: %v", err)
	}
}

// check analyzes and gates one line, recording the outcome in the audit log.
func (c *checker) check(line string) *checkResult {
	res := &checkResult{ID: audit.NewID(), Line: line}

	start := time.Now()
	report, err := c.analyzer.Report(c.root, line)
	elapsed := time.Since(start)
	if err != nil {
		res.err = analysisError(err)
		res.Error = res.err.Error()
		clog.Info("check %s: %v", res.ID, res.err)
		c.logAudit(c.audit.LogError(res.ID, c.root, line, res.err))
		return res
	}

	d := c.gate.Decide(line, report)
	res.Decision = &d
	res.Report = report
	clog.Debug("check %s: %s (%s) in %s", res.ID, d.Action, d.Level, elapsed)
	c.logAudit(c.audit.LogDecision(res.ID, c.root, line, d, elapsed))
	return res
}

func (c *checker) logAudit(err error) {
	if err != nil {
		clog.Warn("audit: %v", err)
	}
}
