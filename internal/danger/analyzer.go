package danger

import (
	"fmt"
	"iter"
	"path/filepath"
	"slices"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/xdg/cmdguard/internal/clog"
	"github.com/xdg/cmdguard/internal/pathutil"
)

const (
	// DefaultMaxInputBytes bounds the length of an analyzed command line.
	DefaultMaxInputBytes = 64 * 1024
	// DefaultMaxDepth bounds how deeply the syntax tree may nest.
	DefaultMaxDepth = 200
)

// Options configures an Analyzer. The zero value selects the reference
// policy, tracks redirects, expands no ~, and uses the default limits.
type Options struct {
	// Policy classifies command names. Nil means DefaultPolicy().
	Policy *Policy
	// HomeDir is used to expand ~ and as the target of a bare cd.
	// Empty disables both.
	HomeDir string
	// IgnoreRedirects disables atoms for output redirection targets.
	IgnoreRedirects bool
	// MaxInputBytes limits the command line length. Zero means DefaultMaxInputBytes.
	MaxInputBytes int
	// MaxDepth limits syntax tree nesting. Zero means DefaultMaxDepth.
	MaxDepth int
}

// Analyzer assesses command lines. It holds no per-call state and is safe
// for concurrent use.
type Analyzer struct {
	policy          *Policy
	home            string
	ignoreRedirects bool
	maxInputBytes   int
	maxDepth        int
}

// New creates an Analyzer.
func New(opts Options) *Analyzer {
	a := &Analyzer{
		policy:          opts.Policy,
		ignoreRedirects: opts.IgnoreRedirects,
		maxInputBytes:   opts.MaxInputBytes,
		maxDepth:        opts.MaxDepth,
	}
	if a.policy == nil {
		a.policy = DefaultPolicy()
	}
	if opts.HomeDir != "" {
		a.home = pathutil.Resolve(opts.HomeDir)
	}
	if a.maxInputBytes <= 0 {
		a.maxInputBytes = DefaultMaxInputBytes
	}
	if a.maxDepth <= 0 {
		a.maxDepth = DefaultMaxDepth
	}
	return a
}

var defaultAnalyzer = New(Options{})

// Analyze analyzes commandLine against projectDir using the reference policy.
func Analyze(projectDir, commandLine string) ([]Atom, error) {
	return defaultAnalyzer.Analyze(projectDir, commandLine)
}

// Policy returns the analyzer's policy.
func (a *Analyzer) Policy() *Policy {
	return a.policy
}

// Atoms returns the atoms of commandLine in document order. The line is
// parsed and checked against the limits before Atoms returns, so a non-nil
// error means no atom was produced. The sequence may be iterated more than
// once and yields the same atoms each time.
func (a *Analyzer) Atoms(projectDir, commandLine string) (iter.Seq[Atom], error) {
	root, file, err := a.prepare(projectDir, commandLine)
	if err != nil {
		return nil, err
	}
	return func(yield func(Atom) bool) {
		w := &walker{a: a, src: commandLine, root: root, yield: yield}
		w.stmts(file.Stmts, cwd{path: root})
	}, nil
}

// Analyze returns all atoms of commandLine in document order.
func (a *Analyzer) Analyze(projectDir, commandLine string) ([]Atom, error) {
	seq, err := a.Atoms(projectDir, commandLine)
	if err != nil {
		return nil, err
	}
	return slices.Collect(seq), nil
}

// Report returns the atoms and invocations of commandLine.
func (a *Analyzer) Report(projectDir, commandLine string) (*Report, error) {
	root, file, err := a.prepare(projectDir, commandLine)
	if err != nil {
		return nil, err
	}

	r := &Report{ProjectRoot: root, Atoms: []Atom{}, Invocations: []Invocation{}}
	w := &walker{
		a:    a,
		src:  commandLine,
		root: root,
		yield: func(atom Atom) bool {
			r.Atoms = append(r.Atoms, atom)
			return true
		},
		invocation: func(inv Invocation) {
			r.Invocations = append(r.Invocations, inv)
		},
	}
	w.stmts(file.Stmts, cwd{path: root})

	clog.Debug("danger: %q: %d atoms, %d invocations, max level %s",
		commandLine, len(r.Atoms), len(r.Invocations), r.MaxLevel())
	return r, nil
}

// prepare resolves the project root, enforces the limits and parses.
func (a *Analyzer) prepare(projectDir, commandLine string) (string, *syntax.File, error) {
	if len(commandLine) > a.maxInputBytes {
		return "", nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrInputTooLong, len(commandLine), a.maxInputBytes)
	}

	if projectDir == "" {
		projectDir = "."
	}
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return "", nil, fmt.Errorf("resolve project dir %q: %w", projectDir, err)
	}
	root := pathutil.Resolve(abs)

	parser := syntax.NewParser(syntax.KeepComments(false), syntax.Variant(syntax.LangBash))
	file, err := parser.Parse(strings.NewReader(commandLine), "")
	if err != nil {
		return "", nil, newParseError(err)
	}

	if !withinDepth(file, a.maxDepth) {
		return "", nil, fmt.Errorf("%w: limit is %d", ErrNestingTooDeep, a.maxDepth)
	}
	return root, file, nil
}

// withinDepth reports whether the syntax tree of f nests no deeper than
// limit. It stops at the first node past the limit.
func withinDepth(f *syntax.File, limit int) bool {
	depth, exceeded := 0, false
	syntax.Walk(f, func(n syntax.Node) bool {
		if n == nil {
			depth--
			return true
		}
		if exceeded {
			return false
		}
		depth++
		if depth > limit {
			exceeded = true
			depth--
			return false
		}
		return true
	})
	return !exceeded
}
