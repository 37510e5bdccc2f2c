package danger

import (
	"cmp"
	"slices"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// walker performs one depth-first, pre-order traversal of a parsed command
// line. Directory context is passed by value and returned, never stored, so
// a scope only sees changes made before it in the same scope.
type walker struct {
	a    *Analyzer
	src  string
	root string

	yield      func(Atom) bool
	invocation func(Invocation)
	done       bool
}

// stmts walks a sequence of statements left to right, threading dir.
// A background statement runs in a child scope.
func (w *walker) stmts(list []*syntax.Stmt, dir cwd) cwd {
	for _, s := range list {
		if w.done {
			break
		}
		next := w.stmt(s, dir)
		if !s.Background {
			dir = next
		}
	}
	return dir
}

// stmt walks one statement and returns the context it leaves behind.
//
// Subshells, pipeline elements, coprocesses and function bodies run in a
// child scope: their directory changes are discarded. Lists, groups and
// the bodies of if, while, for and case run in the enclosing scope.
func (w *walker) stmt(s *syntax.Stmt, dir cwd) cwd {
	if s == nil || w.done {
		return dir
	}
	entry := dir

	switch c := s.Cmd.(type) {
	case *syntax.CallExpr:
		// Redirects are interleaved with arguments in source order.
		return w.call(s, c, dir)
	case *syntax.BinaryCmd:
		if c.Op == syntax.Pipe || c.Op == syntax.PipeAll {
			w.stmt(c.X, dir)
			w.stmt(c.Y, dir)
		} else {
			dir = w.stmt(c.X, dir)
			dir = w.stmt(c.Y, dir)
		}
	case *syntax.Subshell:
		w.stmts(c.Stmts, dir)
	case *syntax.Block:
		dir = w.stmts(c.Stmts, dir)
	case *syntax.IfClause:
		for clause := c; clause != nil; clause = clause.Else {
			dir = w.stmts(clause.Cond, dir)
			dir = w.stmts(clause.Then, dir)
		}
	case *syntax.WhileClause:
		dir = w.stmts(c.Cond, dir)
		dir = w.stmts(c.Do, dir)
	case *syntax.ForClause:
		if c.Loop != nil {
			w.nested(c.Loop, dir)
		}
		dir = w.stmts(c.Do, dir)
	case *syntax.CaseClause:
		if c.Word != nil {
			w.nested(c.Word, dir)
		}
		for _, item := range c.Items {
			for _, pattern := range item.Patterns {
				w.nested(pattern, dir)
			}
			dir = w.stmts(item.Stmts, dir)
		}
	case *syntax.FuncDecl:
		w.stmt(c.Body, dir)
	case *syntax.TimeClause:
		dir = w.stmt(c.Stmt, dir)
	case *syntax.CoprocClause:
		w.stmt(c.Stmt, dir)
	case nil:
		// Redirects only, e.g. "> file".
	default:
		// Declarations, tests and arithmetic: only nested substitutions matter.
		w.nested(c, dir)
	}

	if len(s.Redirs) > 0 {
		name := w.invocationName(s)
		for _, r := range s.Redirs {
			w.redirect(name, r, entry)
		}
	}
	return dir
}

// call walks a simple command.
func (w *walker) call(s *syntax.Stmt, c *syntax.CallExpr, dir cwd) cwd {
	for _, as := range c.Assigns {
		w.nested(as, dir)
	}
	name := w.invocationName(s)
	if len(c.Args) == 0 {
		for _, r := range s.Redirs {
			w.redirect(name, r, dir)
		}
		return dir
	}

	head := c.Args[0]
	w.nested(head, dir)
	command := commandName(wordText(w.src, head))
	level := w.a.policy.Classify(command)
	changeDir := w.a.policy.IsChangeDir(command)
	if !changeDir && w.invocation != nil {
		w.invocation(Invocation{Name: name, Command: command, Level: level})
	}

	// The shell opens redirects before a cd runs, so they resolve against
	// the directory the statement started in.
	entry := dir
	operands := 0
	for _, it := range orderedItems(c.Args[1:], s.Redirs) {
		if w.done {
			return dir
		}
		if it.redir != nil {
			w.redirect(name, it.redir, entry)
			continue
		}

		word := it.word
		w.nested(word, dir)
		if substitutionOnly(word) {
			// A cd to a computed directory goes somewhere unknown; keep
			// the current context rather than guess.
			if changeDir {
				operands++
			}
			continue
		}
		text := wordText(w.src, word)
		if changeDir && text == "-" {
			dir = dir.back()
			operands++
			continue
		}
		if isFlag(text) {
			continue
		}
		if changeDir {
			dir = dir.change(w.a, text)
			operands++
			continue
		}

		target := w.a.resolve(dir.path, text)
		w.emit(Atom{Name: name, Level: escalate(level, target, w.root), Path: target})
	}

	if changeDir && operands == 0 {
		dir = dir.home(w.a)
	}
	return dir
}

// redirect emits an atom for a redirection that writes to a file. The write
// itself is the effect, so its base level is Dangerous whatever the command.
func (w *walker) redirect(name string, r *syntax.Redirect, dir cwd) {
	if r.Word != nil {
		w.nested(r.Word, dir)
	}
	if r.Hdoc != nil {
		w.nested(r.Hdoc, dir)
	}
	if w.a.ignoreRedirects || r.Word == nil || substitutionOnly(r.Word) {
		return
	}

	text := wordText(w.src, r.Word)
	switch r.Op {
	case syntax.RdrOut, syntax.AppOut, syntax.ClbOut, syntax.RdrInOut, syntax.RdrAll, syntax.AppAll:
	case syntax.DplOut:
		if isFileDescriptor(text) {
			return
		}
	default:
		return
	}
	if text == "" || isDeviceTarget(text) {
		return
	}

	target := w.a.resolve(dir.path, text)
	w.emit(Atom{Name: name, Level: escalate(Dangerous, target, w.root), Path: target})
}

// nested walks every command or process substitution inside node. Each runs
// in a child scope of dir.
func (w *walker) nested(node syntax.Node, dir cwd) {
	if w.done {
		return
	}
	syntax.Walk(node, func(n syntax.Node) bool {
		if w.done {
			return false
		}
		switch n := n.(type) {
		case *syntax.CmdSubst:
			w.stmts(n.Stmts, dir)
			return false
		case *syntax.ProcSubst:
			w.stmts(n.Stmts, dir)
			return false
		}
		return true
	})
}

func (w *walker) emit(a Atom) {
	if w.done {
		return
	}
	if !w.yield(a) {
		w.done = true
	}
}

// invocationName returns the source text of a statement's command and its
// redirects, without a trailing separator.
func (w *walker) invocationName(s *syntax.Stmt) string {
	start, end := -1, -1
	extend := func(n syntax.Node) {
		from, to := int(n.Pos().Offset()), int(n.End().Offset())
		if start < 0 || from < start {
			start = from
		}
		if to > end {
			end = to
		}
	}
	if s.Cmd != nil {
		extend(s.Cmd)
	}
	for _, r := range s.Redirs {
		extend(r)
	}
	if start < 0 || end > len(w.src) || start > end {
		return ""
	}
	return strings.TrimSpace(w.src[start:end])
}

// item is an argument word or a redirect, in source order.
type item struct {
	offset uint
	word   *syntax.Word
	redir  *syntax.Redirect
}

func orderedItems(words []*syntax.Word, redirs []*syntax.Redirect) []item {
	items := make([]item, 0, len(words)+len(redirs))
	for _, word := range words {
		items = append(items, item{offset: word.Pos().Offset(), word: word})
	}
	for _, r := range redirs {
		items = append(items, item{offset: r.Pos().Offset(), redir: r})
	}
	slices.SortStableFunc(items, func(a, b item) int {
		return cmp.Compare(a.offset, b.offset)
	})
	return items
}
