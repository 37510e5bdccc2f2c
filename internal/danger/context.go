package danger

// cwd is the directory context of a walk: where the shell would be after
// the commands visited so far. It is a value; changing directory returns a
// new cwd and never mutates one another scope holds. prev is the directory
// "cd -" returns to, or "" when there is none.
type cwd struct {
	path string
	prev string
}

// change returns the context after changing to operand.
func (c cwd) change(a *Analyzer, operand string) cwd {
	return cwd{path: a.resolve(c.path, operand), prev: c.path}
}

// back returns the context after "cd -". Without a previous directory the
// shell fails and stays put.
func (c cwd) back() cwd {
	if c.prev == "" {
		return c
	}
	return cwd{path: c.prev, prev: c.path}
}

// home returns the context after a bare cd, or c when no home directory is
// configured.
func (c cwd) home(a *Analyzer) cwd {
	if a.home == "" {
		return c
	}
	return c.change(a, a.home)
}
