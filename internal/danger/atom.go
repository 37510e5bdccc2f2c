package danger

// Atom is one assessed effect: a command invocation applied to one path.
// A command with several path arguments yields one Atom per argument.
type Atom struct {
	// Name is the source text of the whole enclosing invocation, e.g. "rm -rf build".
	Name string `json:"name"`
	// Level is the command's level, escalated for this path if needed.
	Level Level `json:"level"`
	// Path is the absolute, resolved target. It need not exist.
	Path string `json:"path"`
}

// Invocation records a simple command visited during a walk and its base
// level before any path escalation. A dangerous invocation with no path
// arguments produces no Atom, so callers that gate execution must consult
// invocations as well.
type Invocation struct {
	// Name is the source text of the invocation.
	Name string `json:"name"`
	// Command is the command word as it was classified.
	Command string `json:"command"`
	// Level is the base classification.
	Level Level `json:"level"`
}

// Report is the full result of analyzing one command line.
type Report struct {
	ProjectRoot string       `json:"project_root"`
	Atoms       []Atom       `json:"atoms"`
	Invocations []Invocation `json:"invocations"`
}

// MaxLevel returns the highest level among atoms and invocations.
// An empty report is Safe.
func (r *Report) MaxLevel() Level {
	level := Safe
	for _, a := range r.Atoms {
		level = max(level, a.Level)
	}
	for _, inv := range r.Invocations {
		level = max(level, inv.Level)
	}
	return level
}

// Worst returns the first atom with the highest level, or false if there are
// no atoms.
func (r *Report) Worst() (Atom, bool) {
	if len(r.Atoms) == 0 {
		return Atom{}, false
	}
	worst := r.Atoms[0]
	for _, a := range r.Atoms[1:] {
		if a.Level > worst.Level {
			worst = a
		}
	}
	return worst, true
}
