package danger

import (
	"maps"
	"slices"
)

// Policy is an immutable pair of command-name sets used for classification.
// A name present in both sets classifies as Safe: the safe set is checked
// first.
type Policy struct {
	safe      map[string]struct{}
	unsafe    map[string]struct{}
	changeDir map[string]struct{}
}

var defaultPolicy = NewPolicy(safeCommands, unsafeCommands, changeDirCommands)

// DefaultPolicy returns the reference policy. The returned value is shared
// and must not be modified; it has no mutating methods.
func DefaultPolicy() *Policy {
	return defaultPolicy
}

// NewPolicy builds a policy from name lists.
func NewPolicy(safe, unsafe, changeDir []string) *Policy {
	return &Policy{
		safe:      toSet(safe),
		unsafe:    toSet(unsafe),
		changeDir: toSet(changeDir),
	}
}

// With returns a copy of p extended with extra names. A name added as
// unsafe is also removed from the safe set, so configuration can tighten a
// name the reference tables treat as safe.
func (p *Policy) With(safe, unsafe []string) *Policy {
	next := &Policy{
		safe:      maps.Clone(p.safe),
		unsafe:    maps.Clone(p.unsafe),
		changeDir: p.changeDir,
	}
	for _, name := range safe {
		next.safe[name] = struct{}{}
	}
	for _, name := range unsafe {
		next.unsafe[name] = struct{}{}
		delete(next.safe, name)
	}
	return next
}

// Classify returns the base level for a command name. It looks at the name
// only, never at flags or arguments.
func (p *Policy) Classify(name string) Level {
	if _, ok := p.safe[name]; ok {
		return Safe
	}
	if _, ok := p.unsafe[name]; ok {
		return Dangerous
	}
	return Unknown
}

// IsChangeDir reports whether name changes the working directory.
func (p *Policy) IsChangeDir(name string) bool {
	_, ok := p.changeDir[name]
	return ok
}

// SafeNames returns the safe set, sorted.
func (p *Policy) SafeNames() []string {
	return slices.Sorted(maps.Keys(p.safe))
}

// UnsafeNames returns the unsafe set, sorted.
func (p *Policy) UnsafeNames() []string {
	return slices.Sorted(maps.Keys(p.unsafe))
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
