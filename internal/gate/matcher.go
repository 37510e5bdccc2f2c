package gate

import (
	"regexp"

	"github.com/xdg/cmdguard/internal/clog"
)

// compiledPattern holds a compiled regex and its original pattern string.
type compiledPattern struct {
	regex   *regexp.Regexp
	pattern string
}

// Match is the outcome of checking a line against the pattern lists.
type Match struct {
	Deny    bool   // true if a deny pattern matched
	Allow   bool   // true if an allow pattern matched and no deny pattern did
	Pattern string // the pattern that matched (empty if none)
}

// RegexMatcher checks command lines against deny patterns first, then allow
// patterns.
type RegexMatcher struct {
	deny  []compiledPattern
	allow []compiledPattern
}

// NewRegexMatcher creates a RegexMatcher from the given pattern slices.
// Invalid patterns are logged and skipped, not fatal.
func NewRegexMatcher(allow, deny []string) *RegexMatcher {
	return &RegexMatcher{
		deny:  compilePatterns(deny, "deny"),
		allow: compilePatterns(allow, "allow"),
	}
}

// compilePatterns compiles a slice of regex pattern strings.
// Invalid patterns are logged and skipped.
func compilePatterns(patterns []string, category string) []compiledPattern {
	result := make([]compiledPattern, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			clog.Warn("invalid %s pattern %q: %v (skipped)", category, p, err)
			continue
		}
		result = append(result, compiledPattern{regex: re, pattern: p})
	}
	return result
}

// Match checks a command line against the configured patterns.
func (m *RegexMatcher) Match(line string) Match {
	for _, cp := range m.deny {
		if cp.regex.MatchString(line) {
			return Match{Deny: true, Pattern: cp.pattern}
		}
	}
	for _, cp := range m.allow {
		if cp.regex.MatchString(line) {
			return Match{Allow: true, Pattern: cp.pattern}
		}
	}
	return Match{}
}
