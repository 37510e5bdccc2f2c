package danger

import (
	"path/filepath"
	"strings"

	"github.com/xdg/cmdguard/internal/pathutil"
)

// resolve returns the absolute, resolved target of word relative to dir.
// The target need not exist.
func (a *Analyzer) resolve(dir, word string) string {
	word = pathutil.ExpandHomeDir(word, a.home)
	if !filepath.IsAbs(word) {
		word = filepath.Join(dir, word)
	}
	return pathutil.Resolve(word)
}

// escalate raises a Dangerous level to Destructive when target lies outside
// root. Other levels are returned unchanged.
func escalate(level Level, target, root string) Level {
	if level == Dangerous && !pathutil.Within(target, root) {
		return Destructive
	}
	return level
}

// devTargets are redirect targets that never write to a file.
var devTargets = map[string]bool{
	"/dev/null":   true,
	"/dev/stdout": true,
	"/dev/stderr": true,
	"/dev/stdin":  true,
	"/dev/tty":    true,
}

// isDeviceTarget reports whether a redirect target is a standard device.
func isDeviceTarget(word string) bool {
	clean := filepath.Clean(word)
	return devTargets[clean] || strings.HasPrefix(clean, "/dev/fd/")
}

// isFileDescriptor reports whether a duplication target names a descriptor
// (">&2") or closes one (">&-") rather than naming a file.
func isFileDescriptor(word string) bool {
	if word == "-" {
		return true
	}
	word = strings.TrimSuffix(word, "-")
	if word == "" {
		return false
	}
	for _, r := range word {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
