package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolve returns the absolute, lexically cleaned form of path with symlinks
// resolved on the longest prefix that exists. Components that do not exist
// are kept as written, so Resolve never fails for a path that has not been
// created yet. A relative path is taken relative to the process working
// directory.
func Resolve(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	return resolveSymlinksWalkUp(abs)
}

// maxLinkHops bounds how many dangling symlinks are followed by hand.
const maxLinkHops = 40

// resolveSymlinksWalkUp walks up the directory tree until it finds a path
// that exists, resolves symlinks there, then rebuilds the remainder.
func resolveSymlinksWalkUp(path string) string {
	return walkUp(path, 0)
}

func walkUp(path string, hops int) string {
	var missing []string
	current := path
	for {
		if resolved, err := filepath.EvalSymlinks(current); err == nil {
			current = resolved
			break
		}
		// A dangling symlink exists but EvalSymlinks cannot follow it.
		// Its target is where a write through it would land.
		if target, ok := readDanglingLink(current); ok && hops < maxLinkHops {
			for i := len(missing) - 1; i >= 0; i-- {
				target = filepath.Join(target, missing[i])
			}
			return walkUp(target, hops+1)
		}
		parent := filepath.Dir(current)
		if parent == current {
			// Reached the root without finding anything resolvable.
			break
		}
		missing = append(missing, filepath.Base(current))
		current = parent
	}
	for i := len(missing) - 1; i >= 0; i-- {
		current = filepath.Join(current, missing[i])
	}
	return current
}

// readDanglingLink returns the absolute target of path if path is a
// symlink.
func readDanglingLink(path string) (string, bool) {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return "", false
	}
	target, err := os.Readlink(path)
	if err != nil {
		return "", false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return filepath.Clean(target), true
}

// Within reports whether path is root or a descendant of root. Both must be
// absolute and clean.
func Within(path, root string) bool {
	if path == root {
		return true
	}
	if root == string(filepath.Separator) {
		return filepath.IsAbs(path)
	}
	return strings.HasPrefix(path, root+string(filepath.Separator))
}
