// Package pathutil canonicalizes file paths so that every key in the cache
// refers to one on-disk location exactly one way. Folder comparisons are done
// on resolved parent directories, never on string prefixes.
package pathutil

import "path/filepath"

// Canon returns the canonical absolute form of path. Symlinks are resolved
// best-effort: when the leaf does not exist yet, the parent directory alone
// is resolved so that files created later under a symlinked folder still
// canonicalize consistently.
func Canon(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	dir, base := filepath.Split(abs)
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		return filepath.Join(resolved, base)
	}
	return abs
}

// ParentDir returns the canonical directory containing path.
func ParentDir(path string) string {
	return filepath.Dir(Canon(path))
}
