// Package layout discovers and validates localization folder structures.
//
// A localization root holds one folder per language (en, ru, ...). Each
// language folder directly contains the required root files and may hold
// further YAML content in subdirectories (dialogues/*.yaml and so on).
package layout

import (
	"path/filepath"
	"strings"
)

// Normalize canonicalizes a path so the same directory is always keyed the
// same way: absolute, cleaned, forward slashes, lowercase. The empty string
// stays empty. No I/O is performed.
func Normalize(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	return strings.ToLower(filepath.ToSlash(abs))
}

// Within reports whether the normalized path p is root or lies below it.
func Within(root, p string) bool {
	if root == "" {
		return false
	}
	if p == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(p, prefix)
}
