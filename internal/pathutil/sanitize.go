// Package pathutil cleans user-typed directory paths and checks that they
// name readable directories.
package pathutil

import (
	"path/filepath"
	"strings"
)

// allowed reports whether r may appear in a sanitized path: ASCII letters,
// digits, space, dash, underscore and both slash kinds.
func allowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == ' ', r == '-', r == '_', r == '/', r == '\\':
		return true
	}
	return false
}

// Sanitize drops every disallowed character from raw and returns the
// result as an absolute, cleaned path. It never fails: input that strips
// down to nothing resolves to the working directory.
func Sanitize(raw string) string {
	kept := strings.Map(func(r rune) rune {
		if allowed(r) {
			return r
		}
		return -1
	}, raw)

	abs, err := filepath.Abs(kept)
	if err != nil {
		// Only reachable when the working directory cannot be determined.
		return filepath.Clean(string(filepath.Separator) + kept)
	}
	return abs
}
