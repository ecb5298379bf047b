package errors

import (
	"os"
	"strings"
	"unicode"
)

// maxPathLength bounds output paths accepted by [ValidateOutputPath].
const maxPathLength = 500

// ValidateColumnName rejects names that cannot serve as chart labels or hue
// mapping keys: empty names and names with control characters.
func ValidateColumnName(name string) error {
	if name == "" {
		return Invalid("column name cannot be empty")
	}
	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return Invalid("column name %q contains control characters", name)
	}
	return nil
}

// ValidateOutputPath rejects paths the exporters should not write to: empty
// or overlong paths, paths with control characters and paths ending in a
// separator.
func ValidateOutputPath(path string) error {
	switch {
	case path == "":
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	case len(path) > maxPathLength:
		return New(ErrCodeInvalidPath, "output path longer than %d bytes", maxPathLength)
	case strings.IndexFunc(path, unicode.IsControl) >= 0:
		return New(ErrCodeInvalidPath, "output path %q contains control characters", path)
	case strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(os.PathSeparator)):
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}
	return nil
}
