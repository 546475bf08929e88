package paths

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrAccessDenied is returned when a path resolves outside the root
var ErrAccessDenied = errors.New("Invalid path: Access denied outside Proton Drive")

// Root is the single directory every operation is confined to.
// The zero value is not usable; construct with NewRoot.
type Root struct {
	path string
}

// NewRoot makes path absolute and clean and returns it as a Root
func NewRoot(path string) (Root, error) {
	if strings.TrimSpace(path) == "" {
		return Root{}, fmt.Errorf("root path cannot be empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return Root{}, fmt.Errorf("resolve root %q: %w", path, err)
	}
	return Root{path: abs}, nil
}

// Path returns the absolute root path
func (r Root) Path() string {
	return r.path
}

func (r Root) String() string {
	return r.path
}

// Confine resolves a caller-supplied relative path against the root.
// An empty path maps to the root itself. Both '/' and '\' act as separators,
// repeated and leading separators are dropped, and ".." segments are resolved
// arithmetically; a result outside the root fails with ErrAccessDenied.
func (r Root) Confine(raw string) (string, error) {
	if raw == "" {
		return r.path, nil
	}

	segments := strings.FieldsFunc(raw, isSeparator)
	full := filepath.Join(append([]string{r.path}, segments...)...)

	if !r.Contains(full) {
		return "", ErrAccessDenied
	}
	return full, nil
}

// Contains reports whether an absolute, clean path is the root or lies below it.
// The comparison is per path component, so a sibling sharing the root's
// name as a prefix is not contained.
func (r Root) Contains(path string) bool {
	if path == r.path {
		return true
	}
	prefix := r.path
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}

// Rel returns the display form of a confined path: relative to the root,
// forward-slashed, and "/" for the root itself.
func (r Root) Rel(full string) string {
	if full == r.path {
		return "/"
	}
	rel := strings.TrimPrefix(full, r.path)
	if rel != "" && isSeparator(rune(rel[0])) {
		rel = rel[1:]
	}
	if rel == "" {
		return "/"
	}
	return filepath.ToSlash(rel)
}

func isSeparator(c rune) bool {
	return c == '/' || c == '\\'
}
