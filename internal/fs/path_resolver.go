// Package fs resolves the paths and environment the release tools operate on.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// PathResolver provides path resolution operations.
type PathResolver interface {
	// CanonicalPath returns the canonical, absolute path by resolving symlinks.
	CanonicalPath(path string) (string, error)
	// Abs returns the absolute path.
	Abs(path string) (string, error)
}

// StandardPathResolver is the default implementation using standard library functions.
type StandardPathResolver struct{}

// NewPathResolver creates a new StandardPathResolver.
func NewPathResolver() *StandardPathResolver {
	return &StandardPathResolver{}
}

func (r *StandardPathResolver) CanonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

func (r *StandardPathResolver) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

var defaultResolver = NewPathResolver()

// CanonicalPath resolves path with the StandardPathResolver.
func CanonicalPath(path string) (string, error) {
	return defaultResolver.CanonicalPath(path)
}

// Abs makes path absolute with the StandardPathResolver.
func Abs(path string) (string, error) {
	return defaultResolver.Abs(path)
}

type NotADirectoryError struct {
	Path string
}

func (e *NotADirectoryError) Error() string {
	return fmt.Sprintf("repository root %s is not a directory", e.Path)
}

// ResolveRoot picks the repository root: the flag value when set, then
// ZOI_RELEASE_ROOT, then the working directory. The result is canonical.
func ResolveRoot(flagValue string, env EnvProvider, r PathResolver) (string, error) {
	dir := flagValue
	if dir == "" {
		dir = env.Get(RootEnvVar)
	}
	if dir == "" {
		dir = "."
	}

	root, err := r.CanonicalPath(dir)
	if err != nil {
		return "", fmt.Errorf("resolving repository root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", &NotADirectoryError{Path: root}
	}
	return root, nil
}
