// Package security confines the file-level form operations to a configured
// working directory, so a tool request cannot read or write documents
// elsewhere on the host.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathValidator checks that request paths stay inside one configured
// directory.
type PathValidator struct {
	dir string
}

// NewPathValidator creates a validator rooted at dir. The directory does not
// have to exist yet; validation is skipped until it does.
func NewPathValidator(dir string) (*PathValidator, error) {
	if dir == "" {
		return nil, fmt.Errorf("configured directory cannot be empty")
	}
	return &PathValidator{dir: dir}, nil
}

// Dir returns the configured directory.
func (v *PathValidator) Dir() string {
	return v.dir
}

// ValidatePath fails when path escapes the configured directory.
func (v *PathValidator) ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if _, err := os.Stat(v.dir); os.IsNotExist(err) {
		return nil
	}

	within, err := v.within(path)
	if err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}
	if !within {
		return fmt.Errorf("path is outside configured directory: %s", path)
	}
	return nil
}

// within reports whether path, after resolving relative segments and
// symlinks on both sides, stays under the configured directory.
func (v *PathValidator) within(path string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path: %w", err)
	}
	absDir, err := filepath.Abs(v.dir)
	if err != nil {
		return false, fmt.Errorf("failed to resolve configured directory: %w", err)
	}

	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(absDir)

	realPath := cleanPath
	if info, err := os.Lstat(cleanPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(cleanPath); err == nil {
			realPath = resolved
		}
	}
	realDir := cleanDir
	if resolved, err := filepath.EvalSymlinks(cleanDir); err == nil {
		realDir = resolved
	}

	return under(cleanPath, cleanDir, realDir) && under(realPath, cleanDir, realDir), nil
}

func under(path string, dirs ...string) bool {
	for _, dir := range dirs {
		if path == dir {
			return true
		}
		prefix := dir
		if !strings.HasSuffix(prefix, string(filepath.Separator)) {
			prefix += string(filepath.Separator)
		}
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
