// Package vault is the file store: listing, reading and creating notes and
// folders inside a vault directory.
package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aidanlsb/mentions/internal/atomicfile"
	"github.com/aidanlsb/mentions/internal/paths"
)

// ErrExists is returned by CreateFile when the note is already there.
var ErrExists = atomicfile.ErrExists

// FileStore is what the index maintainer and the suggestion engine need
// from the vault. All paths are forward-slash and vault-relative.
type FileStore interface {
	ListFiles() ([]string, error)
	FolderExists(path string) (bool, error)
	CreateFolder(path string) error
	CreateFile(path, content string) error
	ReadFile(path string) (string, error)
}

// Dir is a FileStore backed by a directory on disk.
type Dir struct {
	root string
}

// Open returns a FileStore rooted at vaultPath. The directory must exist.
func Open(vaultPath string) (*Dir, error) {
	if strings.TrimSpace(vaultPath) == "" {
		return nil, fmt.Errorf("vault path is required")
	}
	abs, err := filepath.Abs(vaultPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vault path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("vault not found: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault path is not a directory: %s", abs)
	}
	return &Dir{root: abs}, nil
}

// Root returns the absolute vault directory.
func (d *Dir) Root() string {
	return d.root
}

// Abs resolves a vault-relative path to an absolute filesystem path.
func (d *Dir) Abs(relPath string) (string, error) {
	return paths.Resolve(d.root, relPath)
}

// ListFiles returns every file in the vault.
func (d *Dir) ListFiles() ([]string, error) {
	files, err := CollectFiles(d.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list vault files: %w", err)
	}
	return files, nil
}

// FolderExists reports whether relPath is an existing directory.
func (d *Dir) FolderExists(relPath string) (bool, error) {
	full, err := d.Abs(relPath)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(full)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// CreateFolder creates relPath and any missing parents.
func (d *Dir) CreateFolder(relPath string) error {
	full, err := d.Abs(relPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(full, 0o755); err != nil {
		return fmt.Errorf("failed to create folder %s: %w", relPath, err)
	}
	return nil
}

// CreateFile writes a new note. It fails with ErrExists rather than
// overwriting, and creates missing parent folders.
func (d *Dir) CreateFile(relPath, content string) error {
	full, err := d.Abs(relPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := atomicfile.WriteNew(full, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to create %s: %w", relPath, err)
	}
	return nil
}

// ReadFile returns the content of a note.
func (d *Dir) ReadFile(relPath string) (string, error) {
	full, err := d.Abs(relPath)
	if err != nil {
		return "", err
	}
	content, err := os.ReadFile(full)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", relPath, err)
	}
	return string(content), nil
}
