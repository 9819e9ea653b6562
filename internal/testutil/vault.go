// Package testutil provides reusable test utilities for vault-backed tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestVault represents a temporary vault for testing.
type TestVault struct {
	Path  string
	t     *testing.T
	dirs  []string
	files map[string]string
}

// NewTestVault creates a new test vault builder.
// Call Build() to create the actual vault directory.
func NewTestVault(t *testing.T) *TestVault {
	t.Helper()
	return &TestVault{
		t:     t,
		files: make(map[string]string),
	}
}

// WithFile adds a file to the vault.
// The path is relative to the vault root.
func (v *TestVault) WithFile(path, content string) *TestVault {
	v.files[path] = content
	return v
}

// WithDir adds an empty directory to the vault.
func (v *TestVault) WithDir(path string) *TestVault {
	v.dirs = append(v.dirs, path)
	return v
}

// WithPerson adds a person note "<folder>@<name>.md" with a heading.
func (v *TestVault) WithPerson(folder, name string) *TestVault {
	return v.WithFile(folder+"@"+name+".md", "# "+name+"\n")
}

// WithLocation adds a location note "<folder>!<name>.md" with a heading.
func (v *TestVault) WithLocation(folder, name string) *TestVault {
	return v.WithFile(folder+"!"+name+".md", "# "+name+"\n")
}

// WithSettings writes mentions.yaml at the vault root.
func (v *TestVault) WithSettings(yaml string) *TestVault {
	v.files["mentions.yaml"] = yaml
	return v
}

// Build creates the vault directory and all configured files.
// Returns the TestVault for method chaining.
func (v *TestVault) Build() *TestVault {
	v.t.Helper()

	v.Path = v.t.TempDir()

	for _, dir := range v.dirs {
		full := filepath.Join(v.Path, filepath.FromSlash(dir))
		if err := os.MkdirAll(full, 0755); err != nil {
			v.t.Fatalf("failed to create directory %s: %v", full, err)
		}
	}
	for path, content := range v.files {
		v.WriteFile(path, content)
	}

	return v
}

// WriteFile writes a file to the vault, creating directories as needed.
func (v *TestVault) WriteFile(relPath, content string) {
	v.t.Helper()
	fullPath := filepath.Join(v.Path, filepath.FromSlash(relPath))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.t.Fatalf("failed to create directory %s: %v", dir, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		v.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// RemoveFile deletes a file from the vault.
func (v *TestVault) RemoveFile(relPath string) {
	v.t.Helper()
	if err := os.Remove(filepath.Join(v.Path, filepath.FromSlash(relPath))); err != nil {
		v.t.Fatalf("failed to remove %s: %v", relPath, err)
	}
}

// RenameFile moves a file within the vault.
func (v *TestVault) RenameFile(from, to string) {
	v.t.Helper()
	dst := filepath.Join(v.Path, filepath.FromSlash(to))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		v.t.Fatalf("failed to create directory for %s: %v", to, err)
	}
	if err := os.Rename(filepath.Join(v.Path, filepath.FromSlash(from)), dst); err != nil {
		v.t.Fatalf("failed to rename %s to %s: %v", from, to, err)
	}
}

// ReadFile reads a file from the vault.
// Returns the content as a string.
func (v *TestVault) ReadFile(relPath string) string {
	v.t.Helper()
	fullPath := filepath.Join(v.Path, filepath.FromSlash(relPath))
	content, err := os.ReadFile(fullPath)
	if err != nil {
		v.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}

// FileExists checks if a file exists in the vault.
func (v *TestVault) FileExists(relPath string) bool {
	v.t.Helper()
	_, err := os.Stat(filepath.Join(v.Path, filepath.FromSlash(relPath)))
	return err == nil
}
