// Package paths provides canonical helpers for vault-relative paths:
// - folder settings (e.g. "_people/")
// - note paths as the vault reports them (e.g. "_people/@Freya.md")
//
// Every vault-relative path in this module uses forward slashes, regardless
// of the host OS. Conversion to OS paths happens only at the filesystem edge.
package paths

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathOutsideVault is returned when a path resolves outside the vault root.
var ErrPathOutsideVault = errors.New("path is outside vault")

// NormalizeDirRoot normalizes a folder setting to have:
// - no leading slash
// - exactly one trailing slash (unless empty)
//
// Examples:
// - "/_people/" -> "_people/"
// - "_people"   -> "_people/"
// - ""          -> ""
func NormalizeDirRoot(root string) string {
	root = filepath.ToSlash(root)
	root = strings.Trim(root, "/")
	for strings.Contains(root, "//") {
		root = strings.ReplaceAll(root, "//", "/")
	}
	if root == "" {
		return ""
	}
	return root + "/"
}

// NormalizeRelPath normalizes a vault-relative path-like value:
// - converts OS separators to '/'
// - trims leading "./" and leading "/"
// - collapses repeated '/'
func NormalizeRelPath(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "/")
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return p
}

// Resolve joins a vault-relative path onto the vault root and verifies the
// result stays inside the vault.
func Resolve(vaultPath, relPath string) (string, error) {
	full := filepath.Join(vaultPath, filepath.FromSlash(NormalizeRelPath(relPath)))
	if err := ValidateWithinVault(vaultPath, full); err != nil {
		return "", err
	}
	return full, nil
}

// ValidateWithinVault returns ErrPathOutsideVault if target is not the vault
// root or a descendant of it.
func ValidateWithinVault(vaultPath, target string) error {
	absVault, err := filepath.Abs(vaultPath)
	if err != nil {
		return fmt.Errorf("failed to resolve vault path: %w", err)
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	if absTarget == absVault {
		return nil
	}
	if !strings.HasPrefix(absTarget, absVault+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrPathOutsideVault, target)
	}
	return nil
}

// Rel converts an absolute filesystem path under the vault to a
// forward-slash vault-relative path.
func Rel(vaultPath, full string) (string, error) {
	rel, err := filepath.Rel(vaultPath, full)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
