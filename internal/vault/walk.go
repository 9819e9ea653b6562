package vault

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/aidanlsb/mentions/internal/paths"
)

// ignoredDirs are never listed or watched.
var ignoredDirs = map[string]bool{
	".git":         true,
	".trash":       true,
	".obsidian":    true,
	"node_modules": true,
}

// IsIgnoredDir reports whether a directory with this base name is skipped
// by listing and watching.
func IsIgnoredDir(name string) bool {
	return ignoredDirs[name]
}

// WalkFiles walks every regular file in the vault and calls fn with its
// forward-slash vault-relative path. It automatically:
// - Skips .git, .trash, .obsidian and node_modules
// - Skips files that resolve outside the vault
// - Tolerates unreadable subdirectories
func WalkFiles(vaultPath string, fn func(relPath string) error) error {
	return filepath.WalkDir(vaultPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == vaultPath {
				return err
			}
			// Best-effort: an unreadable folder should not hide the rest of the vault.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != vaultPath && IsIgnoredDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		// Security: verify file is within vault
		if err := paths.ValidateWithinVault(vaultPath, path); err != nil {
			if errors.Is(err, paths.ErrPathOutsideVault) {
				return nil
			}
			return err
		}

		rel, err := paths.Rel(vaultPath, path)
		if err != nil {
			return err
		}
		return fn(rel)
	})
}

// CollectFiles returns every vault-relative file path in lexical order.
func CollectFiles(vaultPath string) ([]string, error) {
	var files []string
	err := WalkFiles(vaultPath, func(rel string) error {
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
