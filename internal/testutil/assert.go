package testutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

func (v *TestVault) stat(relPath string) (fs.FileInfo, error) {
	return os.Stat(filepath.Join(v.Path, filepath.FromSlash(relPath)))
}

// AssertFileExists reports an error unless relPath exists.
func (v *TestVault) AssertFileExists(relPath string) {
	v.t.Helper()
	if _, err := v.stat(relPath); err != nil {
		v.t.Errorf("%s: %v", relPath, err)
	}
}

// AssertFileNotExists reports an error if relPath exists.
func (v *TestVault) AssertFileNotExists(relPath string) {
	v.t.Helper()
	if _, err := v.stat(relPath); !errors.Is(err, fs.ErrNotExist) {
		v.t.Errorf("%s: should not exist", relPath)
	}
}

// AssertFileContent compares the whole file with want.
func (v *TestVault) AssertFileContent(relPath, want string) {
	v.t.Helper()
	if got := v.ReadFile(relPath); got != want {
		v.t.Errorf("%s = %q, want %q", relPath, got, want)
	}
}

func (v *TestVault) AssertFileContains(relPath, substr string) {
	v.t.Helper()
	if got := v.ReadFile(relPath); !strings.Contains(got, substr) {
		v.t.Errorf("%s does not contain %q:\n%s", relPath, substr, got)
	}
}

// AssertDirExists reports an error unless relPath is a directory.
func (v *TestVault) AssertDirExists(relPath string) {
	v.t.Helper()
	info, err := v.stat(relPath)
	switch {
	case err != nil:
		v.t.Errorf("%s: %v", relPath, err)
	case !info.IsDir():
		v.t.Errorf("%s: not a directory", relPath)
	}
}
