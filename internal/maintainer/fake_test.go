package maintainer

import "fmt"

// fakeFiles is an in-memory vault.FileStore.
type fakeFiles struct {
	list      []string
	folders   map[string]bool
	created   []string
	listErr   error
	folderErr error
}

func newFakeFiles(list ...string) *fakeFiles {
	return &fakeFiles{list: list, folders: make(map[string]bool)}
}

func (f *fakeFiles) ListFiles() ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]string, len(f.list))
	copy(out, f.list)
	return out, nil
}

func (f *fakeFiles) FolderExists(path string) (bool, error) {
	return f.folders[path], nil
}

func (f *fakeFiles) CreateFolder(path string) error {
	if f.folderErr != nil {
		return f.folderErr
	}
	f.folders[path] = true
	f.created = append(f.created, path)
	return nil
}

func (f *fakeFiles) CreateFile(path, content string) error {
	return fmt.Errorf("not supported")
}

func (f *fakeFiles) ReadFile(path string) (string, error) {
	return "", fmt.Errorf("not supported")
}
