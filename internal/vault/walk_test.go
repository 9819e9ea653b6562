package vault

import (
	"errors"
	"reflect"
	"testing"

	"github.com/aidanlsb/mentions/internal/testutil"
)

func TestCollectFiles(t *testing.T) {
	// Test structure:
	//   _people/@Freya.md
	//   _locations/!Oslo.md
	//   journal/2024-01-01.md
	//   assets/map.png
	//   .git/HEAD          (skipped)
	//   .trash/@Old.md     (skipped)
	//   .obsidian/app.json (skipped)
	v := testutil.NewTestVault(t).
		WithPerson("_people/", "Freya").
		WithLocation("_locations/", "Oslo").
		WithFile("journal/2024-01-01.md", "went to !Oslo with @Freya").
		WithFile("assets/map.png", "png").
		WithFile(".git/HEAD", "ref").
		WithFile(".trash/@Old.md", "# Old").
		WithFile(".obsidian/app.json", "{}").
		Build()

	got, err := CollectFiles(v.Path)
	if err != nil {
		t.Fatalf("CollectFiles: %v", err)
	}

	want := []string{
		"_locations/!Oslo.md",
		"_people/@Freya.md",
		"assets/map.png",
		"journal/2024-01-01.md",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("CollectFiles = %v, want %v", got, want)
	}
}

func TestDirCreateAndRead(t *testing.T) {
	v := testutil.NewTestVault(t).Build()
	d, err := Open(v.Path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	exists, err := d.FolderExists("_people/")
	if err != nil || exists {
		t.Fatalf("FolderExists before create = %v, %v", exists, err)
	}
	if err := d.CreateFolder("_people/"); err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if exists, _ := d.FolderExists("_people"); !exists {
		t.Fatal("folder should exist after CreateFolder")
	}

	if err := d.CreateFile("_people/@Zz.md", "# Zz"); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	v.AssertFileContent("_people/@Zz.md", "# Zz")

	if err := d.CreateFile("_people/@Zz.md", "# again"); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}

	content, err := d.ReadFile("_people/@Zz.md")
	if err != nil || content != "# Zz" {
		t.Fatalf("ReadFile = %q, %v", content, err)
	}

	// Parent folders are created on demand.
	if err := d.CreateFile("new/folder/!Rome.md", "# Rome"); err != nil {
		t.Fatalf("CreateFile in missing folder: %v", err)
	}
	v.AssertFileExists("new/folder/!Rome.md")

	files, err := d.ListFiles()
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if want := []string{"_people/@Zz.md", "new/folder/!Rome.md"}; !reflect.DeepEqual(files, want) {
		t.Fatalf("ListFiles = %v, want %v", files, want)
	}
}

func TestDirRejectsEscapes(t *testing.T) {
	v := testutil.NewTestVault(t).Build()
	d, err := Open(v.Path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := d.CreateFile("../escape.md", "x"); err == nil {
		t.Fatal("expected error creating a file outside the vault")
	}
}

func TestOpenMissingVault(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
	if _, err := Open(t.TempDir() + "/missing"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
