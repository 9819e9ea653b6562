package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/aidanlsb/mentions/internal/index"
)

func TestConfigGetVaultPath(t *testing.T) {
	t.Run("named vault", func(t *testing.T) {
		cfg := &Config{
			Vaults: map[string]string{
				"work":     "/path/to/work",
				"personal": "/path/to/personal",
			},
		}

		path, err := cfg.GetVaultPath("work")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != "/path/to/work" {
			t.Errorf("expected '/path/to/work', got %q", path)
		}
	})

	t.Run("default vault", func(t *testing.T) {
		cfg := &Config{
			DefaultVault: "personal",
			Vaults: map[string]string{
				"work":     "/path/to/work",
				"personal": "/path/to/personal",
			},
		}

		path, err := cfg.GetDefaultVaultPath()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != "/path/to/personal" {
			t.Errorf("expected '/path/to/personal', got %q", path)
		}
	})

	t.Run("no default", func(t *testing.T) {
		cfg := &Config{}
		if _, err := cfg.GetDefaultVaultPath(); err == nil {
			t.Fatal("expected error when no default vault is configured")
		}
	})

	t.Run("unknown vault", func(t *testing.T) {
		cfg := &Config{Vaults: map[string]string{"work": "/w"}}
		if _, err := cfg.GetVaultPath("home"); err == nil {
			t.Fatal("expected error for unknown vault")
		}
	})
}

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `default_vault = "journal"
log_level = "debug"

[vaults]
journal = "/notes/journal"
work = "/notes/work"

[ui]
accent = "39"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if cfg.DefaultVault != "journal" || cfg.LogLevel != "debug" || cfg.UI.Accent != "39" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if got := cfg.VaultNames(); !reflect.DeepEqual(got, []string{"journal", "work"}) {
		t.Fatalf("VaultNames = %v", got)
	}
}

func TestLoadFromInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("vaults = ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings(t.TempDir())
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s != DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", s)
	}
	if s.PeopleFolder != "_people/" || s.LocationsFolder != "_locations/" {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}

func TestLoadSettingsMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, SettingsFile), []byte("people_folder: contacts\n"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	s, err := LoadSettings(dir)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.PeopleFolder != "contacts/" {
		t.Errorf("people folder = %q, want contacts/", s.PeopleFolder)
	}
	if s.LocationsFolder != "_locations/" {
		t.Errorf("locations folder = %q, want default", s.LocationsFolder)
	}
}

func TestSettingsSetAndGet(t *testing.T) {
	s := DefaultSettings()

	if err := s.Set(KeyLocationsFolder, "/places"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, _ := s.Get(KeyLocationsFolder); got != "places/" {
		t.Fatalf("locations_folder = %q", got)
	}
	if s.Folder(index.KindLocation) != "places/" || s.Folder(index.KindName) != "_people/" {
		t.Fatalf("Folder mismatch: %+v", s)
	}

	if err := s.Set("theme", "dark"); !errors.Is(err, ErrUnknownSetting) {
		t.Fatalf("expected ErrUnknownSetting, got %v", err)
	}
	if _, err := s.Get("theme"); !errors.Is(err, ErrUnknownSetting) {
		t.Fatalf("expected ErrUnknownSetting, got %v", err)
	}
}

func TestLiveUpdatePersists(t *testing.T) {
	dir := t.TempDir()
	live, err := LoadLive(dir)
	if err != nil {
		t.Fatalf("LoadLive: %v", err)
	}

	updated, err := live.Update(func(s *Settings) error {
		return s.Set(KeyPeopleFolder, "people")
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.PeopleFolder != "people/" || live.Settings().PeopleFolder != "people/" {
		t.Fatalf("update not applied: %+v", live.Settings())
	}

	reloaded, err := LoadSettings(dir)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if reloaded != updated {
		t.Fatalf("persisted %+v, want %+v", reloaded, updated)
	}
}

func TestLiveUpdateFailureLeavesSettings(t *testing.T) {
	live := NewLive("", DefaultSettings())

	_, err := live.Update(func(s *Settings) error {
		s.PeopleFolder = "changed/"
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if live.Settings() != DefaultSettings() {
		t.Fatalf("settings changed despite error: %+v", live.Settings())
	}
}

func TestLiveReload(t *testing.T) {
	dir := t.TempDir()
	live, err := LoadLive(dir)
	if err != nil {
		t.Fatalf("LoadLive: %v", err)
	}

	if _, changed, err := live.Reload(); err != nil || changed {
		t.Fatalf("Reload without edits = %v, %v", changed, err)
	}

	if err := os.WriteFile(filepath.Join(dir, SettingsFile), []byte("locations_folder: places\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, changed, err := live.Reload()
	if err != nil || !changed {
		t.Fatalf("Reload = %v, %v", changed, err)
	}
	if s.LocationsFolder != "places/" || s.PeopleFolder != "_people/" {
		t.Fatalf("reloaded %+v", s)
	}
	if live.Settings() != s {
		t.Fatalf("reload not published: %+v", live.Settings())
	}
}
