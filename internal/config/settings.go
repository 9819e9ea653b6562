package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/mentions/internal/atomicfile"
	"github.com/aidanlsb/mentions/internal/index"
	"github.com/aidanlsb/mentions/internal/paths"
)

// SettingsFile is the per-vault settings file, relative to the vault root.
const SettingsFile = "mentions.yaml"

// Setting keys.
const (
	KeyPeopleFolder    = "people_folder"
	KeyLocationsFolder = "locations_folder"
)

// ErrUnknownSetting is returned for keys other than the known folder settings.
var ErrUnknownSetting = errors.New("unknown setting")

// Settings are the per-vault settings.
type Settings struct {
	// PeopleFolder holds person notes ("@Name.md").
	PeopleFolder string `yaml:"people_folder" json:"people_folder"`

	// LocationsFolder holds location notes ("!Place.md").
	LocationsFolder string `yaml:"locations_folder" json:"locations_folder"`
}

// DefaultSettings returns the settings used when mentions.yaml is absent.
func DefaultSettings() Settings {
	return Settings{
		PeopleFolder:    "_people/",
		LocationsFolder: "_locations/",
	}
}

// Keys lists the setting keys in display order.
func Keys() []string {
	return []string{KeyPeopleFolder, KeyLocationsFolder}
}

// Folder returns the folder that holds notes of kind.
func (s Settings) Folder(kind index.Kind) string {
	if kind == index.KindLocation {
		return s.LocationsFolder
	}
	return s.PeopleFolder
}

// Get returns a setting by key.
func (s Settings) Get(key string) (string, error) {
	switch key {
	case KeyPeopleFolder:
		return s.PeopleFolder, nil
	case KeyLocationsFolder:
		return s.LocationsFolder, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownSetting, key)
}

// Set updates a setting by key. Folder values are normalised to a
// trailing slash with no leading slash.
func (s *Settings) Set(key, value string) error {
	switch key {
	case KeyPeopleFolder:
		s.PeopleFolder = paths.NormalizeDirRoot(value)
	case KeyLocationsFolder:
		s.LocationsFolder = paths.NormalizeDirRoot(value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	return nil
}

// LoadSettings reads mentions.yaml from the vault root.
// Keys missing from the file keep their defaults.
func LoadSettings(vaultPath string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(filepath.Join(vaultPath, SettingsFile))
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to parse %s: %w", SettingsFile, err)
	}
	s.PeopleFolder = paths.NormalizeDirRoot(s.PeopleFolder)
	s.LocationsFolder = paths.NormalizeDirRoot(s.LocationsFolder)
	return s, nil
}

// SaveSettings writes mentions.yaml atomically.
func SaveSettings(vaultPath string, s Settings) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	path := filepath.Join(vaultPath, SettingsFile)
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", path, err)
	}
	return nil
}

// Source supplies the current settings.
type Source interface {
	Settings() Settings
}

// Static is a fixed Source.
type Static Settings

// Settings implements Source.
func (s Static) Settings() Settings { return Settings(s) }

// Live is the settings holder shared by the maintainer, the suggestion
// engine and the editor integration. Every change is persisted before it
// becomes visible.
type Live struct {
	mu        sync.RWMutex
	vaultPath string
	current   Settings
}

// NewLive wraps loaded settings. With an empty vaultPath changes are kept
// in memory only.
func NewLive(vaultPath string, s Settings) *Live {
	return &Live{vaultPath: vaultPath, current: s}
}

// LoadLive loads the vault's settings into a Live holder.
func LoadLive(vaultPath string) (*Live, error) {
	s, err := LoadSettings(vaultPath)
	if err != nil {
		return nil, err
	}
	return NewLive(vaultPath, s), nil
}

// Settings implements Source.
func (l *Live) Settings() Settings {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Update applies fn to a copy of the settings, persists the result and
// publishes it. If fn or the save fails, nothing changes.
func (l *Live) Update(fn func(*Settings) error) (Settings, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.current
	if err := fn(&next); err != nil {
		return l.current, err
	}
	if next == l.current {
		return l.current, nil
	}
	if l.vaultPath != "" {
		if err := SaveSettings(l.vaultPath, next); err != nil {
			return l.current, err
		}
	}
	l.current = next
	return next, nil
}

// Reload re-reads mentions.yaml and publishes it. It reports whether the
// settings changed. In-memory holders never reload.
func (l *Live) Reload() (Settings, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.vaultPath == "" {
		return l.current, false, nil
	}
	next, err := LoadSettings(l.vaultPath)
	if err != nil {
		return l.current, false, err
	}
	if next == l.current {
		return l.current, false, nil
	}
	l.current = next
	return next, true, nil
}
