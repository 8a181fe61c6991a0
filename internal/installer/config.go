// Package installer implements the service-unit installation pipeline.
package installer

import (
	"errors"
	"time"
)

// DefaultSourceDir is the default directory holding the packaged unit files.
const DefaultSourceDir = "/usr/share/prosperpack/units"

// DefaultUnitDir is the default system unit directory units are copied into.
const DefaultUnitDir = "/etc/systemd/system"

// DefaultManifestPath is the default path of the install manifest.
const DefaultManifestPath = "/var/lib/prosperpack/manifest.yaml"

// DefaultWatchDebounce is the default quiet period before a watched change
// triggers a re-sync.
const DefaultWatchDebounce = 500 * time.Millisecond

// Config holds the configuration for the service installer.
type Config struct {
	// SourceDir is the directory containing unit-definition files to install.
	// Default: /usr/share/prosperpack/units
	SourceDir string `yaml:"source_dir"`

	// UnitDir is the system unit directory files are copied into.
	// Default: /etc/systemd/system
	UnitDir string `yaml:"unit_dir"`

	// ManifestPath is where the install manifest is persisted.
	// Default: /var/lib/prosperpack/manifest.yaml
	ManifestPath string `yaml:"manifest_path"`

	// WatchDebounce is the quiet period applied to filesystem events in
	// watch mode before a re-sync runs.
	// Default: 500ms
	WatchDebounce time.Duration `yaml:"watch_debounce"`
}

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.SourceDir == "" {
		c.SourceDir = DefaultSourceDir
	}
	if c.UnitDir == "" {
		c.UnitDir = DefaultUnitDir
	}
	if c.ManifestPath == "" {
		c.ManifestPath = DefaultManifestPath
	}
	if c.WatchDebounce <= 0 {
		c.WatchDebounce = DefaultWatchDebounce
	}
}

// Validate checks that required fields are set.
func (c *Config) Validate() error {
	if c.SourceDir == "" {
		return errors.New("installer: config: source_dir is required")
	}
	if c.UnitDir == "" {
		return errors.New("installer: config: unit_dir is required")
	}
	if c.ManifestPath == "" {
		return errors.New("installer: config: manifest_path is required")
	}
	return nil
}
