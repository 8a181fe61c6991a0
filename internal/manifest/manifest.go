// Package manifest persists the record of installed service units.
//
// The manifest is the tool's only state file. It lets status and uninstall
// operate on exactly the units this tool installed, without rescanning the
// source payload, and lets a later sync detect units whose installed content
// has drifted from the source.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"

	"github.com/prospertech/prosperpack/internal/fsutil"
)

// UnitRecord describes one installed service unit.
type UnitRecord struct {
	// SourcePath is the payload file the unit was installed from.
	SourcePath string `yaml:"source_path"`

	// InstalledPath is where the unit file lives in the system unit directory.
	InstalledPath string `yaml:"installed_path"`

	// Digest is the content digest of the unit file at install time.
	Digest string `yaml:"digest"`

	// InstalledAt is when the unit was last copied into place.
	InstalledAt time.Time `yaml:"installed_at"`
}

// Manifest maps service names to their install records.
type Manifest struct {
	Units map[string]UnitRecord `yaml:"units"`
}

// Store loads and saves the manifest at a fixed path.
type Store struct {
	path string
}

// NewStore creates a Store for the manifest file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the manifest file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the manifest. A missing file yields an empty manifest, not an
// error, so first runs need no special casing.
func (s *Store) Load() (*Manifest, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{Units: make(map[string]UnitRecord)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", s.path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: parse %s: %w", s.path, err)
	}
	if m.Units == nil {
		m.Units = make(map[string]UnitRecord)
	}
	return &m, nil
}

// Save writes the manifest atomically, creating the parent directory if needed.
func (s *Store) Save(m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("manifest: marshal: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("manifest: create directory %s: %w", dir, err)
	}
	if err := fsutil.WriteFileAtomic(dir, filepath.Base(s.path), data, 0o644); err != nil {
		return fmt.Errorf("manifest: write %s: %w", s.path, err)
	}
	return nil
}

// Remove deletes the manifest file. A missing file is not an error.
func (s *Store) Remove() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("manifest: remove %s: %w", s.path, err)
	}
	return nil
}

// DigestFile returns the content digest of the file at path.
func DigestFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("manifest: digest %s: %w", path, err)
	}
	return Digest(data), nil
}

// Digest returns the content digest of data.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return fmt.Sprintf("blake2b:%x", sum)
}
