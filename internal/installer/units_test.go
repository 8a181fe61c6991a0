package installer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDiscoverUnits_SortedAndFiltered(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"zeta.service", "alpha.service", "beta.timer", ".hidden"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile(%q) error = %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0o755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}

	units, err := DiscoverUnits(dir)
	if err != nil {
		t.Fatalf("DiscoverUnits() error = %v", err)
	}

	want := []Unit{
		{Name: "alpha.service", Path: filepath.Join(dir, "alpha.service")},
		{Name: "beta.timer", Path: filepath.Join(dir, "beta.timer")},
		{Name: "zeta.service", Path: filepath.Join(dir, "zeta.service")},
	}
	if diff := cmp.Diff(want, units); diff != "" {
		t.Errorf("units mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverUnits_EmptyDir(t *testing.T) {
	units, err := DiscoverUnits(t.TempDir())
	if err != nil {
		t.Fatalf("DiscoverUnits() error = %v", err)
	}
	if len(units) != 0 {
		t.Errorf("expected no units, got %d", len(units))
	}
}

func TestDiscoverUnits_MissingDir(t *testing.T) {
	_, err := DiscoverUnits(filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatal("DiscoverUnits() = nil, want error for missing directory")
	}
}
