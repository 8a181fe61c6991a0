package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Unit is one service-unit definition discovered in the source directory.
// The service name is the base filename; one unit file maps to exactly one
// service instance keyed by that name.
type Unit struct {
	// Name is the filename-derived service name, e.g. "alpha.service".
	Name string

	// Path is the absolute path of the source unit file.
	Path string
}

// DiscoverUnits lists the unit files in dir in lexical order. Contents are
// not validated; every regular file is a unit definition. Hidden files and
// subdirectories are skipped.
func DiscoverUnits(dir string) ([]Unit, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("installer: read source directory %s: %w", dir, err)
	}

	units := make([]Unit, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		units = append(units, Unit{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
		})
	}

	sort.Slice(units, func(i, j int) bool { return units[i].Name < units[j].Name })
	return units, nil
}
