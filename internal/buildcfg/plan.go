package buildcfg

import (
	"log/slog"
	"os"
)

// PathProber abstracts build-host path probing for testability.
type PathProber interface {
	// Exists returns true if path exists and is a regular file.
	Exists(path string) bool
}

// osProber implements PathProber against the real filesystem.
type osProber struct{}

// NewPathProber returns a PathProber that checks the real filesystem.
func NewPathProber() PathProber {
	return osProber{}
}

func (osProber) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Plan is a resolved build configuration: one interpreter branch plus the
// three rendered packaging passes.
type Plan struct {
	// Interpreter is the selected interpreter path.
	Interpreter string `yaml:"interpreter"`

	// VendorSelected is true when the vendor interpreter branch was taken.
	VendorSelected bool `yaml:"vendor_selected"`

	// Preinstall is the preinstall set for the selected branch.
	Preinstall []string `yaml:"preinstall"`

	// ExtraIndexURL is the alternate package index, empty when unset.
	ExtraIndexURL string `yaml:"extra_index_url,omitempty"`

	// ExcludedLibraries apply to both the dependency-scan and strip passes.
	ExcludedLibraries []string `yaml:"excluded_libraries"`

	// HelperBin, DepScanBin and StripBin name the pass binaries.
	HelperBin  string `yaml:"helper_bin"`
	DepScanBin string `yaml:"dep_scan_bin"`
	StripBin   string `yaml:"strip_bin"`
}

// Resolve selects the interpreter branch and produces the build plan. The
// branch depends solely on whether the vendor interpreter exists on the
// build host; the exclusion set is identical in both branches.
func Resolve(cfg Config, probe PathProber, logger *slog.Logger) Plan {
	cfg.ApplyDefaults()
	log := logger.With("component", "buildcfg")

	plan := Plan{
		ExtraIndexURL:     cfg.ExtraIndexURL,
		ExcludedLibraries: append([]string(nil), cfg.ExcludedLibraries...),
		HelperBin:         cfg.HelperBin,
		DepScanBin:        cfg.DepScanBin,
		StripBin:          cfg.StripBin,
	}

	if probe.Exists(cfg.VendorInterpreter) {
		plan.Interpreter = cfg.VendorInterpreter
		plan.VendorSelected = true
		plan.Preinstall = append([]string(nil), cfg.PinnedPreinstall...)
		log.Info("vendor interpreter selected", "path", plan.Interpreter)
	} else {
		plan.Interpreter = cfg.SystemInterpreter
		plan.Preinstall = append([]string(nil), cfg.UnpinnedPreinstall...)
		log.Info("vendor interpreter absent, using system interpreter", "path", plan.Interpreter)
	}

	return plan
}

// HelperArgs renders the packaging-helper argument vector: interpreter,
// preinstall set and the optional extra index.
func (p Plan) HelperArgs() []string {
	args := []string{"--python", p.Interpreter}
	for _, pkg := range p.Preinstall {
		args = append(args, "--preinstall", pkg)
	}
	if p.ExtraIndexURL != "" {
		args = append(args, "--extra-index-url", p.ExtraIndexURL)
	}
	return args
}

// DepScanArgs renders the dependency-scan pass arguments: one exclusion flag
// per excluded library.
func (p Plan) DepScanArgs() []string {
	return excludeFlags(p.ExcludedLibraries)
}

// StripArgs renders the strip pass arguments, using the same exclusion set
// as the dependency scan.
func (p Plan) StripArgs() []string {
	return excludeFlags(p.ExcludedLibraries)
}

func excludeFlags(libs []string) []string {
	args := make([]string, 0, len(libs))
	for _, lib := range libs {
		args = append(args, "-X"+lib)
	}
	return args
}
