// Package buildcfg computes the package-build configuration: which Python
// interpreter the packaging helper bundles, which packages are preinstalled
// into the build virtualenv, and which large libraries the dependency-scan
// and strip passes must leave alone.
//
// What used to be conditionals and literals buried in a build-rules file is
// an explicit configuration structure here.
package buildcfg

import "errors"

// DefaultVendorInterpreter is the vendor-optimized interpreter probed for on
// the build host.
const DefaultVendorInterpreter = "/opt/python3/bin/python3"

// DefaultSystemInterpreter is the fallback interpreter.
const DefaultSystemInterpreter = "/usr/bin/python3"

// Packaging pass binaries.
const (
	DefaultHelperBin  = "dh_virtualenv"
	DefaultDepScanBin = "dh_shlibdeps"
	DefaultStripBin   = "dh_strip"
)

// defaultPinnedPreinstall is the preinstall set used with the vendor
// interpreter. The pins match the wheel versions the vendor distribution
// was built against.
var defaultPinnedPreinstall = []string{
	"pip==18.0",
	"setuptools==40.0.0",
	"numpy==1.14.5",
	"matplotlib==2.2.2",
}

// defaultUnpinnedPreinstall is the preinstall set used with the system
// interpreter.
var defaultUnpinnedPreinstall = []string{
	"pip",
	"setuptools",
	"numpy",
	"matplotlib",
}

// defaultExcludedLibraries are the large third-party libraries excluded from
// both the dependency-scan and strip passes, regardless of interpreter.
var defaultExcludedLibraries = []string{
	"numpy",
	"scipy",
	"pandas",
	"matplotlib",
}

// Config holds the build-configuration inputs.
type Config struct {
	// VendorInterpreter is the vendor-optimized interpreter path probed for
	// on the build host.
	// Default: /opt/python3/bin/python3
	VendorInterpreter string `yaml:"vendor_interpreter"`

	// SystemInterpreter is the interpreter used when the vendor one is absent.
	// Default: /usr/bin/python3
	SystemInterpreter string `yaml:"system_interpreter"`

	// PinnedPreinstall is the version-pinned preinstall set for the vendor
	// branch.
	PinnedPreinstall []string `yaml:"pinned_preinstall"`

	// UnpinnedPreinstall is the preinstall set for the system branch.
	UnpinnedPreinstall []string `yaml:"unpinned_preinstall"`

	// ExtraIndexURL is an alternate package index passed to the helper
	// (optional).
	ExtraIndexURL string `yaml:"extra_index_url"`

	// ExcludedLibraries are excluded from the dependency-scan and strip
	// passes. The same set applies to both.
	ExcludedLibraries []string `yaml:"excluded_libraries"`

	// HelperBin, DepScanBin and StripBin name the packaging pass binaries.
	HelperBin  string `yaml:"helper_bin"`
	DepScanBin string `yaml:"dep_scan_bin"`
	StripBin   string `yaml:"strip_bin"`
}

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.VendorInterpreter == "" {
		c.VendorInterpreter = DefaultVendorInterpreter
	}
	if c.SystemInterpreter == "" {
		c.SystemInterpreter = DefaultSystemInterpreter
	}
	if c.PinnedPreinstall == nil {
		c.PinnedPreinstall = append([]string(nil), defaultPinnedPreinstall...)
	}
	if c.UnpinnedPreinstall == nil {
		c.UnpinnedPreinstall = append([]string(nil), defaultUnpinnedPreinstall...)
	}
	if c.ExcludedLibraries == nil {
		c.ExcludedLibraries = append([]string(nil), defaultExcludedLibraries...)
	}
	if c.HelperBin == "" {
		c.HelperBin = DefaultHelperBin
	}
	if c.DepScanBin == "" {
		c.DepScanBin = DefaultDepScanBin
	}
	if c.StripBin == "" {
		c.StripBin = DefaultStripBin
	}
}

// Validate checks that required fields are set.
func (c *Config) Validate() error {
	if c.VendorInterpreter == "" {
		return errors.New("buildcfg: config: vendor_interpreter is required")
	}
	if c.SystemInterpreter == "" {
		return errors.New("buildcfg: config: system_interpreter is required")
	}
	if c.HelperBin == "" {
		return errors.New("buildcfg: config: helper_bin is required")
	}
	if c.DepScanBin == "" {
		return errors.New("buildcfg: config: dep_scan_bin is required")
	}
	if c.StripBin == "" {
		return errors.New("buildcfg: config: strip_bin is required")
	}
	return nil
}
