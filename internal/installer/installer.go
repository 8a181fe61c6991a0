package installer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sys/unix"

	"github.com/prospertech/prosperpack/internal/fsutil"
	"github.com/prospertech/prosperpack/internal/manifest"
	"github.com/prospertech/prosperpack/internal/systemd"
)

// Installer installs and removes service units on the local host.
type Installer struct {
	cfg     Config
	systemd systemd.Controller
	root    systemd.RootChecker
	store   *manifest.Store
	logger  *slog.Logger
}

// NewInstaller creates an Installer with defaults applied.
func NewInstaller(cfg Config, ctrl systemd.Controller, root systemd.RootChecker, logger *slog.Logger) *Installer {
	cfg.ApplyDefaults()
	return &Installer{
		cfg:     cfg,
		systemd: ctrl,
		root:    root,
		store:   manifest.NewStore(cfg.ManifestPath),
		logger:  logger.With("component", "installer"),
	}
}

// Sync installs every unit file found in the source directory. Each unit gets
// one stop/copy/enable/start sequence, in that order, before the next unit is
// processed. A failed step fails that unit and skips its remaining steps;
// later units still run. The trailing daemon-reload runs exactly once, after
// all units, regardless of individual outcomes.
//
// Sync returns the per-unit report plus an aggregate error when any unit or
// the reload failed.
func (ins *Installer) Sync(ctx context.Context) (*Report, error) {
	if err := ins.preflight(); err != nil {
		return nil, err
	}

	units, err := DiscoverUnits(ins.cfg.SourceDir)
	if err != nil {
		return nil, err
	}

	man, err := ins.store.Load()
	if err != nil {
		return nil, err
	}

	report := &Report{Results: make([]UnitResult, 0, len(units))}
	for _, unit := range units {
		res := ins.installUnit(ctx, unit)
		if res.OK() {
			digest, derr := manifest.DigestFile(unit.Path)
			if derr != nil {
				res.Step = "record"
				res.Err = derr
			} else {
				man.Units[unit.Name] = manifest.UnitRecord{
					SourcePath:    unit.Path,
					InstalledPath: filepath.Join(ins.cfg.UnitDir, unit.Name),
					Digest:        digest,
					InstalledAt:   time.Now().UTC(),
				}
			}
		}
		if res.OK() {
			ins.logger.Info("unit installed", "unit", unit.Name)
		} else {
			ins.logger.Error("unit install failed", "unit", unit.Name, "step", res.Step, "error", res.Err)
		}
		report.Results = append(report.Results, res)
	}

	// One reload after all units, no matter how they fared.
	if err := ins.systemd.DaemonReload(ctx); err != nil {
		report.ReloadErr = err
		ins.logger.Error("daemon-reload failed", "error", err)
	} else {
		ins.logger.Info("systemd daemon reloaded")
	}

	if err := ins.store.Save(man); err != nil {
		return report, errors.Join(report.Err(), err)
	}

	return report, report.Err()
}

// installUnit runs the stop/copy/enable/start sequence for one unit.
func (ins *Installer) installUnit(ctx context.Context, unit Unit) UnitResult {
	res := UnitResult{Unit: unit.Name}

	// Stop only a running instance. A fresh install has nothing to stop and
	// must not fail on it.
	if ins.systemd.IsActive(ctx, unit.Name) {
		if err := ins.systemd.Stop(ctx, unit.Name); err != nil {
			res.Step = "stop"
			res.Err = err
			return res
		}
		ins.logger.Info("service stopped", "unit", unit.Name)
	}

	dst := filepath.Join(ins.cfg.UnitDir, unit.Name)
	if err := fsutil.CopyFileAtomic(unit.Path, dst, 0o644); err != nil {
		res.Step = "copy"
		res.Err = err
		return res
	}
	ins.logger.Info("unit file copied", "unit", unit.Name, "path", dst)

	if err := ins.systemd.Enable(ctx, unit.Name); err != nil {
		res.Step = "enable"
		res.Err = err
		return res
	}

	if err := ins.systemd.Start(ctx, unit.Name); err != nil {
		res.Step = "start"
		res.Err = err
		return res
	}

	return res
}

// Uninstall removes every unit recorded in the manifest: stop, disable and
// remove each unit file, then one daemon-reload. If purge is true, the state
// directory is removed as well.
func (ins *Installer) Uninstall(ctx context.Context, purge bool) error {
	if !ins.root.IsRoot() {
		return errors.New("installer: uninstall requires root privileges")
	}

	man, err := ins.store.Load()
	if err != nil {
		return err
	}
	if len(man.Units) == 0 {
		ins.logger.Info("no units installed, nothing to do")
		return nil
	}

	names := make([]string, 0, len(man.Units))
	for name := range man.Units {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rec := man.Units[name]

		// Stop and disable may fail for a unit that was never started or
		// was removed behind our back. Log and keep going.
		if err := ins.systemd.Stop(ctx, name); err != nil {
			ins.logger.Info("stop service", "unit", name, "error", err)
		}
		if err := ins.systemd.Disable(ctx, name); err != nil {
			ins.logger.Info("disable service", "unit", name, "error", err)
		}

		if err := os.Remove(rec.InstalledPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("installer: remove unit file %s: %w", rec.InstalledPath, err)
		}
		delete(man.Units, name)
		ins.logger.Info("unit removed", "unit", name, "path", rec.InstalledPath)
	}

	if err := ins.systemd.DaemonReload(ctx); err != nil {
		return fmt.Errorf("installer: daemon-reload: %w", err)
	}

	if purge {
		stateDir := filepath.Dir(ins.cfg.ManifestPath)
		if err := os.RemoveAll(stateDir); err != nil {
			return fmt.Errorf("installer: remove state directory %s: %w", stateDir, err)
		}
		ins.logger.Info("state directory removed", "path", stateDir)
		return nil
	}

	return ins.store.Save(man)
}

// UnitStatus describes one installed unit for the status report.
type UnitStatus struct {
	Unit    string
	Active  bool
	Enabled bool

	// Drifted is true when the installed unit file's content no longer
	// matches the digest recorded at install time.
	Drifted bool

	// Missing is true when the installed unit file no longer exists.
	Missing bool
}

// Status reports the state of every unit recorded in the manifest, in
// lexical order.
func (ins *Installer) Status(ctx context.Context) ([]UnitStatus, error) {
	man, err := ins.store.Load()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(man.Units))
	for name := range man.Units {
		names = append(names, name)
	}
	sort.Strings(names)

	statuses := make([]UnitStatus, 0, len(names))
	for _, name := range names {
		rec := man.Units[name]
		st := UnitStatus{
			Unit:    name,
			Active:  ins.systemd.IsActive(ctx, name),
			Enabled: ins.systemd.IsEnabled(ctx, name),
		}

		digest, err := manifest.DigestFile(rec.InstalledPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			st.Missing = true
		case err != nil:
			return nil, err
		case digest != rec.Digest:
			st.Drifted = true
		}

		statuses = append(statuses, st)
	}
	return statuses, nil
}

// preflight checks the invariants every mutating run depends on.
func (ins *Installer) preflight() error {
	if !ins.root.IsRoot() {
		return errors.New("installer: install requires root privileges")
	}
	if !ins.systemd.IsAvailable() {
		return errors.New("installer: systemd is not available")
	}

	info, err := os.Stat(ins.cfg.SourceDir)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("installer: source directory %s does not exist", ins.cfg.SourceDir)
	}
	if err != nil {
		return fmt.Errorf("installer: stat source directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("installer: %s is not a directory", ins.cfg.SourceDir)
	}

	if err := unix.Access(ins.cfg.UnitDir, unix.W_OK); err != nil {
		return fmt.Errorf("installer: unit directory %s is not writable: %w", ins.cfg.UnitDir, err)
	}
	return nil
}
