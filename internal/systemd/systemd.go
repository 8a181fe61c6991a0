// Package systemd wraps the host service manager's command interface.
// There is deliberately no D-Bus client here: the contract with the host is
// command invocation by convention, same as the packaging scripts it replaces.
package systemd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/prospertech/prosperpack/internal/runner"
)

// Controller abstracts systemd service management for testability.
// All methods that modify state must be idempotent: repeating an operation
// that is already applied returns nil.
type Controller interface {
	// IsAvailable returns true if systemd is managing this host.
	IsAvailable() bool

	// DaemonReload executes systemctl daemon-reload to reload unit file changes.
	DaemonReload(ctx context.Context) error

	// Enable enables the named service to start on boot.
	Enable(ctx context.Context, service string) error

	// Disable disables the named service from starting on boot.
	Disable(ctx context.Context, service string) error

	// Start starts the named service now.
	Start(ctx context.Context, service string) error

	// Stop stops the named service. Returns nil if the service is not running.
	Stop(ctx context.Context, service string) error

	// IsActive returns true if the named service is currently running.
	IsActive(ctx context.Context, service string) bool

	// IsEnabled returns true if the named service is enabled for boot.
	IsEnabled(ctx context.Context, service string) bool
}

// controller implements Controller by shelling out to systemctl.
type controller struct {
	runner runner.CommandRunner
}

// NewController returns a Controller that drives the real systemctl binary.
func NewController(run runner.CommandRunner) Controller {
	return &controller{runner: run}
}

func (c *controller) IsAvailable() bool {
	if !c.runner.LookPath("systemctl") {
		return false
	}
	// systemd is only the active service manager when its runtime
	// directory exists, regardless of the binary being installed.
	info, err := os.Stat("/run/systemd/system")
	return err == nil && info.IsDir()
}

func (c *controller) DaemonReload(ctx context.Context) error {
	return c.run(ctx, "daemon-reload")
}

func (c *controller) Enable(ctx context.Context, service string) error {
	return c.run(ctx, "enable", service)
}

func (c *controller) Disable(ctx context.Context, service string) error {
	return c.run(ctx, "disable", service)
}

func (c *controller) Start(ctx context.Context, service string) error {
	return c.run(ctx, "start", service)
}

func (c *controller) Stop(ctx context.Context, service string) error {
	return c.run(ctx, "stop", service)
}

func (c *controller) IsActive(ctx context.Context, service string) bool {
	_, err := c.runner.Run(ctx, "systemctl", "is-active", "--quiet", service)
	return err == nil
}

func (c *controller) IsEnabled(ctx context.Context, service string) bool {
	_, err := c.runner.Run(ctx, "systemctl", "is-enabled", "--quiet", service)
	return err == nil
}

func (c *controller) run(ctx context.Context, args ...string) error {
	output, err := c.runner.Run(ctx, "systemctl", args...)
	if err != nil {
		return fmt.Errorf("systemd: systemctl %s: %s: %w", args[0], strings.TrimSpace(string(output)), err)
	}
	return nil
}

// RootChecker abstracts privilege checking for testability.
type RootChecker interface {
	// IsRoot returns true if the current process has root privileges.
	IsRoot() bool
}

// realRootChecker implements RootChecker using os.Getuid.
type realRootChecker struct{}

// NewRootChecker returns a RootChecker that checks the real process UID.
func NewRootChecker() RootChecker {
	return realRootChecker{}
}

func (realRootChecker) IsRoot() bool {
	return os.Getuid() == 0
}
