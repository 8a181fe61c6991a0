package buildcfg

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prospertech/prosperpack/internal/runner"
)

// Execute runs the three packaging passes in order: helper, dependency scan,
// strip. The first failing pass aborts the build; pass failure semantics
// beyond the exit status belong to the tools themselves.
func (p Plan) Execute(ctx context.Context, run runner.CommandRunner, logger *slog.Logger) error {
	log := logger.With("component", "buildcfg")

	passes := []struct {
		name string
		bin  string
		args []string
	}{
		{"helper", p.HelperBin, p.HelperArgs()},
		{"dep-scan", p.DepScanBin, p.DepScanArgs()},
		{"strip", p.StripBin, p.StripArgs()},
	}

	for _, pass := range passes {
		if !run.LookPath(pass.bin) {
			return fmt.Errorf("buildcfg: %s pass: %s not found in PATH", pass.name, pass.bin)
		}

		log.Info("running pass", "pass", pass.name, "bin", pass.bin)
		output, err := run.Run(ctx, pass.bin, pass.args...)
		if err != nil {
			return fmt.Errorf("buildcfg: %s pass: %s: %w", pass.name, strings.TrimSpace(string(output)), err)
		}
		log.Info("pass completed", "pass", pass.name)
	}

	return nil
}
