package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/prospertech/prosperpack/internal/buildcfg"
	"github.com/prospertech/prosperpack/internal/runner"
)

var (
	buildRun  bool
	buildYAML bool
)

var buildconfigCmd = &cobra.Command{
	Use:   "buildconfig",
	Short: "Resolve the package-build configuration",
	Long: "Probe the build host for the vendor-optimized interpreter and print the\n" +
		"resolved packaging passes. With --run, execute the helper, dependency-scan\n" +
		"and strip passes in order.",
	RunE: runBuildconfigCmd,
}

func init() {
	buildconfigCmd.Flags().BoolVar(&buildRun, "run", false, "execute the resolved packaging passes")
	buildconfigCmd.Flags().BoolVar(&buildYAML, "yaml", false, "print the resolved plan as YAML")
	rootCmd.AddCommand(buildconfigCmd)
}

func runBuildconfigCmd(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return fmt.Errorf("prosperpack buildconfig: %w", err)
	}

	plan := buildcfg.Resolve(cfg.Build, buildcfg.NewPathProber(), logger)

	if buildRun {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := plan.Execute(ctx, runner.NewExecRunner(), logger); err != nil {
			return fmt.Errorf("prosperpack buildconfig: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "packaging passes completed")
		return nil
	}

	w := cmd.OutOrStdout()
	if buildYAML {
		data, err := yaml.Marshal(plan)
		if err != nil {
			return fmt.Errorf("prosperpack buildconfig: marshal plan: %w", err)
		}
		fmt.Fprint(w, string(data))
		return nil
	}

	branch := "system"
	if plan.VendorSelected {
		branch = "vendor"
	}
	fmt.Fprintf(w, "interpreter: %s (%s)\n", plan.Interpreter, branch)
	fmt.Fprintf(w, "preinstall:  %s\n", strings.Join(plan.Preinstall, ", "))
	if plan.ExtraIndexURL != "" {
		fmt.Fprintf(w, "extra index: %s\n", plan.ExtraIndexURL)
	}
	fmt.Fprintf(w, "exclusions:  %s\n\n", strings.Join(plan.ExcludedLibraries, ", "))

	fmt.Fprintf(w, "%s %s\n", plan.HelperBin, strings.Join(plan.HelperArgs(), " "))
	fmt.Fprintf(w, "%s %s\n", plan.DepScanBin, strings.Join(plan.DepScanArgs(), " "))
	fmt.Fprintf(w, "%s %s\n", plan.StripBin, strings.Join(plan.StripArgs(), " "))
	return nil
}
