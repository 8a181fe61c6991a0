package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/prospertech/prosperpack/internal/installer"
	"github.com/prospertech/prosperpack/internal/runner"
	"github.com/prospertech/prosperpack/internal/systemd"
)

var installWatch bool

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the packaged service units onto this host",
	Long: "Install every unit file from the source directory: stop a running instance,\n" +
		"copy the unit into the system unit directory, enable it and start it, then\n" +
		"reload the systemd unit cache once at the end.",
	RunE: runInstallCmd,
}

func init() {
	installCmd.Flags().BoolVar(&installWatch, "watch", false, "keep watching the source directory and re-install on changes")
	rootCmd.AddCommand(installCmd)
}

func runInstallCmd(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return fmt.Errorf("prosperpack install: %w", err)
	}

	ins := installer.NewInstaller(
		cfg.Installer,
		systemd.NewController(runner.NewExecRunner()),
		systemd.NewRootChecker(),
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := ins.Sync(ctx)
	if report != nil {
		printReport(cmd, report)
	}
	if err != nil {
		return fmt.Errorf("prosperpack install: %w", err)
	}

	if installWatch {
		if err := ins.Watch(ctx); err != nil {
			return fmt.Errorf("prosperpack install: %w", err)
		}
	}
	return nil
}

func printReport(cmd *cobra.Command, report *installer.Report) {
	w := cmd.OutOrStdout()
	for _, res := range report.Results {
		if res.OK() {
			fmt.Fprintf(w, "installed %s\n", res.Unit)
		} else {
			fmt.Fprintf(w, "failed    %s (%s): %v\n", res.Unit, res.Step, res.Err)
		}
	}
	if report.ReloadErr != nil {
		fmt.Fprintf(w, "daemon-reload failed: %v\n", report.ReloadErr)
	}
}
