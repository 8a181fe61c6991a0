package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prospertech/prosperpack/internal/installer"
	"github.com/prospertech/prosperpack/internal/runner"
	"github.com/prospertech/prosperpack/internal/systemd"
)

var purge bool

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the installed service units",
	RunE:  runUninstallCmd,
}

func init() {
	uninstallCmd.Flags().BoolVar(&purge, "purge", false, "also remove the state directory")
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstallCmd(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return fmt.Errorf("prosperpack uninstall: %w", err)
	}

	ins := installer.NewInstaller(
		cfg.Installer,
		systemd.NewController(runner.NewExecRunner()),
		systemd.NewRootChecker(),
		logger,
	)

	if err := ins.Uninstall(context.Background(), purge); err != nil {
		return fmt.Errorf("prosperpack uninstall: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "units uninstalled successfully")
	return nil
}
