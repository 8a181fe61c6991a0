package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prospertech/prosperpack/internal/installer"
	"github.com/prospertech/prosperpack/internal/runner"
	"github.com/prospertech/prosperpack/internal/systemd"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the installed service units",
	Long:  "List every unit recorded in the install manifest with its systemd state\nand whether the installed unit file still matches what was installed.",
	RunE:  runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return fmt.Errorf("prosperpack status: %w", err)
	}

	ins := installer.NewInstaller(
		cfg.Installer,
		systemd.NewController(runner.NewExecRunner()),
		systemd.NewRootChecker(),
		logger,
	)

	statuses, err := ins.Status(context.Background())
	if err != nil {
		return fmt.Errorf("prosperpack status: %w", err)
	}

	w := cmd.OutOrStdout()
	if len(statuses) == 0 {
		fmt.Fprintln(w, "no units installed")
		return nil
	}

	fmt.Fprintf(w, "%-32s %-8s %-8s %s\n", "UNIT", "ACTIVE", "ENABLED", "FILE")
	for _, st := range statuses {
		fmt.Fprintf(w, "%-32s %-8s %-8s %s\n", st.Unit, yesNo(st.Active), yesNo(st.Enabled), fileState(st))
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func fileState(st installer.UnitStatus) string {
	switch {
	case st.Missing:
		return "missing"
	case st.Drifted:
		return "drifted"
	default:
		return "ok"
	}
}
