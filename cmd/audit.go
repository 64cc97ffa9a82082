package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yunus25jmi1/personal-Blog-website/internal/audit"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Verify the generated site against the route plan",
	Long: `Recompute the route plan from the index and check that every planned
file exists in the output directory. Exits non-zero when any planned route
is missing.`,
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rep, err := audit.Run(cfg)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), audit.FormatTable(rep))

	if n := rep.Missing(); n > 0 {
		return fmt.Errorf("%d planned routes missing from %s", n, cfg.Build.OutputDir)
	}
	return nil
}
