// cmd/jobagent/jobs.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sapoepsilon/job-applicant/internal/ledger"
)

func newJobsCmd() *cobra.Command {
	var ledgerPath string
	var filter string

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List jobs in the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			path := ledgerPath
			if path == "" {
				path = ledger.Latest(cfg.App.DataDir)
			}
			if path == "" {
				return fmt.Errorf("no ledger found in %s", cfg.App.DataDir)
			}

			var rows []ledger.Record
			switch filter {
			case "all":
				rows = ledger.ReadAll(path)
			case "unapplied":
				rows = ledger.Unapplied(path)
			case "ready":
				rows = ledger.ReadyToApply(path)
			default:
				return fmt.Errorf("unknown filter %q (all, unapplied, ready)", filter)
			}

			fmt.Printf("%s: %d jobs (%s)\n", path, len(rows), filter)
			for _, r := range rows {
				fmt.Printf("  %-40s %-25s resume=%-5s applied=%-5s %s\n",
					trunc(r.Title, 40), trunc(r.Company, 25),
					r.ResumeCreated, r.Applied, r.ExternalURL)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&ledgerPath, "ledger", "", "ledger file (default: most recent)")
	cmd.Flags().StringVar(&filter, "filter", "all", "all, unapplied or ready")
	return cmd
}

// trunc shortens on rune boundaries; byte slicing would split multibyte
// characters in titles.
func trunc(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
