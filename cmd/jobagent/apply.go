// cmd/jobagent/apply.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sapoepsilon/job-applicant/internal/apply"
	"github.com/sapoepsilon/job-applicant/internal/ledger"
)

func newApplyCmd() *cobra.Command {
	var ledgerPath string
	var limit int

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply to jobs that have a tailored resume",
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
				return fmt.Errorf("no ledger found in %s; run scrape first", cfg.App.DataDir)
			}

			client, err := newLLM(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			agent := apply.New(cfg, client)
			applied, err := agent.RunLedger(cmd.Context(), path, limit)
			if err != nil {
				return err
			}
			fmt.Printf("Applied to %d jobs from %s\n", applied, path)
			return nil
		},
	}
	cmd.Flags().StringVar(&ledgerPath, "ledger", "", "ledger file (default: most recent)")
	cmd.Flags().IntVar(&limit, "limit", 0, "max applications to submit (0 = all)")
	return cmd
}
