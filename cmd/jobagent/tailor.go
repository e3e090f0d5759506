// cmd/jobagent/tailor.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sapoepsilon/job-applicant/internal/ledger"
	"github.com/sapoepsilon/job-applicant/internal/tailor"
)

func newTailorCmd() *cobra.Command {
	var ledgerPath string
	var limit int

	cmd := &cobra.Command{
		Use:   "tailor",
		Short: "Generate tailored resume PDFs for jobs in the ledger",
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

			t, err := tailor.New(cfg, client)
			if err != nil {
				return err
			}
			done, err := t.RunLedger(cmd.Context(), path, limit)
			if err != nil {
				return err
			}
			fmt.Printf("Tailored %d resumes from %s\n", done, path)
			return nil
		},
	}
	cmd.Flags().StringVar(&ledgerPath, "ledger", "", "ledger file (default: most recent)")
	cmd.Flags().IntVar(&limit, "limit", 0, "max resumes to generate (0 = all)")
	return cmd
}
