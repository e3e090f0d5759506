// cmd/jobagent/scrape.go
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sapoepsilon/job-applicant/internal/scrape"
)

func newScrapeCmd() *cobra.Command {
	var max int

	cmd := &cobra.Command{
		Use:   "scrape <query>...",
		Short: "Scrape job listings into the ledger",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			path, added, err := scrape.Run(cmd.Context(), cfg, query, max)
			if err != nil {
				return err
			}
			fmt.Printf("Added %d new jobs to %s\n", added, path)
			return nil
		},
	}
	cmd.Flags().IntVar(&max, "max", 0, "max jobs to collect (0 = config default)")
	return cmd
}
