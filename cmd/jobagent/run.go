// cmd/jobagent/run.go
package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sapoepsilon/job-applicant/internal/apply"
	"github.com/sapoepsilon/job-applicant/internal/scrape"
	"github.com/sapoepsilon/job-applicant/internal/tailor"
)

type stage struct {
	name string
	fn   func() error
}

// runStages executes every stage in order, logging failures and moving
// on. One broken stage must not strand work the others can still do: a
// scrape that died mid-walk has usually landed rows worth tailoring, and
// earlier runs may have left resumes ready to apply.
func runStages(stages []stage) {
	for _, s := range stages {
		if err := s.fn(); err != nil {
			log.Printf("[run] %s stage: %v", s.name, err)
		}
	}
}

func newRunCmd() *cobra.Command {
	var max int

	cmd := &cobra.Command{
		Use:   "run <query>...",
		Short: "Full pipeline: scrape, tailor resumes, apply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			client, err := newLLM(ctx, cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			query := strings.Join(args, " ")
			var path string

			runStages([]stage{
				{"scrape", func() error {
					var added int
					var err error
					path, added, err = scrape.Run(ctx, cfg, query, max)
					fmt.Printf("Scraped %d new jobs into %s\n", added, path)
					return err
				}},
				{"tailor", func() error {
					t, err := tailor.New(cfg, client)
					if err != nil {
						return err
					}
					done, err := t.RunLedger(ctx, path, 0)
					fmt.Printf("Tailored %d resumes\n", done)
					return err
				}},
				{"apply", func() error {
					agent := apply.New(cfg, client)
					applied, err := agent.RunLedger(ctx, path, 0)
					fmt.Printf("Applied to %d jobs\n", applied)
					return err
				}},
			})
			return nil
		},
	}
	cmd.Flags().IntVar(&max, "max", 0, "max jobs to scrape (0 = config default)")
	return cmd
}
