// cmd/jobagent/configcmd.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sapoepsilon/job-applicant/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Bootstrap the user config and fill in defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath()
			if err != nil {
				return err
			}
			if err := initConfig(path); err != nil {
				return err
			}
			fmt.Printf("Config ready at %s\n", path)
			return nil
		},
	})

	return cmd
}

// initConfig rewrites the config at path with every default filled in, so
// the user edits a complete file instead of guessing at field names.
func initConfig(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}

	normalized, v := config.NormalizeAndValidate(cfg)
	for _, w := range v.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	if err := v.Err(); err != nil {
		return err
	}
	return config.SaveAtomic(path, normalized)
}
