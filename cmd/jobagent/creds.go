// cmd/jobagent/creds.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sapoepsilon/job-applicant/internal/credstore"
)

func newCredsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "creds",
		Short: "Manage stored site credentials",
	}
	cmd.AddCommand(newCredsSetCmd(), newCredsGetCmd())
	return cmd
}

func newCredsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <url> <username> <password>",
		Short: "Store or update credentials for a site",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store := credstore.New(cfg.App.CredentialsFile)
			if err := store.Upsert(args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Printf("Stored credentials for %s\n", credstore.NormalizeDomain(args[0]))
			return nil
		},
	}
}

func newCredsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <url>",
		Short: "Show stored credentials for a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store := credstore.New(cfg.App.CredentialsFile)
			user, pass, ok := store.Lookup(args[0])
			if !ok {
				return fmt.Errorf("no credentials stored for %s", credstore.NormalizeDomain(args[0]))
			}
			fmt.Printf("domain:   %s\nusername: %s\npassword: %s\n",
				credstore.NormalizeDomain(args[0]), user, pass)
			return nil
		},
	}
}
