// cmd/jobagent/key.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sapoepsilon/job-applicant/internal/secrets"
)

func newKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the Gemini API key in the OS keychain",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <api-key>",
		Short: "Store the Gemini API key in the keychain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := secrets.SetGeminiAPIKey(cfg.Gemini.KeyringAccount, args[0]); err != nil {
				return err
			}
			fmt.Println("API key stored in keychain")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Remove the Gemini API key from the keychain",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := secrets.DeleteGeminiAPIKey(cfg.Gemini.KeyringAccount); err != nil {
				return err
			}
			fmt.Println("API key removed from keychain")
			return nil
		},
	})

	return cmd
}
