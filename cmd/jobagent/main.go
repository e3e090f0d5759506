// cmd/jobagent/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sapoepsilon/job-applicant/internal/config"
	"github.com/sapoepsilon/job-applicant/internal/llm"
	"github.com/sapoepsilon/job-applicant/internal/secrets"
)

const defaultConfigPath = "config/config.yml"

var cfgPath string

func main() {
	// a missing .env is fine; the keychain is the fallback
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "jobagent",
		Short:         "Personal job-search pipeline: scrape listings, tailor resumes, apply",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath, "path to config file")

	root.AddCommand(
		newScrapeCmd(),
		newTailorCmd(),
		newApplyCmd(),
		newRunCmd(),
		newJobsCmd(),
		newConfigCmd(),
		newCredsCmd(),
		newKeyCmd(),
	)

	if err := root.Execute(); err != nil {
		log.Printf("[jobagent] %v", err)
		os.Exit(1)
	}
}

// dataDir: env if provided, else local folder.
func dataDir() string {
	if d := os.Getenv("JOBAGENT_DATA_DIR"); d != "" {
		return d
	}
	return "."
}

// resolveConfigPath picks the config file to load. With --config left at
// its default the shipped config is copied into the data dir on first run
// and the user copy wins from then on; an explicit --config is used as-is.
func resolveConfigPath() (string, error) {
	if cfgPath != defaultConfigPath {
		return cfgPath, nil
	}
	return bootstrapConfig(dataDir(), defaultConfigPath)
}

func bootstrapConfig(dir, defaultPath string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	userPath, err := config.EnsureUserConfig(dir, defaultPath)
	if err != nil {
		return "", fmt.Errorf("config bootstrap: %w", err)
	}
	return userPath, nil
}

// loadConfig reads, normalizes and validates the config, creating output
// directories as a side effect. Warnings print, errors abort.
func loadConfig() (config.Config, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}

	cfg, v := config.NormalizeAndValidate(cfg)
	for _, w := range v.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if err := v.Err(); err != nil {
		return cfg, err
	}

	if err := config.EnsureDirs(cfg); err != nil {
		return cfg, fmt.Errorf("create directories: %w", err)
	}
	return cfg, nil
}

// newLLM builds a Gemini client from whatever key source is configured.
func newLLM(ctx context.Context, cfg config.Config) (*llm.Client, error) {
	key, err := secrets.GeminiAPIKey(cfg.Gemini.KeyringAccount)
	if err != nil {
		return nil, err
	}
	return llm.NewClient(ctx, key, cfg.Gemini.Model)
}
