package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sapoepsilon/job-applicant/internal/config"
)

func writeDefaultConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	body := "app:\n  resumes_dir: ./resumes\npersonal:\n  name: Jane Doe\n  email: jane@example.com\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestBootstrapConfigCopiesDefaultOnce(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")
	defaultPath := writeDefaultConfig(t)

	userPath, err := bootstrapConfig(dataDir, defaultPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "config.yml"), userPath)

	// edits to the user copy survive later startups
	require.NoError(t, os.WriteFile(userPath, []byte("app:\n  resumes_dir: ./edited\n"), 0o644))
	again, err := bootstrapConfig(dataDir, defaultPath)
	require.NoError(t, err)
	assert.Equal(t, userPath, again)

	cfg, err := config.Load(userPath)
	require.NoError(t, err)
	assert.Equal(t, "./edited", cfg.App.ResumesDir)
}

func TestInitConfigPersistsDefaults(t *testing.T) {
	path := writeDefaultConfig(t)
	require.NoError(t, initConfig(path))

	// the saved file carries the filled-in defaults, not just the sparse input
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "https://hiring.cafe", cfg.Scrape.BaseURL)
	assert.Equal(t, 30, cfg.Apply.JobDelaySeconds)
}

func TestInitConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  data_dir: .\n"), 0o644))

	err := initConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resumes_dir")
}

func TestRunStagesContinuesAfterFailure(t *testing.T) {
	var ran []string
	runStages([]stage{
		{"first", func() error { ran = append(ran, "first"); return errors.New("boom") }},
		{"second", func() error { ran = append(ran, "second"); return nil }},
		{"third", func() error { ran = append(ran, "third"); return errors.New("also boom") }},
	})
	assert.Equal(t, []string{"first", "second", "third"}, ran)
}

func TestTruncKeepsRunesIntact(t *testing.T) {
	title := "Développeur backend très expérimenté côté API"
	out := trunc(title, 20)

	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, 20, len([]rune(out)))

	assert.Equal(t, "short", trunc("short", 20))
}
