package config

import (
	"errors"
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

func (v Validation) Err() error {
	if v.OK() {
		return nil
	}
	return errors.New("config validation failed:\n- " + strings.Join(v.Errors, "\n- "))
}

// NormalizeAndValidate fills defaults, trims paths and reports what a
// usable config still needs.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.App.DataDir = strings.TrimSpace(out.App.DataDir)
	out.App.ResumesDir = strings.TrimSpace(out.App.ResumesDir)
	out.App.CredentialsFile = strings.TrimSpace(out.App.CredentialsFile)

	if out.App.DataDir == "" {
		out.App.DataDir = "."
	}
	if out.Gemini.Model == "" {
		out.Gemini.Model = "gemini-2.5-flash"
	}
	if out.Gemini.RepairModel == "" {
		out.Gemini.RepairModel = out.Gemini.Model
	}
	if out.Scrape.BaseURL == "" {
		out.Scrape.BaseURL = "https://hiring.cafe"
	}
	if out.Scrape.MaxJobs <= 0 {
		out.Scrape.MaxJobs = 50
	}
	if out.Scrape.RequestsPerSecond <= 0 {
		out.Scrape.RequestsPerSecond = 0.5
	}
	if out.Scrape.PageDelayMillis <= 0 {
		out.Scrape.PageDelayMillis = 1000
	}
	if out.Apply.JobDelaySeconds <= 0 {
		out.Apply.JobDelaySeconds = 30
	}
	if out.Apply.MaxPlanSteps <= 0 {
		out.Apply.MaxPlanSteps = 10
	}

	if out.App.ResumesDir == "" {
		res.addErr("app.resumes_dir is required (directory holding your source resumes)")
	}
	if out.Personal.Name == "" || out.Personal.Email == "" {
		res.addWarn("personal.name/personal.email are empty; application forms will be filled with blanks")
	}
	if out.Scrape.RequestsPerSecond > 2 {
		res.addWarn("scrape.requests_per_second is %g; hammering the site risks a ban", out.Scrape.RequestsPerSecond)
	}
	if out.Apply.JobDelaySeconds < 10 {
		res.addWarn("apply.job_delay_seconds is very low (%d); the delay is a courtesy to the sites you apply on", out.Apply.JobDelaySeconds)
	}

	return out, res
}
