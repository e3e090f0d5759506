// Package apply drives a browser through external application pages,
// letting Gemini plan the form fill and the ledger record the outcome.
package apply

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sapoepsilon/job-applicant/internal/config"
	"github.com/sapoepsilon/job-applicant/internal/credstore"
	"github.com/sapoepsilon/job-applicant/internal/ledger"
	"github.com/sapoepsilon/job-applicant/internal/llm"
)

type Agent struct {
	cfg    config.Config
	client *llm.Client
	creds  *credstore.Store
}

func New(cfg config.Config, client *llm.Client) *Agent {
	return &Agent{
		cfg:    cfg,
		client: client,
		creds:  credstore.New(cfg.App.CredentialsFile),
	}
}

// RunLedger applies to every row in the ledger that has a tailored resume
// and no application yet, up to limit (0 = no limit). Per-job failures are
// logged and the loop moves on. The inter-job delay is deliberate; bursts
// of submissions get accounts flagged.
func (a *Agent) RunLedger(ctx context.Context, ledgerPath string, limit int) (applied int, err error) {
	jobs := ledger.ReadyToApply(ledgerPath)
	if len(jobs) == 0 {
		return 0, fmt.Errorf("no jobs ready to apply in %s", ledgerPath)
	}
	log.Printf("[apply] %d jobs ready in %s", len(jobs), ledgerPath)

	delay := time.Duration(a.cfg.Apply.JobDelaySeconds) * time.Second
	for i, job := range jobs {
		if limit > 0 && applied >= limit {
			break
		}
		if i > 0 {
			log.Printf("[apply] waiting %s before next application", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return applied, ctx.Err()
			}
		}

		if err := a.applyOne(ctx, ledgerPath, job); err != nil {
			log.Printf("[apply] %q at %q: %v", job.Title, job.Company, err)
			continue
		}
		applied++
	}
	return applied, nil
}

// applyOne runs one application end to end in a fresh browser so no
// session state leaks between employers.
func (a *Agent) applyOne(ctx context.Context, ledgerPath string, job ledger.Record) error {
	if job.ExternalURL == "" || job.ExternalURL == ledger.URLNotFound {
		return fmt.Errorf("no external application URL")
	}

	browserCtx, cancel, err := a.newBrowser(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	pageText, finalURL, err := a.openPage(browserCtx, job.ExternalURL)
	if err != nil {
		return err
	}

	username, password, haveCreds := a.creds.Lookup(finalURL)
	freshSignup := false
	if !haveCreds && looksLikeLogin(pageText) {
		// the site will want an account; give the model something to
		// sign up with and remember it if the application goes through
		username = a.cfg.Personal.Email
		password = generatePassword()
		freshSignup = true
	}

	prompt := BuildFormPrompt(job, a.cfg.Personal, pageText, job.ResumePDFPath, haveCreds || freshSignup)
	if username != "" {
		prompt += fmt.Sprintf("\n\nLOGIN CREDENTIALS (use for any sign-in or sign-up fields):\n- Email/username: %s\n- Password: %s\n", username, password)
	}

	raw, err := a.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return fmt.Errorf("plan form fill: %w", err)
	}
	plan, err := parsePlan(raw, a.cfg.Apply.MaxPlanSteps)
	if err != nil {
		return err
	}
	if !plan.CanApply {
		return fmt.Errorf("model declined: %s", plan.Reason)
	}

	log.Printf("[apply] executing %d steps on %s", len(plan.Steps), finalURL)
	for i, step := range plan.Steps {
		if err := a.runStep(browserCtx, step); err != nil {
			return fmt.Errorf("step %d (%s %s): %w", i+1, step.Action, step.Label, err)
		}
	}

	if freshSignup && plan.NeedsLogin {
		if err := a.creds.Upsert(finalURL, username, password); err != nil {
			log.Printf("[apply] could not store new credentials for %s: %v", finalURL, err)
		}
	}

	ok := ledger.MarkStatus(ledgerPath, ledger.IdentityOf(job), ledger.ColApplied, "true", nil)
	if !ok {
		log.Printf("[apply] submitted but ledger update failed for %q at %q", job.Title, job.Company)
	}
	log.Printf("[apply] applied to %q at %q", job.Title, job.Company)
	return nil
}

// generatePassword builds a throwaway password that satisfies the usual
// "upper, lower, digit, symbol" checkboxes.
func generatePassword() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "Aa1!" + fmt.Sprint(time.Now().UnixNano())
	}
	return "Aa1!" + strings.ToLower(hex.EncodeToString(b))
}
