// Package tailor generates a per-listing LaTeX resume with Gemini, renders
// it to PDF and records the artifact back into the job ledger.
package tailor

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sapoepsilon/job-applicant/internal/config"
	"github.com/sapoepsilon/job-applicant/internal/ledger"
	"github.com/sapoepsilon/job-applicant/internal/llm"
	"github.com/sapoepsilon/job-applicant/internal/render"
)

const maxCompileAttempts = 3

type Tailor struct {
	cfg     config.Config
	client  *llm.Client
	resumes []Resume
}

func New(cfg config.Config, client *llm.Client) (*Tailor, error) {
	resumes, err := LoadResumes(cfg.App.ResumesDir)
	if err != nil {
		return nil, err
	}
	log.Printf("[tailor] loaded %d source resumes from %s", len(resumes), cfg.App.ResumesDir)
	return &Tailor{cfg: cfg, client: client, resumes: resumes}, nil
}

// RunLedger tailors a resume for every row in the ledger that doesn't have
// one yet, up to limit (0 = no limit). Per-job failures are logged and the
// loop moves on; the ledger records whatever succeeded.
func (t *Tailor) RunLedger(ctx context.Context, ledgerPath string, limit int) (done int, err error) {
	rows := ledger.ReadAll(ledgerPath)
	if len(rows) == 0 {
		return 0, fmt.Errorf("no jobs in %s", ledgerPath)
	}

	for _, job := range rows {
		if limit > 0 && done >= limit {
			break
		}
		if job.ResumeCreated.Bool() {
			log.Printf("[tailor] skip %q at %q: resume already created", job.Title, job.Company)
			continue
		}
		if strings.TrimSpace(job.Description) == "" {
			log.Printf("[tailor] skip %q at %q: no job description", job.Title, job.Company)
			continue
		}

		pdfPath, err := t.tailorOne(ctx, job)
		if err != nil {
			log.Printf("[tailor] %q at %q: %v", job.Title, job.Company, err)
			continue
		}

		ok := ledger.MarkStatus(ledgerPath, ledger.IdentityOf(job),
			ledger.ColResumeCreated, "true",
			map[string]string{ledger.ColResumePDFPath: pdfPath})
		if !ok {
			log.Printf("[tailor] resume built but ledger update failed for %q at %q", job.Title, job.Company)
		}
		done++
	}
	return done, nil
}

// tailorOne runs generate -> validate -> compile for one job, asking the
// model to repair its own LaTeX when pdflatex rejects it. When every
// attempt fails the .tex path is returned so nothing generated is lost.
func (t *Tailor) tailorOne(ctx context.Context, job ledger.Record) (string, error) {
	raw, err := t.client.Generate(ctx, BuildPrompt(job, t.resumes))
	if err != nil {
		return "", fmt.Errorf("generate resume: %w", err)
	}

	latex := llm.CleanFences(raw)
	texPath := filepath.Join(t.cfg.App.LatexOutputDir, artifactName(job)+".tex")

	for attempt := 1; attempt <= maxCompileAttempts; attempt++ {
		fixed, problems := render.ValidateAndFix(latex)
		for _, p := range problems {
			log.Printf("[tailor] latex check: %s", p)
		}

		if err := os.WriteFile(texPath, []byte(fixed), 0o644); err != nil {
			return "", fmt.Errorf("write latex: %w", err)
		}

		pdfPath, cerr := render.CompileLaTeX(ctx, texPath, t.cfg.App.PDFOutputDir)
		if cerr == nil {
			if _, perr := render.CheckPDF(pdfPath); perr != nil {
				log.Printf("[tailor] pdf check: %v", perr)
			}
			return pdfPath, nil
		}

		if attempt == maxCompileAttempts {
			log.Printf("[tailor] compile failed after %d attempts, keeping %s", attempt, texPath)
			return texPath, nil
		}

		log.Printf("[tailor] compile attempt %d failed, asking model to repair", attempt)
		repaired, rerr := t.client.GenerateWith(ctx, t.cfg.Gemini.RepairModel,
			BuildRepairPrompt(fixed, cerr.Error()))
		if rerr != nil {
			return "", fmt.Errorf("repair request: %w", rerr)
		}
		latex = llm.CleanFences(repaired)
	}
	return texPath, nil
}

// artifactName builds a filesystem-safe, timestamped base name like
// Backend_Engineer_Acme_Corp_20250114_093015.
func artifactName(job ledger.Record) string {
	clean := func(s, fallback string) string {
		s = strings.TrimSpace(s)
		if s == "" {
			s = fallback
		}
		s = strings.ReplaceAll(s, "/", "_")
		return strings.ReplaceAll(s, " ", "_")
	}
	return fmt.Sprintf("%s_%s_%s",
		clean(job.Title, "Unknown_Position"),
		clean(job.Company, "Unknown_Company"),
		time.Now().Format("20060102_150405"))
}
