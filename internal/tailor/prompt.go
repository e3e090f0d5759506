package tailor

import (
	"fmt"
	"strings"

	"github.com/sapoepsilon/job-applicant/internal/ledger"
)

const resumeSeparator = "\n\n=== RESUME SEPARATOR ===\n\n"

// bulletRules is the part of the prompt that took the longest to tune:
// bullets compile to one physical line at 90-100 chars and exactly two at
// 180-190, anything between wraps badly in the locked template.
const bulletRules = `
BULLET LENGTH RULES (strict):
- Every bullet must be 90-100 characters OR 180-190 characters, counted
  including spaces and punctuation.
- Never output a bullet between 101 and 179 characters; expand it to
  180-190 or trim it to 90-100.
- Prefer 90-100; use 180-190 only for genuinely complex achievements.
- Aim for at least 3 of 4 bullets per job in the 90-100 range.

CONTENT RULES:
- Keep the exact employers and date ranges from the source resumes.
- Never claim a technology that did not exist during that employment.
- 3-4 bullets per job, strong action verbs, quantified outcomes.
- Skills section: max 8-10 items per category, each line under 100 chars.
- Exactly one project, the most relevant, with 2-3 bullets.

OUTPUT:
- Return ONLY complete, compilable LaTeX. No explanations, no markdown.`

// BuildPrompt assembles the tailoring prompt for one ledger row.
func BuildPrompt(job ledger.Record, resumes []Resume) string {
	var corpus []string
	for _, r := range resumes {
		corpus = append(corpus, fmt.Sprintf("Resume: %s\n%s", r.Filename, r.Content))
	}

	var b strings.Builder
	b.WriteString("You are an expert resume writer. Create a tailored one-page LaTeX resume for this application:\n\n")
	fmt.Fprintf(&b, "JOB TITLE: %s\n", job.Title)
	fmt.Fprintf(&b, "COMPANY: %s\n\n", job.Company)
	fmt.Fprintf(&b, "JOB DESCRIPTION:\n%s\n\n", job.Description)
	fmt.Fprintf(&b, "EXISTING RESUMES:\n%s\n", strings.Join(corpus, resumeSeparator))
	b.WriteString("\nAPPROACH:\n")
	b.WriteString("- Find the 3-5 most important requirements in the job description.\n")
	b.WriteString("- Map them to real work in the source resumes and shift emphasis there.\n")
	b.WriteString("- Reframe truthfully; never invent experience.\n")
	b.WriteString(bulletRules)
	return b.String()
}

// BuildRepairPrompt asks the model to fix LaTeX that failed to compile,
// given the compiler's complaint.
func BuildRepairPrompt(latex, compileLog string) string {
	var b strings.Builder
	b.WriteString("The following LaTeX resume fails to compile. Fix the errors and return ONLY the corrected, complete LaTeX source. Do not change the content, only repair the syntax.\n\n")
	fmt.Fprintf(&b, "COMPILER OUTPUT:\n%s\n\n", compileLog)
	fmt.Fprintf(&b, "LATEX SOURCE:\n%s\n", latex)
	return b.String()
}
