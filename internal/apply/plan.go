package apply

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sapoepsilon/job-applicant/internal/config"
	"github.com/sapoepsilon/job-applicant/internal/ledger"
)

// FormPlan is the model's answer to "here is the page, here is the
// applicant: how do we apply?". Steps execute in order; the final step is
// expected to be the submit click.
type FormPlan struct {
	CanApply   bool       `json:"can_apply"`
	Reason     string     `json:"reason"`
	NeedsLogin bool       `json:"needs_login"`
	Steps      []PlanStep `json:"steps"`
}

// PlanStep is a single browser action. Action is one of fill, select,
// check or click; Value is empty for clicks.
type PlanStep struct {
	Action   string `json:"action"`
	Selector string `json:"selector"`
	Value    string `json:"value"`
	Label    string `json:"label"`
}

var validActions = map[string]bool{
	"fill": true, "select": true, "check": true, "click": true,
}

// BuildFormPrompt asks for a fill plan for the rendered application page.
// Page text is truncated; forms live near the top and full postings blow
// the context for no gain.
func BuildFormPrompt(job ledger.Record, person config.Personal, pageText, resumePath string, haveCredentials bool) string {
	const maxPage = 12000
	if len(pageText) > maxPage {
		pageText = pageText[:maxPage]
	}

	var b strings.Builder
	b.WriteString("You are filling a job application form in a browser. Analyze the page text and produce a JSON plan.\n\n")
	fmt.Fprintf(&b, "APPLYING FOR: %s at %s\n\n", job.Title, job.Company)
	b.WriteString(person.PromptBlock())
	fmt.Fprintf(&b, "\n- Resume file to upload if the form asks: %s\n", resumePath)
	fmt.Fprintf(&b, "- Stored login available for this site: %v\n\n", haveCredentials)
	fmt.Fprintf(&b, "PAGE TEXT:\n%s\n\n", pageText)
	b.WriteString(`Respond with JSON only:
{
  "can_apply": true/false,
  "reason": "why not, when can_apply is false",
  "needs_login": true/false,
  "steps": [
    {"action": "fill", "selector": "css selector", "value": "text to type", "label": "field name"},
    {"action": "select", "selector": "css selector", "value": "option", "label": "..."},
    {"action": "check", "selector": "css selector", "value": "", "label": "..."},
    {"action": "click", "selector": "css selector", "value": "", "label": "submit button"}
  ]
}
Use only selectors that plausibly exist on this page. The last step must be the submit action. Answer demographic questions from the personal information; leave optional fields you cannot answer out of the plan.`)
	return b.String()
}

// parsePlan decodes and sanity-checks the model's plan.
func parsePlan(raw string, maxSteps int) (FormPlan, error) {
	var plan FormPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return plan, fmt.Errorf("decode form plan: %w", err)
	}
	if len(plan.Steps) > maxSteps {
		return plan, fmt.Errorf("plan has %d steps, limit is %d", len(plan.Steps), maxSteps)
	}
	for i, s := range plan.Steps {
		if !validActions[s.Action] {
			return plan, fmt.Errorf("step %d: unknown action %q", i, s.Action)
		}
		if strings.TrimSpace(s.Selector) == "" {
			return plan, fmt.Errorf("step %d: empty selector", i)
		}
	}
	return plan, nil
}
