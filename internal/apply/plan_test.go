package apply

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sapoepsilon/job-applicant/internal/config"
	"github.com/sapoepsilon/job-applicant/internal/ledger"
)

func TestParsePlan(t *testing.T) {
	raw := `{
		"can_apply": true,
		"needs_login": false,
		"steps": [
			{"action": "fill", "selector": "#name", "value": "Jane Doe", "label": "name"},
			{"action": "click", "selector": "button[type=submit]", "label": "submit"}
		]
	}`
	plan, err := parsePlan(raw, 10)
	require.NoError(t, err)
	assert.True(t, plan.CanApply)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, "fill", plan.Steps[0].Action)
	assert.Equal(t, "button[type=submit]", plan.Steps[1].Selector)
}

func TestParsePlanRejectsUnknownAction(t *testing.T) {
	_, err := parsePlan(`{"can_apply":true,"steps":[{"action":"hover","selector":"#x"}]}`, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hover")
}

func TestParsePlanRejectsEmptySelector(t *testing.T) {
	_, err := parsePlan(`{"can_apply":true,"steps":[{"action":"click","selector":"  "}]}`, 10)
	require.Error(t, err)
}

func TestParsePlanEnforcesStepLimit(t *testing.T) {
	raw := `{"can_apply":true,"steps":[
		{"action":"click","selector":"#a"},
		{"action":"click","selector":"#b"},
		{"action":"click","selector":"#c"}
	]}`
	_, err := parsePlan(raw, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit")
}

func TestParsePlanBadJSON(t *testing.T) {
	_, err := parsePlan("not json", 10)
	require.Error(t, err)
}

func TestBuildFormPromptTruncatesPageText(t *testing.T) {
	long := make([]byte, 50000)
	for i := range long {
		long[i] = 'x'
	}

	job := ledger.Record{Title: "Backend Engineer", Company: "Acme"}
	var person config.Personal
	person.Name = "Jane Doe"
	person.Email = "jane@example.com"

	prompt := BuildFormPrompt(job, person, string(long), "/out/resume.pdf", true)
	assert.Less(t, len(prompt), 20000)
	assert.Contains(t, prompt, "Backend Engineer")
	assert.Contains(t, prompt, "Jane Doe")
	assert.Contains(t, prompt, "/out/resume.pdf")
}

func TestLooksLikeLogin(t *testing.T) {
	assert.True(t, looksLikeLogin("Please Sign In to continue"))
	assert.True(t, looksLikeLogin("Create an account to apply"))
	assert.False(t, looksLikeLogin("Submit your application below"))
}
