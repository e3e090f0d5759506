package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAndFixReplacesTypographicCharacters(t *testing.T) {
	in := "He said \u201chello\u201d \u2014 it\u2019s fine\u2026"
	out, problems := ValidateAndFix(in)
	assert.Empty(t, problems)
	assert.Equal(t, `He said "hello" -- it's fine...`, out)
}

func TestValidateBracesBalanced(t *testing.T) {
	assert.Empty(t, validateBraces(`\section{Experience}{nested {deeper}}`))
}

func TestValidateBracesMissingClose(t *testing.T) {
	errs := validateBraces(`\section{Experience`)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "missing 1 closing brace")
}

func TestValidateBracesExtraClose(t *testing.T) {
	errs := validateBraces("line one}\n")
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "line 1")
}

func TestValidateBracesSkipsCommentsAndEscapes(t *testing.T) {
	src := "% a comment with { unbalanced\ntext with \\{ escaped \\} braces"
	assert.Empty(t, validateBraces(src))
}

func TestEnsureBulletCommandInjectsDefinition(t *testing.T) {
	src := "\\documentclass{article}\n\\begin{document}\n\\Bullet{} Did a thing\n\\end{document}"
	out, problems := ValidateAndFix(src)

	assert.Contains(t, out, `\newcommand{\Bullet}`)
	idx := strings.Index(out, `\begin{document}`)
	def := strings.Index(out, `\newcommand{\Bullet}`)
	assert.Greater(t, def, idx, "definition lands after \\begin{document}")
	// once injected the command check passes
	for _, p := range problems {
		assert.NotContains(t, p, "Bullet")
	}
}

func TestValidateCommandsTitleformatWithoutTitlesec(t *testing.T) {
	errs := validateCommands(`\titleformat{\section}{}{}{}{}`)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "titlesec")
}

func TestValidateCommandsHrefWithoutPackages(t *testing.T) {
	errs := validateCommands(`\href{https://example.com}{link}`)
	assert.Len(t, errs, 1)

	assert.Empty(t, validateCommands("\\usepackage{hyperref}\n\\href{https://example.com}{link}"))
}
