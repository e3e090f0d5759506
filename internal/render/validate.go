// Package render turns LLM-produced LaTeX into compiled PDF resumes:
// sanity-fix the source, shell out to pdflatex, then verify the output.
package render

import (
	"fmt"
	"strings"
)

// encodingFixes maps typographic characters the model likes to emit onto
// their pdflatex-safe ASCII forms.
var encodingFixes = strings.NewReplacer(
	"\u201c", `"`,
	"\u201d", `"`,
	"\u2018", "'",
	"\u2019", "'",
	"\u2014", "--",
	"\u2013", "-",
	"\u2026", "...",
	"\u2122", "",
	"\u00ae", "",
	"\u00a9", "",
)

// ValidateAndFix applies the deterministic repairs that catch most LaTeX
// output problems before a compile is even attempted, and returns the
// remaining complaints it can only report.
func ValidateAndFix(content string) (string, []string) {
	content = encodingFixes.Replace(content)
	content = ensureBulletCommand(content)

	var problems []string
	problems = append(problems, validateBraces(content)...)
	problems = append(problems, validateCommands(content)...)
	return content, problems
}

// validateBraces walks the source counting brace depth, skipping comment
// lines and escaped braces.
func validateBraces(content string) []string {
	var errs []string
	depth := 0

	for i, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "%") {
			continue
		}
		prev := byte(0)
		for j := 0; j < len(line); j++ {
			switch line[j] {
			case '{':
				if prev != '\\' {
					depth++
				}
			case '}':
				if prev != '\\' {
					depth--
				}
			}
			prev = line[j]
		}
		if depth < 0 {
			errs = append(errs, fmt.Sprintf("line %d: extra closing brace", i+1))
			depth = 0
		}
	}
	if depth > 0 {
		errs = append(errs, fmt.Sprintf("missing %d closing brace(s)", depth))
	}
	return errs
}

// validateCommands flags commands used without their supporting package or
// definition; pdflatex would fail on these with a far worse message.
func validateCommands(content string) []string {
	var errs []string
	if strings.Contains(content, `\Bullet{`) && !strings.Contains(content, `\newcommand{\Bullet}`) {
		errs = append(errs, `\Bullet used without \newcommand definition`)
	}
	if strings.Contains(content, `\titleformat{`) && !strings.Contains(content, `\usepackage{titlesec}`) {
		errs = append(errs, `\titleformat used without titlesec package`)
	}
	if strings.Contains(content, `\href{`) && !strings.Contains(content, `\usepackage`) {
		errs = append(errs, `\href used without hyperref package`)
	}
	return errs
}

// ensureBulletCommand injects the \Bullet definition the resume templates
// rely on when the model used the command but dropped the preamble line.
func ensureBulletCommand(content string) string {
	if strings.Contains(content, `\Bullet{`) && !strings.Contains(content, `\newcommand{\Bullet}`) {
		content = strings.Replace(content,
			`\begin{document}`,
			"\\begin{document}\n\\newcommand{\\Bullet}{\\raisebox{-2pt}{\\tiny $\\bullet$}\\hspace{8pt}}",
			1)
	}
	return content
}
