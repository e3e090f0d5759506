package render

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const compileTimeout = 90 * time.Second

// CompileLaTeX runs pdflatex twice (references settle on the second pass)
// and returns the produced PDF path. On failure the error carries the tail
// of the compiler log so a repair prompt has something to work with.
func CompileLaTeX(ctx context.Context, texPath, outDir string) (string, error) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		return "", fmt.Errorf("pdflatex not installed: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}

	base := strings.TrimSuffix(filepath.Base(texPath), ".tex")
	var lastOut []byte

	for pass := 1; pass <= 2; pass++ {
		cctx, cancel := context.WithTimeout(ctx, compileTimeout)
		cmd := exec.CommandContext(cctx, "pdflatex",
			"-interaction=nonstopmode",
			"-halt-on-error",
			"-output-directory", outDir,
			texPath,
		)
		out, err := cmd.CombinedOutput()
		cancel()
		lastOut = out
		if err != nil {
			return "", fmt.Errorf("pdflatex pass %d: %w\n%s", pass, err, logTail(out))
		}
	}

	pdfPath := filepath.Join(outDir, base+".pdf")
	if _, err := os.Stat(pdfPath); err != nil {
		return "", fmt.Errorf("pdflatex reported success but produced no PDF:\n%s", logTail(lastOut))
	}

	cleanupAux(outDir, base)
	return pdfPath, nil
}

// logTail keeps the end of the compiler output, where pdflatex puts the
// actual error line.
func logTail(out []byte) string {
	const keep = 2000
	s := string(out)
	if len(s) > keep {
		s = "..." + s[len(s)-keep:]
	}
	return s
}

// cleanupAux drops the .aux/.log/.out noise pdflatex leaves next to the PDF.
func cleanupAux(dir, base string) {
	for _, ext := range []string{".aux", ".log", ".out"} {
		p := filepath.Join(dir, base+ext)
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			log.Printf("[render] cleanup %s: %v", p, err)
		}
	}
}
