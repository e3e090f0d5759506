package tailor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resume is one source resume fed to the model as raw text.
type Resume struct {
	Filename string
	Content  string
}

// textExtensions are the source formats read as-is. PDFs and word docs in
// the resume directory are skipped; keep a .tex or .md export next to them.
var textExtensions = map[string]bool{
	".tex": true,
	".txt": true,
	".md":  true,
}

// LoadResumes reads every usable resume from dir. An empty result is an
// error: tailoring with no source material produces fiction.
func LoadResumes(dir string) ([]Resume, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read resumes dir: %w", err)
	}

	var resumes []Resume
	for _, e := range entries {
		if e.IsDir() || !textExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		resumes = append(resumes, Resume{Filename: e.Name(), Content: string(b)})
	}

	if len(resumes) == 0 {
		return nil, fmt.Errorf("no .tex/.txt/.md resumes found in %s", dir)
	}
	return resumes, nil
}
