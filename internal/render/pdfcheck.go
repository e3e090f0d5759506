package render

import (
	"fmt"
	"log"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// CheckPDF validates the compiled resume and reports its page count. A
// structurally broken PDF is an error; running past one page is only a
// warning, since some postings genuinely need the long-bullet layout.
func CheckPDF(path string) (pages int, err error) {
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed

	if err := api.ValidateFile(path, cfg); err != nil {
		return 0, fmt.Errorf("validate %s: %w", path, err)
	}

	pages, err = api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("page count %s: %w", path, err)
	}
	if pages > 1 {
		log.Printf("[render] %s is %d pages; tailored resumes should fit one", path, pages)
	}
	return pages, nil
}
