package scrape

import (
	"context"
	"time"

	"github.com/sapoepsilon/job-applicant/internal/config"
	"github.com/sapoepsilon/job-applicant/internal/ledger"
	"github.com/sapoepsilon/job-applicant/internal/scrape/hiringcafe"
	"github.com/sapoepsilon/job-applicant/internal/scrape/util"
)

// ledgerSink lands scraped jobs in the per-query ledger. Dedup runs in two
// phases: cheap title/company on the preview card, exact URL once the
// external link is known.
type ledgerSink struct {
	path  string
	query string
}

func (s *ledgerSink) SeenPreview(title, company string) bool {
	return ledger.KnownByTitle(s.path, title, company)
}

func (s *ledgerSink) SeenURL(externalURL string) bool {
	return ledger.KnownByURL(s.path, externalURL)
}

func (s *ledgerSink) Save(j hiringcafe.Job) error {
	return ledger.Append(s.path, ledger.Record{
		Title:          j.Title,
		Company:        j.Company,
		Posted:         j.Posted,
		Location:       j.Location,
		Salary:         j.Salary,
		WorkType:       j.WorkType,
		EmploymentType: j.EmploymentType,
		HiringCafeURL:  j.HiringCafeURL,
		ExternalURL:    j.ExternalURL,
		SearchQuery:    s.query,
		ExtractedDate:  hiringcafe.Now(),
		Description:    j.Description,
	})
}

// Run scrapes up to max jobs for query and returns the ledger path along
// with how many new rows were added.
func Run(ctx context.Context, cfg config.Config, query string, max int) (path string, added int, err error) {
	if max <= 0 {
		max = cfg.Scrape.MaxJobs
	}

	path = ledger.PathFor(cfg.App.DataDir, query)
	sink := &ledgerSink{path: path, query: query}

	scraper := hiringcafe.New(hiringcafe.Config{
		BaseURL:   cfg.Scrape.BaseURL,
		Headless:  cfg.Scrape.Headless,
		PageDelay: time.Duration(cfg.Scrape.PageDelayMillis) * time.Millisecond,
	}, util.NewHostLimiter(cfg.Scrape.RequestsPerSecond, 2))

	added, err = scraper.Run(ctx, query, max, sink)
	return path, added, err
}
