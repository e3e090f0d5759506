// Package hiringcafe drives a headless browser through hiring.cafe search
// results. The site is a JavaScript SPA, so plain HTTP gets an empty
// shell; every page state comes from a rendered DOM snapshot.
package hiringcafe

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sapoepsilon/job-applicant/internal/scrape/util"
)

type Config struct {
	BaseURL   string
	Headless  bool
	PageDelay time.Duration
}

// Job is one fully extracted listing.
type Job struct {
	Title          string
	Company        string
	Location       string
	Posted         string
	Salary         string
	WorkType       string
	EmploymentType string
	Description    string
	HiringCafeURL  string
	ExternalURL    string
}

// Preview is the cheap card-level view used for the first dedup pass
// before the expensive detail-pane extraction.
type Preview struct {
	Title    string
	Company  string
	Location string
}

// Sink receives scrape output. SeenPreview and SeenURL are the two dedup
// phases: the first runs on card text alone, the second after the external
// link is known, catching listings whose preview text drifted.
type Sink interface {
	SeenPreview(title, company string) bool
	SeenURL(externalURL string) bool
	Save(Job) error
}

type Scraper struct {
	cfg Config
	lim *util.HostLimiter
}

func New(cfg Config, lim *util.HostLimiter) *Scraper {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://hiring.cafe"
	}
	if cfg.PageDelay <= 0 {
		cfg.PageDelay = time.Second
	}
	return &Scraper{cfg: cfg, lim: lim}
}

// Run searches for query and feeds up to max new jobs into sink. Per-card
// failures are logged and skipped; only browser-level errors abort the run.
func (s *Scraper) Run(ctx context.Context, query string, max int, sink Sink) (added int, err error) {
	browser, cancel, err := s.newBrowser(ctx)
	if err != nil {
		return 0, err
	}
	defer cancel()

	if err := s.lim.WaitURL(ctx, s.cfg.BaseURL); err != nil {
		return 0, err
	}
	if err := s.openSearch(browser, query); err != nil {
		return 0, fmt.Errorf("open search: %w", err)
	}
	log.Printf("[scrape] searching %q on %s", query, s.cfg.BaseURL)

	seenCards := 0
	for added < max {
		cards, err := s.visibleCards(browser)
		if err != nil {
			return added, fmt.Errorf("read result grid: %w", err)
		}
		if seenCards >= len(cards) {
			// ask for more results; stop when the page has no more to give
			grew, err := s.scrollForMore(browser, len(cards))
			if err != nil || !grew {
				log.Printf("[scrape] no more results after %d cards", len(cards))
				return added, err
			}
			continue
		}

		card := cards[seenCards]
		idx := seenCards
		seenCards++

		preview := parsePreview(card)
		if preview.Title == "" {
			continue
		}
		if sink.SeenPreview(preview.Title, preview.Company) {
			log.Printf("[scrape] already scraped: %q at %q", preview.Title, preview.Company)
			continue
		}

		job, err := s.extractDetail(browser, idx, preview)
		if err != nil {
			log.Printf("[scrape] card %d: %v", idx, err)
			continue
		}
		if job.ExternalURL != "" && sink.SeenURL(job.ExternalURL) {
			log.Printf("[scrape] already scraped by url: %s", job.ExternalURL)
			continue
		}

		if err := sink.Save(job); err != nil {
			log.Printf("[scrape] save %q at %q: %v", job.Title, job.Company, err)
			continue
		}
		added++
		log.Printf("[scrape] saved [%d/%d] %q at %q", added, max, job.Title, job.Company)

		if err := s.lim.WaitURL(ctx, s.cfg.BaseURL); err != nil {
			return added, err
		}
	}
	return added, nil
}

// sentinel recorded when a listing exposes no external application link
const noExternalURL = "Not found"

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
