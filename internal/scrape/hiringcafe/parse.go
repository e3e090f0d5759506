package hiringcafe

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sapoepsilon/job-applicant/internal/scrape/util"
)

// parsePreview pulls title/company/location out of one result-card HTML
// snippet. The board's class names shift between deploys, so each field
// tries a list of selectors from most to least specific.
func parsePreview(cardHTML string) Preview {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cardHTML))
	if err != nil {
		return Preview{}
	}

	var p Preview

	for _, sel := range []string{
		"span.w-full.font-bold.text-start.line-clamp-3",
		"span.font-bold.text-start.line-clamp-3",
		"div.mt-1 span",
		".font-bold",
	} {
		if t := util.CleanText(doc.Find(sel).First().Text()); t != "" {
			p.Title = t
			break
		}
	}

	// company renders as "CompanyName:" inside the card blurb
	for _, sel := range []string{
		"span.font-light span.font-bold",
		".font-bold",
	} {
		found := ""
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			t := util.CleanText(s.Text())
			if t != "" && strings.Contains(t, ":") {
				found = strings.TrimSpace(strings.TrimSuffix(t, ":"))
				return false
			}
			return true
		})
		if found != "" {
			p.Company = found
			break
		}
	}

	doc.Find("span.line-clamp-2").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		t := util.CleanText(s.Text())
		if t != "" && strings.Contains(t, ",") && t != p.Title {
			p.Location = util.NormalizeLocation(t)
			return false
		}
		return true
	})

	return p
}

// parseDetail extracts the full listing from the rendered detail pane,
// falling back to preview fields where the pane gives nothing better.
func parseDetail(paneHTML string, preview Preview) (Job, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(paneHTML))
	if err != nil {
		return Job{}, fmt.Errorf("parse detail pane: %w", err)
	}

	job := Job{
		Title:    preview.Title,
		Company:  preview.Company,
		Location: preview.Location,
	}

	if t := util.CleanText(doc.Find("h1, h2.job-title").First().Text()); t != "" {
		job.Title = t
	}

	// detail chips: salary, work type, employment type in no fixed order
	var chips []string
	doc.Find("div.flex.flex-wrap span, span.chip, div.badge").Each(func(_ int, s *goquery.Selection) {
		if t := util.CleanText(s.Text()); t != "" && len(t) < 60 {
			chips = append(chips, t)
		}
	})
	job.Salary, job.WorkType, job.EmploymentType = util.ClassifyDetails(chips)

	if t := util.CleanText(doc.Find("time, span.posted-date").First().Text()); t != "" {
		job.Posted = t
	}

	// longest text block wins as the description; the pane mixes the
	// posting body with navigation chrome
	var desc string
	doc.Find("article, div.job-description, section").Each(func(_ int, s *goquery.Selection) {
		t := strings.TrimSpace(s.Text())
		if len(t) > len(desc) {
			desc = t
		}
	})
	job.Description = util.CleanText(desc)

	if job.Title == "" {
		return Job{}, fmt.Errorf("detail pane had no title")
	}
	return job, nil
}

// Now returns the extraction timestamp in the ledger's date format.
func Now() string {
	return time.Now().Format("2006-01-02 15:04:05")
}
