package hiringcafe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

const (
	searchBoxSel  = "#query-search-v4"
	resultGridSel = "div.grid.grid-cols-1.gap-x-4"
	detailPaneSel = "div[data-testid='job-details'], div.job-details-pane, main article"
)

func (s *Scraper) newBrowser(ctx context.Context) (context.Context, context.CancelFunc, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", s.cfg.Headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)

	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)

	// spin the browser up before any navigation so startup failures
	// surface here and not mid-run
	if err := chromedp.Run(browserCtx); err != nil {
		cancelCtx()
		cancelAlloc()
		return nil, nil, fmt.Errorf("start browser: %w", err)
	}

	cancel := func() {
		cancelCtx()
		cancelAlloc()
	}
	return browserCtx, cancel, nil
}

// openSearch navigates to the board, types the query and switches the sort
// order to "Most Recent" so reruns pick up fresh listings first.
func (s *Scraper) openSearch(ctx context.Context, query string) error {
	actions := []chromedp.Action{
		chromedp.Navigate(s.cfg.BaseURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(s.cfg.PageDelay),
	}
	if query != "" {
		actions = append(actions,
			chromedp.WaitVisible(searchBoxSel),
			chromedp.SendKeys(searchBoxSel, query),
			chromedp.SendKeys(searchBoxSel, "\r"),
			chromedp.Sleep(s.cfg.PageDelay),
			// best effort: the sort control only shows once results exist
			chromedp.ActionFunc(func(ctx context.Context) error {
				short, cancel := context.WithTimeout(ctx, 5*time.Second)
				defer cancel()
				if err := chromedp.Run(short,
					chromedp.Click(`//button[contains(., "Relevance")]`, chromedp.BySearch),
					chromedp.Sleep(s.cfg.PageDelay),
					chromedp.Click(`//span[contains(., "Most Recent")]`, chromedp.BySearch),
				); err != nil {
					return nil // keep the default sort
				}
				return nil
			}),
			chromedp.Sleep(s.cfg.PageDelay),
		)
	}
	actions = append(actions, chromedp.WaitVisible(resultGridSel))
	return chromedp.Run(ctx, actions...)
}

// visibleCards snapshots the result grid and returns the outer HTML of
// each job card currently rendered.
func (s *Scraper) visibleCards(ctx context.Context) ([]string, error) {
	var gridHTML string
	if err := chromedp.Run(ctx,
		chromedp.OuterHTML(resultGridSel, &gridHTML, chromedp.ByQuery),
	); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(gridHTML))
	if err != nil {
		return nil, err
	}

	var cards []string
	doc.Find("div.grid > div").Each(func(_ int, sel *goquery.Selection) {
		if html, err := goquery.OuterHtml(sel); err == nil {
			cards = append(cards, html)
		}
	})
	return cards, nil
}

// scrollForMore scrolls the grid to trigger the infinite loader and
// reports whether new cards appeared.
func (s *Scraper) scrollForMore(ctx context.Context, have int) (bool, error) {
	err := chromedp.Run(ctx,
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
		chromedp.Sleep(2*s.cfg.PageDelay),
	)
	if err != nil {
		return false, err
	}
	cards, err := s.visibleCards(ctx)
	if err != nil {
		return false, err
	}
	return len(cards) > have, nil
}

// extractDetail clicks the idx-th card, waits for the detail pane and
// pulls the full listing out of it, including the external apply link.
func (s *Scraper) extractDetail(ctx context.Context, idx int, preview Preview) (Job, error) {
	cardSel := fmt.Sprintf("%s > div:nth-child(%d)", resultGridSel, idx+1)

	var paneHTML, pageURL, applyHref string
	err := chromedp.Run(ctx,
		chromedp.Click(cardSel, chromedp.ByQuery),
		chromedp.Sleep(s.cfg.PageDelay),
		chromedp.WaitReady("body"),
		chromedp.Location(&pageURL),
		chromedp.OuterHTML("body", &paneHTML),
		// the Apply button carries the external board link
		chromedp.ActionFunc(func(ctx context.Context) error {
			short, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			var ok bool
			_ = chromedp.Run(short, chromedp.AttributeValue(
				`//a[contains(., "Apply")]`, "href", &applyHref, &ok, chromedp.BySearch))
			return nil
		}),
		// back to the grid for the next card
		chromedp.ActionFunc(func(ctx context.Context) error {
			short, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			_ = chromedp.Run(short, chromedp.Click(`button[aria-label="Close"]`, chromedp.ByQuery))
			return nil
		}),
		chromedp.Sleep(s.cfg.PageDelay/2),
	)
	if err != nil {
		return Job{}, fmt.Errorf("open detail pane: %w", err)
	}

	job, err := parseDetail(paneHTML, preview)
	if err != nil {
		return Job{}, err
	}
	job.HiringCafeURL = pageURL
	job.ExternalURL = firstNonEmpty(applyHref, job.ExternalURL, noExternalURL)
	job.Posted = firstNonEmpty(job.Posted, "")
	return job, nil
}
