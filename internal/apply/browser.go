package apply

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

const stepDelay = 800 * time.Millisecond

func (a *Agent) newBrowser(ctx context.Context) (context.Context, context.CancelFunc, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", a.cfg.Apply.Headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)

	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)

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

// openPage navigates to the application page and returns its visible text
// plus the URL after redirects, which is what credential lookup keys on.
func (a *Agent) openPage(ctx context.Context, rawURL string) (pageText, finalURL string, err error) {
	err = chromedp.Run(ctx,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second),
		chromedp.Location(&finalURL),
		chromedp.Text("body", &pageText, chromedp.ByQuery),
	)
	if err != nil {
		return "", "", fmt.Errorf("open %s: %w", rawURL, err)
	}
	return pageText, finalURL, nil
}

// runStep executes one planned action. Each step gets its own short
// timeout so a selector the model hallucinated stalls one step, not the
// whole application.
func (a *Agent) runStep(ctx context.Context, step PlanStep) error {
	short, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	switch step.Action {
	case "fill":
		return chromedp.Run(short,
			chromedp.WaitVisible(step.Selector, chromedp.ByQuery),
			chromedp.Clear(step.Selector, chromedp.ByQuery),
			chromedp.SendKeys(step.Selector, step.Value, chromedp.ByQuery),
			chromedp.Sleep(stepDelay),
		)
	case "select":
		return chromedp.Run(short,
			chromedp.WaitVisible(step.Selector, chromedp.ByQuery),
			chromedp.SetValue(step.Selector, step.Value, chromedp.ByQuery),
			chromedp.Sleep(stepDelay),
		)
	case "check", "click":
		return chromedp.Run(short,
			chromedp.WaitVisible(step.Selector, chromedp.ByQuery),
			chromedp.Click(step.Selector, chromedp.ByQuery),
			chromedp.Sleep(stepDelay),
		)
	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}
}

// looksLikeLogin is a cheap pre-check before asking the model; pages that
// gate behind auth mention it in the first screen of text.
func looksLikeLogin(pageText string) bool {
	lower := strings.ToLower(pageText)
	for _, marker := range []string{"sign in", "log in", "login", "create an account", "create account", "sign up"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
