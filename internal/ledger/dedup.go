package ledger

import (
	"errors"
	"os"
	"strings"
)

// URLNotFound is the sentinel the scraper records when a listing has no
// resolvable external link. It never participates in URL dedup.
const URLNotFound = "Not found"

func normTitle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normCompany also strips the leading "@" marker hiring.cafe puts in front
// of company names on preview cards.
func normCompany(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "@")
	return strings.TrimSpace(s)
}

// looseMatch accepts equality or containment either way. Preview cards
// truncate long titles, so the detail-pane text is often a superset of what
// was already recorded. Empty strings never match anything.
func looseMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// KnownByTitle reports whether a (title, company) pair is already in the
// ledger. A missing ledger file means nothing has been scraped yet.
func KnownByTitle(path, title, company string) bool {
	t, err := readTable(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logf("dedup read %s: %v", path, err)
		}
		return false
	}

	candTitle := normTitle(title)
	candCompany := normCompany(company)
	if candTitle == "" || candCompany == "" {
		return false
	}

	for _, row := range t.rows {
		if looseMatch(normTitle(row[colTitle]), candTitle) &&
			looseMatch(normCompany(row[colCompany]), candCompany) {
			return true
		}
	}
	return false
}

// KnownByURL reports whether an external URL is already recorded. This is
// the second-phase check: preview text can drift between scrapes, but the
// external link is stable.
func KnownByURL(path, externalURL string) bool {
	externalURL = strings.TrimSpace(externalURL)
	if externalURL == "" || externalURL == URLNotFound {
		return false
	}

	t, err := readTable(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logf("dedup read %s: %v", path, err)
		}
		return false
	}

	for _, row := range t.rows {
		if strings.TrimSpace(row[colExternalURL]) == externalURL {
			return true
		}
	}
	return false
}

// IsDuplicate is the OR of both match strategies; either signal alone is
// enough to call a job already known.
func IsDuplicate(path string, rec Record) bool {
	return KnownByTitle(path, rec.Title, rec.Company) ||
		KnownByURL(path, rec.ExternalURL)
}
