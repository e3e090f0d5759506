package ledger

import "strings"

// Identity names one ledger row for status updates. Matching is exact
// trimmed equality on (title AND company), or exact trimmed equality on
// the external URL; either is sufficient. Unlike dedup there is no
// substring leniency here: status updates come from rows read out of the
// same file, so the text matches verbatim.
type Identity struct {
	Title       string
	Company     string
	ExternalURL string
}

// IdentityOf builds the update identity for a record taken from a ledger.
func IdentityOf(r Record) Identity {
	return Identity{Title: r.Title, Company: r.Company, ExternalURL: r.ExternalURL}
}

func (id Identity) matches(row map[string]string) bool {
	title := strings.TrimSpace(row[colTitle])
	company := strings.TrimSpace(row[colCompany])
	if title == strings.TrimSpace(id.Title) && company == strings.TrimSpace(id.Company) {
		return true
	}

	u := strings.TrimSpace(id.ExternalURL)
	if u == "" || u == URLNotFound {
		return false
	}
	return strings.TrimSpace(row[colExternalURL]) == u
}

// defaultFor is the backfill value when a status update first introduces a
// column: flags read as false, anything else as empty.
func defaultFor(col string) string {
	if strings.HasPrefix(col, "is_") {
		return FlagFalse.String()
	}
	return ""
}

// MarkStatus flips a status column for every row matching id, growing the
// header (and backfilling all rows) when the column is new. The whole file
// is rewritten under the ledger lock. Zero matching rows is a silent no-op:
// the true return only means the rewrite itself succeeded, which callers
// treat as best-effort. Failures are logged, never raised.
func MarkStatus(path string, id Identity, field, value string, extra map[string]string) bool {
	err := withFileLock(path, func() error {
		t, err := readTable(path)
		if err != nil {
			return err
		}

		t.addColumn(field, defaultFor(field))
		for col := range extra {
			t.addColumn(col, defaultFor(col))
		}

		matched := 0
		for _, row := range t.rows {
			if !id.matches(row) {
				continue
			}
			row[field] = value
			for col, v := range extra {
				// resume_pdf_path and friends are never cleared once set
				if v != "" {
					row[col] = v
				}
			}
			matched++
		}
		if matched > 0 {
			logf("set %s=%s for %d row(s): %q at %q", field, value, matched, id.Title, id.Company)
		}

		return writeTable(path, t)
	})
	if err != nil {
		logf("status update failed: %v", err)
		return false
	}
	return true
}
