package ledger

import (
	"encoding/csv"
	"log"
	"os"
	"path/filepath"
	"strings"
)

func logf(format string, args ...any) {
	log.Printf("[ledger] "+format, args...)
}

// PathFor derives the ledger filename for a search query: one file per
// distinct query, "backend engineer" -> backend_engineer_jobs.csv.
func PathFor(dir, searchQuery string) string {
	name := strings.ToLower(strings.TrimSpace(searchQuery))
	name = strings.ReplaceAll(name, " ", "_")
	return filepath.Join(dir, name+"_jobs.csv")
}

// Append adds one record to the ledger, creating the file with the fixed
// base header on first use. Columns never grow here; that only happens in
// MarkStatus.
func Append(path string, rec Record) error {
	return withFileLock(path, func() error {
		_, statErr := os.Stat(path)
		newFile := os.IsNotExist(statErr)

		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()

		w := csv.NewWriter(f)
		if newFile {
			if err := w.Write(baseColumns); err != nil {
				return err
			}
			logf("created %s", filepath.Base(path))
		}

		// Existing files may carry status columns already; pad the row to
		// the live header so the file stays rectangular.
		header := baseColumns
		if !newFile {
			if t, err := readTable(path); err == nil && len(t.header) > 0 {
				header = t.header
			}
		}

		row := rowFromRecord(rec)
		out := make([]string, len(header))
		for i, col := range header {
			out[i] = row[col]
		}
		if err := w.Write(out); err != nil {
			return err
		}
		w.Flush()
		return w.Error()
	})
}
