package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// table is a ledger file in memory: the header in original order plus rows
// as column->value maps. Rows shorter than the header read as "".
type table struct {
	header []string
	rows   []map[string]string
}

func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate rows written before a column grew

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return &table{}, nil
	}

	t := &table{header: records[0]}
	for _, rec := range records[1:] {
		row := make(map[string]string, len(t.header))
		for i, col := range t.header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// writeTable rewrites the whole file via tmp+rename so a crash mid-write
// never leaves a truncated ledger behind.
func writeTable(path string, t *table) error {
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.header); err != nil {
		f.Close()
		return err
	}
	for _, row := range t.rows {
		rec := make([]string, len(t.header))
		for i, col := range t.header {
			rec[i] = row[col]
		}
		if err := w.Write(rec); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}

// withFileLock serializes read-modify-write cycles against other processes
// sharing the same ledger. The lock file sits next to the ledger so the
// ledger itself can be atomically renamed over.
func withFileLock(path string, fn func() error) error {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", filepath.Base(path), err)
	}
	defer lock.Unlock()
	return fn()
}

// hasColumn reports whether the header already carries col.
func (t *table) hasColumn(col string) bool {
	for _, c := range t.header {
		if c == col {
			return true
		}
	}
	return false
}

// addColumn appends col to the header and backfills def into every
// existing row, keeping the table rectangular.
func (t *table) addColumn(col, def string) {
	if t.hasColumn(col) {
		return
	}
	t.header = append(t.header, col)
	for _, row := range t.rows {
		if _, ok := row[col]; !ok {
			row[col] = def
		}
	}
}
