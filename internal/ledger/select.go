package ledger

import (
	"os"
	"path/filepath"
)

// ReadAll returns every row as a typed record. Read failures log and
// return nil; callers continue best-effort.
func ReadAll(path string) []Record {
	t, err := readTable(path)
	if err != nil {
		logf("read %s: %v", path, err)
		return nil
	}
	out := make([]Record, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, recordFromRow(row))
	}
	return out
}

// Unapplied returns rows not yet applied to. An unset flag counts the same
// as false.
func Unapplied(path string) []Record {
	var out []Record
	for _, r := range ReadAll(path) {
		if !r.Applied.Bool() {
			out = append(out, r)
		}
	}
	return out
}

// ReadyToApply returns rows with a tailored resume that still await an
// application.
func ReadyToApply(path string) []Record {
	var out []Record
	for _, r := range ReadAll(path) {
		if r.ResumeCreated.Bool() && !r.Applied.Bool() {
			out = append(out, r)
		}
	}
	return out
}

// Latest returns the most recently modified ledger file in dir, or "" when
// no ledger exists yet.
func Latest(dir string) string {
	matches, err := filepath.Glob(filepath.Join(dir, "*_jobs.csv"))
	if err != nil || len(matches) == 0 {
		return ""
	}

	var best string
	var bestMod int64
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); best == "" || mod > bestMod {
			best, bestMod = m, mod
		}
	}
	return best
}
