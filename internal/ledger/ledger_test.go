package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(title, company, url string) Record {
	return Record{
		Title:       title,
		Company:     company,
		Location:    "Remote",
		ExternalURL: url,
		SearchQuery: "backend engineer",
		Description: "Build backends.",
	}
}

func TestPathFor(t *testing.T) {
	got := PathFor("/data", "Backend Engineer")
	assert.Equal(t, filepath.Join("/data", "backend_engineer_jobs.csv"), got)
}

func TestAppendCreatesFileWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backend_jobs.csv")

	require.NoError(t, Append(path, testRecord("Backend Engineer", "Acme", "https://jobs.acme.com/1")))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(baseColumns, ","), lines[0])
}

func TestAppendThenReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x_jobs.csv")
	rec := testRecord("Backend Engineer", "Acme", "https://jobs.acme.com/1")
	rec.Description = "Line one\nline two, with a comma."

	require.NoError(t, Append(path, rec))

	rows := ReadAll(path)
	require.Len(t, rows, 1)
	assert.Equal(t, rec.Title, rows[0].Title)
	assert.Equal(t, rec.Company, rows[0].Company)
	assert.Equal(t, rec.Description, rows[0].Description)
	assert.Equal(t, FlagUnset, rows[0].ResumeCreated)
	assert.Equal(t, FlagUnset, rows[0].Applied)
}

func TestDedupByTitleIsLoose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x_jobs.csv")
	require.NoError(t, Append(path, testRecord("Senior Backend Engineer", "@Acme Corp", "")))

	// truncated preview title, company without the @ marker
	assert.True(t, KnownByTitle(path, "Backend Engineer", "Acme Corp"))
	assert.True(t, KnownByTitle(path, "senior backend engineer", "acme corp"))
	assert.False(t, KnownByTitle(path, "Frontend Engineer", "Acme Corp"))
	assert.False(t, KnownByTitle(path, "Backend Engineer", "Globex"))
}

func TestDedupEmptyFieldsNeverMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x_jobs.csv")
	require.NoError(t, Append(path, testRecord("", "", "")))

	assert.False(t, KnownByTitle(path, "", ""))
	assert.False(t, KnownByTitle(path, "Backend Engineer", ""))
	assert.False(t, KnownByURL(path, ""))
	assert.False(t, KnownByURL(path, URLNotFound))
}

func TestDedupByURLIsExact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x_jobs.csv")
	require.NoError(t, Append(path, testRecord("Backend Engineer", "Acme", "https://jobs.acme.com/1")))

	assert.True(t, KnownByURL(path, "https://jobs.acme.com/1"))
	assert.False(t, KnownByURL(path, "https://jobs.acme.com/2"))
}

func TestIsDuplicateIsOrOfBothChecks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x_jobs.csv")
	require.NoError(t, Append(path, testRecord("Backend Engineer", "Acme", "https://jobs.acme.com/1")))

	// same title+company, different URL
	assert.True(t, IsDuplicate(path, testRecord("Backend Engineer", "Acme", "https://other.example.com/9")))
	// different title, same URL
	assert.True(t, IsDuplicate(path, testRecord("Platform Engineer", "Globex", "https://jobs.acme.com/1")))
	// neither
	assert.False(t, IsDuplicate(path, testRecord("Platform Engineer", "Globex", "https://other.example.com/9")))
}

func TestDedupMissingFileIsNotDuplicate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing_jobs.csv")
	assert.False(t, KnownByTitle(path, "Backend Engineer", "Acme"))
	assert.False(t, KnownByURL(path, "https://jobs.acme.com/1"))
}

func TestMarkStatusGrowsColumnsAndStaysRectangular(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x_jobs.csv")
	require.NoError(t, Append(path, testRecord("Backend Engineer", "Acme", "https://jobs.acme.com/1")))
	require.NoError(t, Append(path, testRecord("Platform Engineer", "Globex", "https://jobs.globex.com/2")))

	ok := MarkStatus(path, Identity{Title: "Backend Engineer", Company: "Acme"},
		ColResumeCreated, "true", map[string]string{ColResumePDFPath: "/out/acme.pdf"})
	require.True(t, ok)

	tab, err := readTable(path)
	require.NoError(t, err)
	assert.True(t, tab.hasColumn(ColResumeCreated))
	assert.True(t, tab.hasColumn(ColResumePDFPath))

	rows := ReadAll(path)
	require.Len(t, rows, 2)
	assert.Equal(t, FlagTrue, rows[0].ResumeCreated)
	assert.Equal(t, "/out/acme.pdf", rows[0].ResumePDFPath)
	// untouched row gets the flag backfilled to false, not left ragged
	assert.Equal(t, FlagFalse, rows[1].ResumeCreated)
	assert.Equal(t, "", rows[1].ResumePDFPath)
}

func TestMarkStatusMatchesByURLAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x_jobs.csv")
	require.NoError(t, Append(path, testRecord("Backend Engineer", "Acme", "https://jobs.acme.com/1")))

	ok := MarkStatus(path, Identity{Title: "renamed", Company: "renamed", ExternalURL: "https://jobs.acme.com/1"},
		ColApplied, "true", nil)
	require.True(t, ok)

	rows := ReadAll(path)
	require.Len(t, rows, 1)
	assert.Equal(t, FlagTrue, rows[0].Applied)
}

func TestMarkStatusZeroMatchesIsSilentNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x_jobs.csv")
	require.NoError(t, Append(path, testRecord("Backend Engineer", "Acme", "https://jobs.acme.com/1")))

	ok := MarkStatus(path, Identity{Title: "Nobody", Company: "Nowhere"}, ColApplied, "true", nil)
	assert.True(t, ok, "rewrite succeeds even when nothing matched")

	rows := ReadAll(path)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Applied.Bool())
}

func TestMarkStatusNeverClearsExtraValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x_jobs.csv")
	require.NoError(t, Append(path, testRecord("Backend Engineer", "Acme", "https://jobs.acme.com/1")))

	id := Identity{Title: "Backend Engineer", Company: "Acme"}
	require.True(t, MarkStatus(path, id, ColResumeCreated, "true",
		map[string]string{ColResumePDFPath: "/out/acme.pdf"}))
	require.True(t, MarkStatus(path, id, ColResumeCreated, "true",
		map[string]string{ColResumePDFPath: ""}))

	rows := ReadAll(path)
	require.Len(t, rows, 1)
	assert.Equal(t, "/out/acme.pdf", rows[0].ResumePDFPath)
}

func TestAppendAfterColumnGrowthPadsRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x_jobs.csv")
	require.NoError(t, Append(path, testRecord("Backend Engineer", "Acme", "https://jobs.acme.com/1")))
	require.True(t, MarkStatus(path, Identity{Title: "Backend Engineer", Company: "Acme"},
		ColResumeCreated, "true", nil))

	require.NoError(t, Append(path, testRecord("Platform Engineer", "Globex", "https://jobs.globex.com/2")))

	rows := ReadAll(path)
	require.Len(t, rows, 2)
	assert.Equal(t, FlagTrue, rows[0].ResumeCreated)
	assert.Equal(t, FlagUnset, rows[1].ResumeCreated)
}

func TestSelectorsPartitionLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x_jobs.csv")
	recs := []Record{
		testRecord("A", "A Co", "https://a.example.com/1"),
		testRecord("B", "B Co", "https://b.example.com/1"),
		testRecord("C", "C Co", "https://c.example.com/1"),
		testRecord("D", "D Co", "https://d.example.com/1"),
		testRecord("E", "E Co", "https://e.example.com/1"),
	}
	for _, r := range recs {
		require.NoError(t, Append(path, r))
	}

	// A: resume + applied, B: resume only, C: applied without resume,
	// D: explicit false flags, E: untouched
	mark := func(title, company, field, value string) {
		require.True(t, MarkStatus(path, Identity{Title: title, Company: company}, field, value, nil))
	}
	mark("A", "A Co", ColResumeCreated, "true")
	mark("A", "A Co", ColApplied, "true")
	mark("B", "B Co", ColResumeCreated, "true")
	mark("C", "C Co", ColApplied, "true")
	mark("D", "D Co", ColResumeCreated, "false")
	mark("D", "D Co", ColApplied, "false")

	all := ReadAll(path)
	require.Len(t, all, 5)

	var unapplied, ready []string
	for _, r := range Unapplied(path) {
		unapplied = append(unapplied, r.Title)
	}
	for _, r := range ReadyToApply(path) {
		ready = append(ready, r.Title)
	}

	assert.Equal(t, []string{"B", "D", "E"}, unapplied)
	assert.Equal(t, []string{"B"}, ready)
}

func TestLatestPicksNewestLedger(t *testing.T) {
	dir := t.TempDir()

	older := PathFor(dir, "old query")
	newer := PathFor(dir, "new query")
	require.NoError(t, Append(older, testRecord("A", "A Co", "")))
	require.NoError(t, Append(newer, testRecord("B", "B Co", "")))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))

	assert.Equal(t, newer, Latest(dir))
}

func TestLatestEmptyDir(t *testing.T) {
	assert.Equal(t, "", Latest(t.TempDir()))
}

// Full lifecycle for one job: scraped, deduped on rescrape, tailored,
// applied.
func TestLedgerLifecycle(t *testing.T) {
	dir := t.TempDir()
	path := PathFor(dir, "backend engineer")

	rec := testRecord("Backend Engineer", "Acme Corp", "https://jobs.acme.com/backend-1")
	require.NoError(t, Append(path, rec))

	// a rescrape sees the same job twice, through both signals
	assert.True(t, IsDuplicate(path, rec))
	assert.True(t, KnownByTitle(path, "Backend", "@Acme Corp"))

	id := IdentityOf(rec)
	require.True(t, MarkStatus(path, id, ColResumeCreated, "true",
		map[string]string{ColResumePDFPath: "/out/Backend_Engineer_Acme_Corp.pdf"}))

	ready := ReadyToApply(path)
	require.Len(t, ready, 1)
	assert.Equal(t, "/out/Backend_Engineer_Acme_Corp.pdf", ready[0].ResumePDFPath)

	require.True(t, MarkStatus(path, IdentityOf(ready[0]), ColApplied, "true", nil))
	assert.Empty(t, ReadyToApply(path))
	assert.Empty(t, Unapplied(path))
}

func TestParseFlag(t *testing.T) {
	assert.Equal(t, FlagTrue, ParseFlag("true"))
	assert.Equal(t, FlagTrue, ParseFlag(" True "))
	assert.Equal(t, FlagFalse, ParseFlag("false"))
	assert.Equal(t, FlagFalse, ParseFlag("no"))
	assert.Equal(t, FlagUnset, ParseFlag(""))
	assert.Equal(t, FlagUnset, ParseFlag("  "))
}
