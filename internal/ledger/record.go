package ledger

import "strings"

// Flag is a tri-state status column. Ledger files written by earlier runs
// may predate a status column entirely, so "unset" is distinct from "false"
// in the file even though both read as not-true.
type Flag int

const (
	FlagUnset Flag = iota
	FlagFalse
	FlagTrue
)

func (f Flag) Bool() bool { return f == FlagTrue }

// String serializes to the ledger's on-disk convention.
func (f Flag) String() string {
	switch f {
	case FlagTrue:
		return "true"
	case FlagFalse:
		return "false"
	default:
		return ""
	}
}

func ParseFlag(s string) Flag {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return FlagTrue
	case "":
		return FlagUnset
	default:
		return FlagFalse
	}
}

// Record is one ledger row. Identity is (Title, Company) or ExternalURL;
// everything else is descriptive or pipeline status.
type Record struct {
	Title          string
	Company        string
	Posted         string
	Location       string
	Salary         string
	WorkType       string
	EmploymentType string
	HiringCafeURL  string
	ExternalURL    string
	SearchQuery    string
	ExtractedDate  string
	Description    string

	ResumeCreated Flag
	Applied       Flag
	ResumePDFPath string
}

// Column names as they appear in the ledger header. Order is fixed for new
// files; status columns are appended by MarkStatus as they first get used.
const (
	colTitle         = "job_title"
	colCompany       = "company"
	colPosted        = "posted"
	colLocation      = "location"
	colSalary        = "salary"
	colWorkType      = "work_type"
	colEmployment    = "employment_type"
	colHiringCafeURL = "hiring_cafe_url"
	colExternalURL   = "external_url"
	colSearchQuery   = "search_query"
	colExtractedDate = "extracted_date"
	colDescription   = "job_description"
	ColResumeCreated = "is_resume_created"
	ColApplied       = "is_applied"
	ColResumePDFPath = "resume_pdf_path"
)

// baseColumns is the header written for a brand-new ledger file.
var baseColumns = []string{
	colTitle, colCompany, colPosted, colLocation, colSalary,
	colWorkType, colEmployment, colHiringCafeURL, colExternalURL,
	colSearchQuery, colExtractedDate, colDescription,
}

// recordFromRow is the single place row maps become typed records; missing
// columns default here and nowhere else.
func recordFromRow(row map[string]string) Record {
	return Record{
		Title:          row[colTitle],
		Company:        row[colCompany],
		Posted:         row[colPosted],
		Location:       row[colLocation],
		Salary:         row[colSalary],
		WorkType:       row[colWorkType],
		EmploymentType: row[colEmployment],
		HiringCafeURL:  row[colHiringCafeURL],
		ExternalURL:    row[colExternalURL],
		SearchQuery:    row[colSearchQuery],
		ExtractedDate:  row[colExtractedDate],
		Description:    row[colDescription],
		ResumeCreated:  ParseFlag(row[ColResumeCreated]),
		Applied:        ParseFlag(row[ColApplied]),
		ResumePDFPath:  row[ColResumePDFPath],
	}
}

func rowFromRecord(r Record) map[string]string {
	return map[string]string{
		colTitle:         r.Title,
		colCompany:       r.Company,
		colPosted:        r.Posted,
		colLocation:      r.Location,
		colSalary:        r.Salary,
		colWorkType:      r.WorkType,
		colEmployment:    r.EmploymentType,
		colHiringCafeURL: r.HiringCafeURL,
		colExternalURL:   r.ExternalURL,
		colSearchQuery:   r.SearchQuery,
		colExtractedDate: r.ExtractedDate,
		colDescription:   r.Description,
	}
}
