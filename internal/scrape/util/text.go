package util

import "strings"

func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

func NormalizeLocation(loc string) string {
	loc = CleanText(loc)
	if loc == "" {
		return ""
	}

	loc = strings.TrimPrefix(loc, "Location:")
	loc = strings.TrimPrefix(loc, "LOCATIONS:")
	loc = strings.TrimSpace(loc)

	parts := strings.Split(loc, ",")
	seen := map[string]bool{}
	var out []string
	for _, p := range parts {
		p = CleanText(p)
		if p == "" {
			continue
		}
		k := strings.ToLower(p)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return strings.Join(out, ", ")
}

// ClassifyDetails sorts the chip texts under a hiring.cafe job card into
// salary, work type and employment type. Chips carry no labels, so this
// goes by shape: money markers for salary, a closed vocabulary for the
// other two.
func ClassifyDetails(details []string) (salary, workType, employmentType string) {
	for _, d := range details {
		d = CleanText(d)
		low := strings.ToLower(d)
		switch {
		case strings.Contains(d, "$") || strings.Contains(low, "k"):
			if salary == "" {
				salary = d
			}
		case low == "remote" || low == "hybrid" || low == "onsite" || low == "in-office":
			if workType == "" {
				workType = d
			}
		case low == "full time" || low == "part time" || low == "contract" || low == "freelance":
			if employmentType == "" {
				employmentType = d
			}
		}
	}
	return salary, workType, employmentType
}
