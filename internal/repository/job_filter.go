package repository

import (
	"fmt"
	"strings"

	"jobboard/internal/domain/job"
)

// JobFilter holds the optional listing constraints. Zero/nil fields add no
// constraint; set fields combine with AND.
type JobFilter struct {
	SearchTerm         string
	Location           string
	Remote             *bool
	Types              []job.Type
	ProfessionalLevels []job.ProfessionalLevel
	SalaryMin          *int64
	SalaryMax          *int64
	SalaryUnit         string
	SalaryPer          *job.SalaryPer
}

// whereClause renders the filter as a SQL condition over the jobs table
// (aliased j) with numbered placeholders starting at $1. An empty filter
// yields "TRUE" so callers can always interpolate it.
func (f JobFilter) whereClause() (string, []any) {
	conds := make([]string, 0, 8)
	args := make([]any, 0, 8)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.SearchTerm != "" {
		p := arg(likePattern(f.SearchTerm))
		conds = append(conds, fmt.Sprintf(
			`(j.title ILIKE %[1]s ESCAPE '\' OR j.description ILIKE %[1]s ESCAPE '\' OR j.responsibilities::text ILIKE %[1]s ESCAPE '\')`, p))
	}
	if f.Location != "" {
		conds = append(conds, fmt.Sprintf(`j.location ILIKE %s ESCAPE '\'`, arg(likePattern(f.Location))))
	}
	if f.Remote != nil {
		conds = append(conds, fmt.Sprintf(`j.remote = %s`, arg(*f.Remote)))
	}
	if len(f.Types) > 0 {
		vals := make([]string, 0, len(f.Types))
		for _, t := range f.Types {
			vals = append(vals, string(t))
		}
		conds = append(conds, fmt.Sprintf(`j.type::text = ANY(%s)`, arg(vals)))
	}
	if len(f.ProfessionalLevels) > 0 {
		vals := make([]string, 0, len(f.ProfessionalLevels))
		for _, l := range f.ProfessionalLevels {
			vals = append(vals, string(l))
		}
		conds = append(conds, fmt.Sprintf(`j.professional_level::text = ANY(%s)`, arg(vals)))
	}
	if f.SalaryMin != nil {
		conds = append(conds, fmt.Sprintf(`j.salary_min >= %s`, arg(*f.SalaryMin)))
	}
	if f.SalaryMax != nil {
		conds = append(conds, fmt.Sprintf(`j.salary_max <= %s`, arg(*f.SalaryMax)))
	}
	if f.SalaryUnit != "" {
		conds = append(conds, fmt.Sprintf(`j.salary_unit ILIKE %s ESCAPE '\'`, arg(likePattern(f.SalaryUnit))))
	}
	if f.SalaryPer != nil {
		conds = append(conds, fmt.Sprintf(`j.salary_per::text = %s`, arg(string(*f.SalaryPer))))
	}

	if len(conds) == 0 {
		return "TRUE", nil
	}
	return strings.Join(conds, " AND "), args
}

// likePattern wraps a raw search term in a case-insensitive substring
// pattern, escaping LIKE metacharacters so user input matches literally.
func likePattern(term string) string {
	var b strings.Builder
	b.Grow(len(term) + 2)
	b.WriteByte('%')
	for _, r := range term {
		switch r {
		case '\\', '%', '_':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('%')
	return b.String()
}
