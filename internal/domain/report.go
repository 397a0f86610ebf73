package domain

// Issue is a single validation finding tied to a source line.
// Line is zero when the finding is not attributable to one line.
type Issue struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ValidationReport summarizes a dry-run parse of a GEDCOM file: entity
// counts, hard errors, and soft warnings. It backs the preview-before-commit
// workflow, so the UI can show findings before anything is persisted.
type ValidationReport struct {
	PeopleCount   int     `json:"people_count"`
	FamiliesCount int     `json:"families_count"`
	Errors        []Issue `json:"errors"`
	Warnings      []Issue `json:"warnings"`
	Ready         bool    `json:"ready"`

	// Incomplete is set when the file is importable but ended without a
	// TRLR record.
	Incomplete bool `json:"incomplete,omitempty"`
}

// AddError appends a hard error, capping the list at max entries when
// max is positive. The count of suppressed errors is not tracked; the
// report is a preview, not an audit log.
func (r *ValidationReport) AddError(line int, message string, max int) {
	if max > 0 && len(r.Errors) >= max {
		return
	}
	r.Errors = append(r.Errors, Issue{Line: line, Message: message})
}

// AddWarning appends a soft warning
func (r *ValidationReport) AddWarning(line int, message string) {
	r.Warnings = append(r.Warnings, Issue{Line: line, Message: message})
}
