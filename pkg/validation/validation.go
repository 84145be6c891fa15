// Package validation checks a parsed scenario for structural and range
// errors before any calculation runs. Findings carry the dotted path of the
// offending field so the presentation layer can group them by section.
package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Severity indicates how critical a validation result is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Result is a single validation finding.
type Result struct {
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	Path        string   `json:"path"`
	ActualValue any      `json:"actual_value,omitempty"`
	Expected    string   `json:"expected,omitempty"`
}

// Section returns the top-level segment of the result's field path, used to
// group findings for presentation.
func (r Result) Section() string {
	if i := strings.IndexByte(r.Path, '.'); i >= 0 {
		return r.Path[:i]
	}
	return r.Path
}

// Report is the complete validation output for one scenario.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []Result `json:"errors"`
	Warnings []Result `json:"warnings"`
	Summary  string   `json:"summary"`
}

// NewReport creates an empty valid report.
func NewReport() *Report {
	return &Report{
		Valid:    true,
		Errors:   []Result{},
		Warnings: []Result{},
	}
}

// AddError adds an error result and marks the report invalid.
func (r *Report) AddError(result Result) {
	result.Severity = SeverityError
	r.Errors = append(r.Errors, result)
	r.Valid = false
	r.updateSummary()
}

// AddWarning adds a warning result.
func (r *Report) AddWarning(result Result) {
	result.Severity = SeverityWarning
	r.Warnings = append(r.Warnings, result)
	r.updateSummary()
}

// Merge combines another report into this one.
func (r *Report) Merge(other *Report) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	if !other.Valid {
		r.Valid = false
	}
	r.updateSummary()
}

// GroupedErrors returns the errors bucketed by top-level section, with
// section names in sorted order for stable presentation.
func (r *Report) GroupedErrors() ([]string, map[string][]Result) {
	groups := make(map[string][]Result)
	for _, e := range r.Errors {
		s := e.Section()
		groups[s] = append(groups[s], e)
	}
	sections := make([]string, 0, len(groups))
	for s := range groups {
		sections = append(sections, s)
	}
	sort.Strings(sections)
	return sections, groups
}

func (r *Report) updateSummary() {
	r.Summary = fmt.Sprintf("%d errors, %d warnings", len(r.Errors), len(r.Warnings))
}
