// Package report holds validation findings and assembles them into the
// ordered, immutable Report returned by a validation run.
//
// Findings are built with the constructors in this package so that every
// message names the column, the 1-based row for cell findings, the offending
// value and the expectation:
//
//	Missing header: "Applicant Email"
//	Extra header: "Notes"
//	Missing required data in header 'Applicant Email' at row 3
//	Invalid value '123x' in header 'Amount' at row 7. Expected format: ^\d+$
//	Invalid value 'male' in header 'Applicant Gender' at row 2. Allowed values: Male, Female, Other
//
// Build places header findings (missing, then extra) before cell findings.
// A report with zero findings is the only success signal.
package report
