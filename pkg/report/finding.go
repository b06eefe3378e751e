package report

import (
	"fmt"
	"strings"

	"k8s.io/utils/ptr"
)

// Severity of a finding. Every finding is an error; there is no warning tier.
type Severity string

const (
	SeverityError Severity = "error"
)

// Scope tells whether a finding concerns the header row or a single cell.
type Scope string

const (
	ScopeHeader Scope = "header"
	ScopeCell   Scope = "cell"
)

// Kind is the machine-readable tag of a finding.
type Kind string

const (
	KindMissingColumn   Kind = "missing_column"
	KindExtraColumn     Kind = "extra_column"
	KindMissingRequired Kind = "missing_required"
	KindPatternMismatch Kind = "pattern_mismatch"
	KindInvalidValue    Kind = "invalid_value"
)

// Finding is one reported validation problem.
type Finding struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Scope    Scope    `json:"scope" yaml:"scope"`
	Kind     Kind     `json:"kind" yaml:"kind"`
	Column   string   `json:"column,omitempty" yaml:"column,omitempty"`
	// Row is the 0-based dataset row. Set for cell findings only.
	Row     *int   `json:"row,omitempty" yaml:"row,omitempty"`
	Value   string `json:"value,omitempty" yaml:"value,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// RowNumber returns the 1-based row number used in messages, or 0 for
// header findings.
func (f Finding) RowNumber() int {
	if f.Row == nil {
		return 0
	}
	return *f.Row + 1
}

// String returns the rendered message.
func (f Finding) String() string {
	return f.Message
}

// MissingColumn reports an expected column absent from the dataset.
// suggestion, when not empty, names a present column that looks like a typo
// of the expected one.
func MissingColumn(column, suggestion string) Finding {
	msg := fmt.Sprintf("Missing header: %q", column)
	if suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
	}
	return Finding{
		Severity: SeverityError,
		Scope:    ScopeHeader,
		Kind:     KindMissingColumn,
		Column:   column,
		Message:  msg,
	}
}

// ExtraColumn reports a dataset column the schema does not declare.
func ExtraColumn(column string) Finding {
	return Finding{
		Severity: SeverityError,
		Scope:    ScopeHeader,
		Kind:     KindExtraColumn,
		Column:   column,
		Message:  fmt.Sprintf("Extra header: %q", column),
	}
}

// Condition describes the discriminator that activated a conditional check.
// The zero value means the check is unconditional.
type Condition struct {
	Column string
	Values []string
}

// IsZero reports whether the condition is empty.
func (c Condition) IsZero() bool {
	return c.Column == ""
}

func (c Condition) suffix(what string) string {
	if c.IsZero() {
		return ""
	}
	return fmt.Sprintf(" (%s when '%s' is one of: %s)", what, c.Column, strings.Join(c.Values, ", "))
}

// MissingRequired reports an empty cell in a required column.
func MissingRequired(column string, row int, when Condition) Finding {
	return Finding{
		Severity: SeverityError,
		Scope:    ScopeCell,
		Kind:     KindMissingRequired,
		Column:   column,
		Row:      ptr.To(row),
		Message: fmt.Sprintf("Missing required data in header '%s' at row %d%s",
			column, row+1, when.suffix("required")),
	}
}

// PatternMismatch reports a value that does not fully match pattern.
func PatternMismatch(column string, row int, value, pattern string, when Condition) Finding {
	return Finding{
		Severity: SeverityError,
		Scope:    ScopeCell,
		Kind:     KindPatternMismatch,
		Column:   column,
		Row:      ptr.To(row),
		Value:    value,
		Message: fmt.Sprintf("Invalid value '%s' in header '%s' at row %d. Expected format: %s%s",
			value, column, row+1, pattern, when.suffix("applies")),
	}
}

// InvalidValue reports a value outside the allowed set.
func InvalidValue(column string, row int, value string, allowed []string, when Condition) Finding {
	return Finding{
		Severity: SeverityError,
		Scope:    ScopeCell,
		Kind:     KindInvalidValue,
		Column:   column,
		Row:      ptr.To(row),
		Value:    value,
		Message: fmt.Sprintf("Invalid value '%s' in header '%s' at row %d. Allowed values: %s%s",
			value, column, row+1, strings.Join(allowed, ", "), when.suffix("applies")),
	}
}
