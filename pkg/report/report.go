package report

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/NVIDIA/flatfile-validator/pkg/header"
)

const (
	// APIVersion is the API version for validation reports.
	APIVersion = "ffv.nvidia.com/v1alpha1"

	// ReportKind is the kind for validation reports.
	ReportKind = "ValidationReport"
)

// Status is the overall outcome of a run.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// Summary aggregates the findings of a run.
type Summary struct {
	Status         Status        `json:"status" yaml:"status"`
	Total          int           `json:"total" yaml:"total"`
	HeaderFindings int           `json:"headerFindings" yaml:"headerFindings"`
	CellFindings   int           `json:"cellFindings" yaml:"cellFindings"`
	Columns        int           `json:"columns" yaml:"columns"`
	Rows           int           `json:"rows" yaml:"rows"`
	Duration       time.Duration `json:"duration" yaml:"duration"`
}

// Report is the ordered result of one validation run.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	Summary  Summary   `json:"summary" yaml:"summary"`
	Findings []Finding `json:"findings" yaml:"findings"`
}

// Build orders header findings (missing before extra, otherwise stable)
// ahead of cell findings, which are kept in the order given. The inputs are
// copied and never modified.
func Build(headerFindings, cellFindings []Finding) *Report {
	hf := slices.Clone(headerFindings)
	slices.SortStableFunc(hf, func(a, b Finding) int {
		return headerRank(a.Kind) - headerRank(b.Kind)
	})

	findings := make([]Finding, 0, len(hf)+len(cellFindings))
	findings = append(findings, hf...)
	findings = append(findings, cellFindings...)

	r := &Report{Findings: findings}
	r.Init(header.Kind(ReportKind), APIVersion, "")
	r.Summary.Total = len(findings)
	r.Summary.HeaderFindings = len(hf)
	r.Summary.CellFindings = len(cellFindings)
	r.Summary.Status = StatusPass
	if len(findings) > 0 {
		r.Summary.Status = StatusFail
	}

	return r
}

func headerRank(k Kind) int {
	switch k {
	case KindMissingColumn:
		return 0
	case KindExtraColumn:
		return 1
	default:
		return 2
	}
}

// Passed reports whether the run produced no findings.
func (r *Report) Passed() bool {
	return len(r.Findings) == 0
}

// Messages returns the rendered finding messages in report order.
func (r *Report) Messages() []string {
	msgs := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		msgs = append(msgs, f.Message)
	}
	return msgs
}

// Headline is a one-line summary of the run, e.g.
// "FAIL: 1,204 findings (2 header, 1,202 cell) in 15,000 rows".
func (r *Report) Headline() string {
	p := message.NewPrinter(language.English)
	if r.Passed() {
		return p.Sprintf("PASS: no findings in %d rows", r.Summary.Rows)
	}
	return p.Sprintf("FAIL: %d findings (%d header, %d cell) in %d rows",
		r.Summary.Total, r.Summary.HeaderFindings, r.Summary.CellFindings, r.Summary.Rows)
}

// WriteTable renders the report as aligned text columns.
func (r *Report) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, r.Headline())
	if r.Passed() {
		return tw.Flush()
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "SCOPE\tKIND\tCOLUMN\tROW\tMESSAGE")
	for _, f := range r.Findings {
		row := "-"
		if f.Row != nil {
			row = strconv.Itoa(f.RowNumber())
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", f.Scope, f.Kind, f.Column, row, f.Message)
	}

	return tw.Flush()
}
