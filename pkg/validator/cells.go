/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"log/slog"
	"slices"

	"github.com/NVIDIA/flatfile-validator/pkg/dataset"
	"github.com/NVIDIA/flatfile-validator/pkg/report"
	"github.com/NVIDIA/flatfile-validator/pkg/schema"
)

// ValidateCells checks every cell of every schema column present in the
// dataset. Findings are ordered by column (schema pre-order), then row, then
// check; conditional findings follow the field's own findings for a row.
func ValidateCells(s *schema.Schema, ds *dataset.Dataset) []report.Finding {
	p := newPlan(s, ds)
	return p.flatten(p.validate(ds, 0, ds.Len()))
}

// check is one constraint applied to a column. rule is nil for the field's
// own unconditional constraint.
type check struct {
	constraint schema.Constraint
	rule       *schema.DependentRule
	when       report.Condition
}

// applies reports whether the check is active for the given row.
func (c check) applies(ds *dataset.Dataset, row int) bool {
	if c.rule == nil {
		return true
	}
	v := ds.Value(row, c.when.Column)
	return !v.Null && c.rule.When.Matches(v.Text)
}

type column struct {
	name   string
	checks []check
}

// plan lists, in schema pre-order, the dataset columns to check.
type plan []column

func newPlan(s *schema.Schema, ds *dataset.Dataset) plan {
	var p plan
	for f := range s.Leaves() {
		if !ds.HasColumn(f.FlatFileHeader) {
			continue
		}

		col := column{name: f.FlatFileHeader}
		own := f.Constraint()
		if !own.IsZero() {
			col.checks = append(col.checks, check{constraint: own})
		}

		for _, r := range s.RulesFor(f) {
			disc := r.When.Field().FlatFileHeader
			if !ds.HasColumn(disc) {
				slog.Debug("skipping dependent rule, discriminator column is absent",
					"column", f.FlatFileHeader,
					"discriminator", disc)
				continue
			}

			c := conditional(own, r.Constraint)
			if c.IsZero() {
				continue
			}
			col.checks = append(col.checks, check{
				constraint: c,
				rule:       r,
				when:       report.Condition{Column: disc, Values: r.When.Values},
			})
		}

		if len(col.checks) > 0 {
			p = append(p, col)
		}
	}
	return p
}

// conditional drops the parts of a rule constraint that the field already
// enforces unconditionally.
func conditional(own, rule schema.Constraint) schema.Constraint {
	c := rule
	if own.Required {
		c.Required = false
	}
	if c.Pattern != nil && own.Pattern != nil && c.Pattern.String() == own.Pattern.String() {
		c.Pattern = nil
	}
	if len(c.AvailableValues) > 0 && slices.Equal(c.AvailableValues, own.AvailableValues) {
		c.AvailableValues = nil
	}
	return c
}

// validate checks rows [from, to) and returns findings per plan column.
func (p plan) validate(ds *dataset.Dataset, from, to int) [][]report.Finding {
	out := make([][]report.Finding, len(p))
	for i, col := range p {
		out[i] = col.validate(ds, from, to)
	}
	return out
}

func (p plan) flatten(byColumn [][]report.Finding) []report.Finding {
	n := 0
	for _, fs := range byColumn {
		n += len(fs)
	}
	findings := make([]report.Finding, 0, n)
	for _, fs := range byColumn {
		findings = append(findings, fs...)
	}
	return findings
}

func (col column) validate(ds *dataset.Dataset, from, to int) []report.Finding {
	var findings []report.Finding
	for row := from; row < to; row++ {
		v := ds.Value(row, col.name)
		for _, c := range col.checks {
			if !c.applies(ds, row) {
				continue
			}
			findings = appendViolations(findings, col.name, row, v, c)
		}
	}
	return findings
}

func appendViolations(findings []report.Finding, name string, row int, v dataset.Value, c check) []report.Finding {
	if v.IsEmpty() {
		if c.constraint.Required {
			findings = append(findings, report.MissingRequired(name, row, c.when))
		}
		return findings
	}

	if p := c.constraint.Pattern; p != nil && !p.MatchString(v.Text) {
		findings = append(findings, report.PatternMismatch(name, row, v.Text, p.String(), c.when))
	}
	if !c.constraint.Allows(v.Text) {
		findings = append(findings, report.InvalidValue(name, row, v.Text, c.constraint.AvailableValues, c.when))
	}
	return findings
}
