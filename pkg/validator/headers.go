/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/NVIDIA/flatfile-validator/pkg/dataset"
	"github.com/NVIDIA/flatfile-validator/pkg/defaults"
	"github.com/NVIDIA/flatfile-validator/pkg/report"
	"github.com/NVIDIA/flatfile-validator/pkg/schema"
)

// MatchHeaders compares the schema's expected flat headers with the dataset
// columns. It returns one finding per missing column, in schema order, followed
// by one finding per extra column, in dataset order. Columns matching any of
// the ignore patterns are never reported as extra.
func MatchHeaders(s *schema.Schema, columns []string, ignore ...string) []report.Finding {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}

	var missing []string
	for f := range s.Leaves() {
		if !present[f.FlatFileHeader] {
			missing = append(missing, f.FlatFileHeader)
		}
	}

	var unknown []string
	for _, c := range columns {
		if _, ok := s.Lookup(c); !ok {
			unknown = append(unknown, c)
		}
	}
	extra := dataset.FilterOut(unknown, ignore)

	findings := make([]report.Finding, 0, len(missing)+len(extra))
	for _, m := range missing {
		findings = append(findings, report.MissingColumn(m, suggest(m, extra)))
	}
	for _, e := range extra {
		findings = append(findings, report.ExtraColumn(e))
	}

	return findings
}

// suggest returns the extra column closest to a missing one, or "" when none
// is close enough to be a likely typo.
func suggest(missing string, extra []string) string {
	limit := max(defaults.SuggestionMinDistance, len(missing)/4)
	want := strings.ToLower(missing)

	best, bestDist := "", limit+1
	for _, e := range extra {
		d := levenshtein.ComputeDistance(want, strings.ToLower(e))
		if d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}
