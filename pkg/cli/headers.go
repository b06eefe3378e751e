/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/flatfile-validator/pkg/schema"
)

// ColumnInfo describes one column expected by a schema.
type ColumnInfo struct {
	Header          string   `json:"header" yaml:"header"`
	Path            string   `json:"path" yaml:"path"`
	Required        bool     `json:"required" yaml:"required"`
	Pattern         string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	AvailableValues []string `json:"availableValues,omitempty" yaml:"availableValues,omitempty"`
	Conditional     bool     `json:"conditional,omitempty" yaml:"conditional,omitempty"`
}

// ColumnList is the output of the headers command.
type ColumnList struct {
	Schema  string       `json:"schema" yaml:"schema"`
	Columns []ColumnInfo `json:"columns" yaml:"columns"`
}

// WriteTable renders one line per column.
func (l ColumnList) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "HEADER\tPATH\tREQUIRED\tEXPECTATION")
	for _, c := range l.Columns {
		required := "no"
		switch {
		case c.Required:
			required = "yes"
		case c.Conditional:
			required = "conditional"
		}

		var expect []string
		if c.Pattern != "" {
			expect = append(expect, c.Pattern)
		}
		if len(c.AvailableValues) > 0 {
			expect = append(expect, strings.Join(c.AvailableValues, "|"))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Header, c.Path, required, strings.Join(expect, " "))
	}
	return tw.Flush()
}

func columnList(s *schema.Schema) ColumnList {
	l := ColumnList{Schema: s.Source, Columns: []ColumnInfo{}}
	for f := range s.Leaves() {
		c := ColumnInfo{
			Header:          f.FlatFileHeader,
			Path:            f.Path,
			Required:        f.Required,
			AvailableValues: f.AvailableValues,
			Conditional:     len(s.RulesFor(f)) > 0,
		}
		if f.Pattern != nil {
			c.Pattern = f.Pattern.String()
		}
		l.Columns = append(l.Columns, c)
	}
	return l
}

func headersCmd() *cli.Command {
	return &cli.Command{
		Name:                  "headers",
		EnableShellCompletion: true,
		Usage:                 "List the columns expected by a schema",
		Description: `Lists every flat header declared by the schema in document order, with the
schema path it binds to and the checks applied to its cells.

# Examples

  ffvctl headers --schema mapping.json
  ffvctl headers -s mapping.yaml -t json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "schema",
				Aliases:  []string{"s"},
				Required: true,
				Usage:    "schema file path (JSON or YAML)",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			s, err := schema.FromFile(cmd.String("schema"))
			if err != nil {
				return err
			}

			return writeOutput(ctx, cmd, outFormat, columnList(s))
		},
	}
}
