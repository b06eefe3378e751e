/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/flatfile-validator/pkg/report"
)

const testSchema = `{
  "properties": {
    "applicant": {
      "fieldType": "object",
      "properties": {
        "firstName": {"flatFileHeader": "First Name", "required": "true"},
        "email": {"flatFileHeader": "Email", "required": "true", "pattern": "[^@]+@[^@]+"}
      }
    },
    "individuals": {
      "fieldType": "array",
      "primaryKeyField": "type",
      "dependentFieldValidation": [
        {"key": "risk", "source": {"required": "true"}, "target": {"availableValues": ["ENTITY"]}}
      ],
      "properties": {
        "type": {"flatFileHeader": "Type", "availableValues": ["APPLICANT", "ENTITY"]},
        "risk": {"flatFileHeader": "Risk", "availableValues": ["LOW", "HIGH"]}
      }
    }
  }
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runRoot(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.Writer = &bytes.Buffer{}
	cmd.ErrWriter = &bytes.Buffer{}
	return cmd.Run(context.Background(), append([]string{name}, args...))
}

func readReport(t *testing.T, path string) *report.Report {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var r report.Report
	require.NoError(t, json.Unmarshal(data, &r))
	return &r
}

func hasName(cmds []*cli.Command, name string) bool {
	for _, c := range cmds {
		if c.Name == name {
			return true
		}
	}
	return false
}

func TestRootCmd_Structure(t *testing.T) {
	cmd := newRootCmd()

	assert.Equal(t, "ffvctl", cmd.Name)
	assert.True(t, hasName(cmd.Commands, "validate"))
	assert.True(t, hasName(cmd.Commands, "headers"))

	for _, c := range cmd.Commands {
		assert.NotEmpty(t, c.Usage, "command %s has no usage", c.Name)
		assert.NotNil(t, c.Action, "command %s has no action", c.Name)
	}
}

func TestValidateCmd_Pass(t *testing.T) {
	schemaPath := writeFile(t, "mapping.json", testSchema)
	dataPath := writeFile(t, "data.csv", "First Name,Email,Type,Risk\n"+
		"Ada,ada@example.com,APPLICANT,\n"+
		"Acme,ops@acme.io,ENTITY,LOW\n")
	out := filepath.Join(t.TempDir(), "report.json")

	err := runRoot(t, "validate", "-s", schemaPath, "-d", dataPath, "-o", out, "-t", "json", "--fail-on-error")
	require.NoError(t, err)

	r := readReport(t, out)
	assert.Equal(t, report.StatusPass, r.Summary.Status)
	assert.Equal(t, 2, r.Summary.Rows)
	assert.Empty(t, r.Findings)
	assert.EqualValues(t, report.ReportKind, r.Kind)
	assert.Equal(t, dataPath, r.Metadata["data"])
}

func TestValidateCmd_Findings(t *testing.T) {
	schemaPath := writeFile(t, "mapping.json", testSchema)
	dataPath := writeFile(t, "data.csv", "First Name,Emial,Type,Risk,Notes\n"+
		",ada@example.com,APPLICANT,,x\n"+
		"Acme,ops@acme.io,ENTITY,,y\n")
	out := filepath.Join(t.TempDir(), "report.json")

	t.Run("reported without fail-on-error", func(t *testing.T) {
		err := runRoot(t, "validate", "-s", schemaPath, "-d", dataPath, "-o", out, "-t", "json")
		require.NoError(t, err)

		r := readReport(t, out)
		assert.Equal(t, report.StatusFail, r.Summary.Status)
		assert.Equal(t, []string{
			`Missing header: "Email" (did you mean "Emial"?)`,
			`Extra header: "Emial"`,
			`Extra header: "Notes"`,
			"Missing required data in header 'First Name' at row 1",
			"Missing required data in header 'Risk' at row 2 (required when 'Type' is one of: ENTITY)",
		}, r.Messages())
	})

	t.Run("fail-on-error exits with findings code", func(t *testing.T) {
		err := runRoot(t, "validate", "-s", schemaPath, "-d", dataPath, "-o", out, "-t", "json",
			"--fail-on-error", "--ignore-column", "Notes")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidationFailed))
		assert.Equal(t, ExitFindings, ExitCode(err))

		r := readReport(t, out)
		assert.Equal(t, 4, r.Summary.Total)
	})
}

func TestValidateCmd_ParallelMatchesSequential(t *testing.T) {
	schemaPath := writeFile(t, "mapping.json", testSchema)

	var b strings.Builder
	b.WriteString("First Name,Email,Type,Risk\n")
	for i := range 50 {
		switch i % 3 {
		case 0:
			fmt.Fprintf(&b, "Name%d,user%d@example.com,APPLICANT,\n", i, i)
		case 1:
			fmt.Fprintf(&b, ",broken,ENTITY,\n")
		default:
			fmt.Fprintf(&b, "Name%d,user%d@example.com,ENTITY,MEDIUM\n", i, i)
		}
	}
	dataPath := writeFile(t, "data.csv", b.String())

	seqOut := filepath.Join(t.TempDir(), "seq.json")
	parOut := filepath.Join(t.TempDir(), "par.json")

	require.NoError(t, runRoot(t, "validate", "-s", schemaPath, "-d", dataPath, "-o", seqOut, "-t", "json"))
	require.NoError(t, runRoot(t, "validate", "-s", schemaPath, "-d", dataPath, "-o", parOut, "-t", "json",
		"--parallel", "4", "--chunk-size", "7"))

	assert.Equal(t, readReport(t, seqOut).Messages(), readReport(t, parOut).Messages())
}

func TestValidateCmd_Errors(t *testing.T) {
	schemaPath := writeFile(t, "mapping.json", testSchema)
	dataPath := writeFile(t, "data.csv", "First Name,Email,Type,Risk\n")

	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{
			name:   "unknown format",
			args:   []string{"validate", "-s", schemaPath, "-d", dataPath, "-t", "xml"},
			errMsg: "unknown output format",
		},
		{
			name:   "invalid parallel",
			args:   []string{"validate", "-s", schemaPath, "-d", dataPath, "--parallel", "0"},
			errMsg: "parallel must be at least 1",
		},
		{
			name:   "invalid chunk size",
			args:   []string{"validate", "-s", schemaPath, "-d", dataPath, "--chunk-size", "0"},
			errMsg: "chunk-size must be at least 1",
		},
		{
			name:   "missing schema file",
			args:   []string{"validate", "-s", filepath.Join(t.TempDir(), "nope.json"), "-d", dataPath},
			errMsg: "failed to read schema file",
		},
		{
			name:   "invalid schema",
			args:   []string{"validate", "-s", writeFile(t, "bad.json", `{"type": "object"}`), "-d", dataPath},
			errMsg: `missing required top-level "properties"`,
		},
		{
			name:   "missing required flag",
			args:   []string{"validate", "-s", schemaPath},
			errMsg: "data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runRoot(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Equal(t, ExitError, ExitCode(err))
		})
	}
}

func TestOutputFormatFromExtension(t *testing.T) {
	schemaPath := writeFile(t, "mapping.json", testSchema)
	dir := t.TempDir()

	tests := []struct {
		name  string
		file  string
		args  []string
		check func(t *testing.T, data []byte)
	}{
		{
			name: "json extension",
			file: "headers.json",
			check: func(t *testing.T, data []byte) {
				var list ColumnList
				require.NoError(t, json.Unmarshal(data, &list))
				assert.Len(t, list.Columns, 4)
			},
		},
		{
			name: "yml extension",
			file: "headers.yml",
			check: func(t *testing.T, data []byte) {
				var list ColumnList
				require.NoError(t, yaml.Unmarshal(data, &list))
				assert.Len(t, list.Columns, 4)
				assert.False(t, json.Valid(data))
			},
		},
		{
			name: "unknown extension keeps table",
			file: "headers.out",
			check: func(t *testing.T, data []byte) {
				assert.True(t, strings.HasPrefix(string(data), "HEADER"))
			},
		},
		{
			name: "explicit format wins",
			file: "headers.yaml",
			args: []string{"-t", "json"},
			check: func(t *testing.T, data []byte) {
				assert.True(t, json.Valid(data))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, tt.file)
			args := append([]string{"headers", "-s", schemaPath, "-o", out}, tt.args...)
			require.NoError(t, runRoot(t, args...))

			data, err := os.ReadFile(out)
			require.NoError(t, err)
			tt.check(t, data)
		})
	}
}

func TestHeadersCmd(t *testing.T) {
	schemaPath := writeFile(t, "mapping.json", testSchema)
	out := filepath.Join(t.TempDir(), "headers.json")

	require.NoError(t, runRoot(t, "headers", "-s", schemaPath, "-o", out, "-t", "json"))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var list ColumnList
	require.NoError(t, json.Unmarshal(data, &list))
	assert.Equal(t, schemaPath, list.Schema)
	require.Len(t, list.Columns, 4)

	assert.Equal(t, ColumnInfo{Header: "First Name", Path: "applicant.firstName", Required: true}, list.Columns[0])
	assert.Equal(t, "[^@]+@[^@]+", list.Columns[1].Pattern)
	assert.Equal(t, []string{"APPLICANT", "ENTITY"}, list.Columns[2].AvailableValues)
	assert.True(t, list.Columns[3].Conditional)
	assert.False(t, list.Columns[3].Required)
}

func TestColumnList_WriteTable(t *testing.T) {
	l := ColumnList{Columns: []ColumnInfo{
		{Header: "Email", Path: "applicant.email", Required: true, Pattern: "[^@]+@[^@]+"},
		{Header: "Risk", Path: "individuals.risk", Conditional: true, AvailableValues: []string{"LOW", "HIGH"}},
		{Header: "Notes", Path: "notes"},
	}}

	var buf bytes.Buffer
	require.NoError(t, l.WriteTable(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "HEADER"))
	assert.Contains(t, lines[1], "yes")
	assert.Contains(t, lines[2], "conditional")
	assert.Contains(t, lines[2], "LOW|HIGH")
	assert.Contains(t, lines[3], "no")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitError, ExitCode(errors.New("boom")))
	assert.Equal(t, ExitFindings, ExitCode(fmt.Errorf("%w: FAIL", ErrValidationFailed)))
}

func TestCommandLister(t *testing.T) {
	cmd := newRootCmd()
	cmd.Commands = append(cmd.Commands, &cli.Command{Name: "secret", Hidden: true})

	var buf bytes.Buffer
	cmd.Writer = &buf
	commandLister(context.Background(), cmd)

	assert.Equal(t, "validate\nheaders\n", buf.String())

	assert.NotPanics(t, func() { commandLister(context.Background(), nil) })
}
