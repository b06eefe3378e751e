package dataset

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	ffverrors "github.com/NVIDIA/flatfile-validator/pkg/errors"
)

// readRecords reads a JSON or YAML list of flat records. Columns are ordered
// by first appearance; keys missing from a record read as null.
func readRecords(r io.Reader) (*Dataset, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, ffverrors.New(ffverrors.ErrCodeInput, "records document is empty")
		}
		return nil, ffverrors.Wrap(ffverrors.ErrCodeInput, "file is not a valid JSON or YAML document", err)
	}

	list := doc.Content[0]
	if list.Kind != yaml.SequenceNode {
		return nil, ffverrors.New(ffverrors.ErrCodeInput, "records document must be a list of records")
	}

	var columns []string
	seen := make(map[string]bool)
	rows := make([]Row, 0, len(list.Content))

	for i, rec := range list.Content {
		if rec.Kind != yaml.MappingNode {
			return nil, ffverrors.New(ffverrors.ErrCodeInput, fmt.Sprintf("record %d is not a mapping", i))
		}

		row := make(Row, len(rec.Content)/2)
		for j := 0; j+1 < len(rec.Content); j += 2 {
			col, v := rec.Content[j].Value, rec.Content[j+1]
			if col == "" {
				return nil, ffverrors.New(ffverrors.ErrCodeInput, fmt.Sprintf("record %d has an empty column name", i))
			}
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}

			switch {
			case v.Kind != yaml.ScalarNode:
				return nil, ffverrors.WrapWithContext(ffverrors.ErrCodeInput,
					fmt.Sprintf("record %d has a nested value in column %q", i, col), nil,
					map[string]any{"column": col, "row": i})
			case v.Tag == "!!null":
				row[col] = Null()
			default:
				row[col] = Text(v.Value)
			}
		}
		rows = append(rows, row)
	}

	return New(columns, rows)
}
