package dataset

import (
	"encoding/csv"
	"io"
	"strings"

	ffverrors "github.com/NVIDIA/flatfile-validator/pkg/errors"
)

const bom = "\ufeff"

func readCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, ffverrors.Wrap(ffverrors.ErrCodeInput, "file is not valid CSV", err)
	}
	if len(records) == 0 {
		return nil, ffverrors.New(ffverrors.ErrCodeInput, "CSV file has no header row")
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}

	return FromRecords(header, records[1:])
}
