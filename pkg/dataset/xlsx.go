package dataset

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/xuri/excelize/v2"

	ffverrors "github.com/NVIDIA/flatfile-validator/pkg/errors"
)

// readXLSX reads the header row and data rows of one worksheet. Cell text is
// the formatted value as shown by spreadsheet applications.
func readXLSX(r io.Reader, o *readOptions) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, ffverrors.Wrap(ffverrors.ErrCodeInput, "file is not a readable xlsx workbook", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close workbook", "error", closeErr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ffverrors.New(ffverrors.ErrCodeInput, "workbook has no sheets")
	}

	sheet := sheets[0]
	if o.sheet != "" {
		if !slices.Contains(sheets, o.sheet) {
			return nil, ffverrors.WrapWithContext(ffverrors.ErrCodeInput,
				fmt.Sprintf("sheet %q not found, available sheets: %v", o.sheet, sheets), nil,
				map[string]any{"sheet": o.sheet})
		}
		sheet = o.sheet
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, ffverrors.Wrap(ffverrors.ErrCodeInput, fmt.Sprintf("failed to read sheet %q", sheet), err)
	}
	if len(rows) == 0 {
		return nil, ffverrors.New(ffverrors.ErrCodeInput, fmt.Sprintf("sheet %q has no header row", sheet))
	}

	d, err := FromRecords(rows[0], rows[1:])
	if err != nil {
		return nil, err
	}
	d.Sheet = sheet

	return d, nil
}
