package dataset

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	ffverrors "github.com/NVIDIA/flatfile-validator/pkg/errors"
)

// Format identifies a dataset file format.
type Format string

const (
	FormatXLSX    Format = "xlsx"
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatUnknown Format = ""
)

// SupportedFormats returns all readable formats.
func SupportedFormats() []Format {
	return []Format{FormatXLSX, FormatCSV, FormatJSON, FormatYAML}
}

// IsUnknown reports whether f is not a readable format.
func (f Format) IsUnknown() bool {
	return !slices.Contains(SupportedFormats(), f)
}

// FormatFromPath determines the dataset format from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	case ".csv":
		return FormatCSV
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

type readOptions struct {
	sheet string
}

// ReadOption configures how a dataset is read.
type ReadOption func(*readOptions)

// WithSheet selects a worksheet by name. Without it the first sheet is read.
func WithSheet(name string) ReadOption {
	return func(o *readOptions) {
		o.sheet = name
	}
}

// FromFile reads a dataset, choosing the reader by file extension.
func FromFile(path string, opts ...ReadOption) (*Dataset, error) {
	format := FormatFromPath(path)
	slog.Debug("determined dataset file format",
		slog.String("path", path),
		slog.String("format", string(format)),
	)

	f, err := os.Open(path)
	if err != nil {
		return nil, ffverrors.WrapWithContext(ffverrors.ErrCodeInput, "failed to open dataset file", err,
			map[string]any{"path": path})
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close dataset file", "error", closeErr)
		}
	}()

	d, err := Read(f, format, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset from %q: %w", path, err)
	}
	d.Source = path

	slog.Debug("successfully loaded dataset from file",
		slog.String("path", path),
		slog.String("sheet", d.Sheet),
		slog.Int("columns", len(d.Columns)),
		slog.Int("rows", d.Len()),
	)

	return d, nil
}

// Read reads a dataset of the given format from r.
func Read(r io.Reader, format Format, opts ...ReadOption) (*Dataset, error) {
	o := &readOptions{}
	for _, opt := range opts {
		opt(o)
	}

	switch format {
	case FormatXLSX:
		return readXLSX(r, o)
	case FormatCSV:
		return readCSV(r)
	case FormatJSON, FormatYAML:
		return readRecords(r)
	default:
		return nil, ffverrors.New(ffverrors.ErrCodeInput,
			fmt.Sprintf("unsupported dataset format %q, supported formats are: %v", format, SupportedFormats()))
	}
}

// DetectFormat guesses the format of data whose name carries no usable
// extension: zip archives are xlsx, a leading '[' or '{' is JSON, anything
// else is CSV.
func DetectFormat(data []byte) Format {
	if bytes.HasPrefix(data, []byte("PK\x03\x04")) {
		return FormatXLSX
	}
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(data, []byte(bom)), " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return FormatJSON
	}
	return FormatCSV
}
