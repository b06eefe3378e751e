package validator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/NVIDIA/flatfile-validator/pkg/dataset"
	"github.com/NVIDIA/flatfile-validator/pkg/defaults"
	ffverrors "github.com/NVIDIA/flatfile-validator/pkg/errors"
	"github.com/NVIDIA/flatfile-validator/pkg/schema"
	"github.com/NVIDIA/flatfile-validator/pkg/serializer"
	"github.com/NVIDIA/flatfile-validator/pkg/server"
)

// Multipart form fields read by HandleValidate.
const (
	FormFieldSchema = "schema"
	FormFieldData   = "data"
)

// HandleValidate validates an uploaded dataset against an uploaded schema.
// It accepts a multipart POST with a "schema" file (JSON or YAML) and a
// "data" file (xlsx, csv, json or yaml, chosen by file name). The optional
// "sheet" query parameter selects a worksheet and "ignore" (repeatable,
// comma-delimited) adds ignored column patterns. The response is the report
// as JSON; findings do not change the status code.
//
// Example:
//
//	POST /v1/validate?sheet=Applicants&ignore=Notes*
//	Content-Type: multipart/form-data; boundary=...
func (v *Validator) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, r, http.StatusMethodNotAllowed, ffverrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method": r.Method,
			})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.ValidateHandlerTimeout)
	defer cancel()

	if r.ContentLength > v.MaxUploadBytes {
		writeTooLarge(w, r, v.MaxUploadBytes)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, v.MaxUploadBytes)
	if err := r.ParseMultipartForm(defaults.MultipartMemoryBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeTooLarge(w, r, tooLarge.Limit)
			return
		}
		server.WriteError(w, r, http.StatusBadRequest, ffverrors.ErrCodeInvalidRequest,
			"Invalid multipart request", false, map[string]any{
				"error": err.Error(),
			})
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			slog.Warn("failed to remove multipart files", "error", err)
		}
	}()

	s, err := readSchemaPart(r)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid schema", nil)
		return
	}

	q := r.URL.Query()
	ds, err := readDataPart(r, q.Get("sheet"))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Invalid dataset", nil)
		return
	}

	var ignore []string
	for _, param := range q["ignore"] {
		for _, p := range strings.Split(param, ",") {
			if p = strings.TrimSpace(p); p != "" {
				ignore = append(ignore, p)
			}
		}
	}

	slog.Debug("validate request received",
		"schema", s.Source,
		"data", ds.Source,
		"rows", ds.Len(),
		"ignore", ignore)

	result, err := v.withIgnored(ignore).Validate(ctx, s, ds)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Validation failed", nil)
		return
	}

	serializer.Respond(w, r, http.StatusOK, result)
}

func writeTooLarge(w http.ResponseWriter, r *http.Request, limit int64) {
	server.WriteError(w, r, http.StatusRequestEntityTooLarge, ffverrors.ErrCodeInvalidRequest,
		"Request body too large", false, map[string]any{
			"limit": limit,
		})
}

func readSchemaPart(r *http.Request) (*schema.Schema, error) {
	f, fh, err := formFile(r, FormFieldSchema)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := schema.Read(f)
	if err != nil {
		return nil, err
	}
	s.Source = fh.Filename
	return s, nil
}

func readDataPart(r *http.Request, sheet string) (*dataset.Dataset, error) {
	f, fh, err := formFile(r, FormFieldData)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	format := dataset.FormatFromPath(fh.Filename)
	if format.IsUnknown() {
		head := make([]byte, 512)
		n, _ := f.Read(head)
		format = dataset.DetectFormat(head[:n])
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, ffverrors.Wrap(ffverrors.ErrCodeInternal, "failed to rewind upload", err)
		}
	}

	var opts []dataset.ReadOption
	if sheet != "" {
		opts = append(opts, dataset.WithSheet(sheet))
	}

	ds, err := dataset.Read(f, format, opts...)
	if err != nil {
		return nil, err
	}
	ds.Source = fh.Filename
	return ds, nil
}

func formFile(r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	f, fh, err := r.FormFile(field)
	if err != nil {
		return nil, nil, ffverrors.WrapWithContext(ffverrors.ErrCodeInvalidRequest,
			"missing multipart file field", err, map[string]any{"field": field})
	}
	return f, fh, nil
}
