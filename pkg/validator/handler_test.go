package validator

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/flatfile-validator/pkg/report"
	"github.com/NVIDIA/flatfile-validator/pkg/server"
)

const applicantCSV = "Applicant First Name,Applicant Email,Applicant Gender,Individual Type,Business Relocation Risk,Household Rent Income\n" +
	"Ada,ada@example.com,Female,APPLICANT,,1200\n" +
	"Acme,ops@acme.io,,ENTITY,,\n"

type part struct {
	field, filename, content string
}

func newUpload(t *testing.T, target string, parts ...part) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, p := range parts {
		fw, err := mw.CreateFormFile(p.field, p.filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(p.content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeReport(t *testing.T, w *httptest.ResponseRecorder) *report.Report {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var r report.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
	return &r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) server.ErrorResponse {
	t.Helper()

	var resp server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleValidate_Report(t *testing.T) {
	v := New(WithVersion("test"))

	req := newUpload(t, "/v1/validate",
		part{FormFieldSchema, "mapping.json", applicantSchema},
		part{FormFieldData, "applicants.csv", applicantCSV},
	)
	w := httptest.NewRecorder()
	v.HandleValidate(w, req)

	r := decodeReport(t, w)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, report.StatusFail, r.Summary.Status)
	assert.Equal(t, []string{
		"Missing required data in header 'Business Relocation Risk' at row 2 (required when 'Individual Type' is one of: ENTITY)",
	}, r.Messages())
	assert.Equal(t, "mapping.json", r.Metadata[MetadataSchema])
	assert.Equal(t, "applicants.csv", r.Metadata[MetadataData])
	assert.Equal(t, "test", r.Metadata["version"])
}

func TestHandleValidate_YAML(t *testing.T) {
	v := New()

	req := newUpload(t, "/v1/validate",
		part{FormFieldSchema, "mapping.json", applicantSchema},
		part{FormFieldData, "applicants.csv", applicantCSV},
	)
	req.Header.Set("Accept", "application/yaml")
	w := httptest.NewRecorder()
	v.HandleValidate(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/yaml", w.Header().Get("Content-Type"))

	var r report.Report
	require.NoError(t, yaml.Unmarshal(w.Body.Bytes(), &r))
	assert.Equal(t, report.StatusFail, r.Summary.Status)
	assert.Len(t, r.Findings, 1)
}

func TestHandleValidate_IgnoreQuery(t *testing.T) {
	v := New()
	data := strings.Replace(applicantCSV, "Household Rent Income\n", "Household Rent Income,Notes,Internal Id\n", 1)
	data = strings.Replace(data, "1200\n", "1200,a,1\n", 1)
	data = strings.Replace(data, ",ENTITY,,\n", ",ENTITY,,,b,2\n", 1)

	t.Run("without ignore", func(t *testing.T) {
		req := newUpload(t, "/v1/validate",
			part{FormFieldSchema, "mapping.json", applicantSchema},
			part{FormFieldData, "applicants.csv", data},
		)
		w := httptest.NewRecorder()
		v.HandleValidate(w, req)

		r := decodeReport(t, w)
		assert.Equal(t, 2, r.Summary.HeaderFindings)
	})

	t.Run("comma delimited and repeated", func(t *testing.T) {
		req := newUpload(t, "/v1/validate?ignore=Notes,&ignore=Internal*",
			part{FormFieldSchema, "mapping.json", applicantSchema},
			part{FormFieldData, "applicants.csv", data},
		)
		w := httptest.NewRecorder()
		v.HandleValidate(w, req)

		r := decodeReport(t, w)
		assert.Equal(t, 0, r.Summary.HeaderFindings)
		assert.Empty(t, v.IgnoreColumns, "request patterns must not leak into the validator")
	})
}

func TestHandleValidate_DetectsFormat(t *testing.T) {
	v := New()

	req := newUpload(t, "/v1/validate",
		part{FormFieldSchema, "mapping.yaml", applicantSchema},
		part{FormFieldData, "upload", applicantCSV},
	)
	w := httptest.NewRecorder()
	v.HandleValidate(w, req)

	r := decodeReport(t, w)
	assert.Equal(t, 2, r.Summary.Rows)
}

func TestHandleValidate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		validator  *Validator
		req        func(t *testing.T) *http.Request
		wantStatus int
		wantCode   string
	}{
		{
			name:      "method not allowed",
			validator: New(),
			req: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodGet, "/v1/validate", nil)
			},
			wantStatus: http.StatusMethodNotAllowed,
			wantCode:   "METHOD_NOT_ALLOWED",
		},
		{
			name:      "not multipart",
			validator: New(),
			req: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader(`{}`))
				req.Header.Set("Content-Type", "application/json")
				return req
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
		{
			name:      "missing data part",
			validator: New(),
			req: func(t *testing.T) *http.Request {
				return newUpload(t, "/v1/validate", part{FormFieldSchema, "mapping.json", applicantSchema})
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
		{
			name:      "invalid schema",
			validator: New(),
			req: func(t *testing.T) *http.Request {
				return newUpload(t, "/v1/validate",
					part{FormFieldSchema, "mapping.json", `{"type": "object"}`},
					part{FormFieldData, "applicants.csv", applicantCSV},
				)
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "SCHEMA_ERROR",
		},
		{
			name:      "unreadable workbook",
			validator: New(),
			req: func(t *testing.T) *http.Request {
				return newUpload(t, "/v1/validate?sheet=Nope",
					part{FormFieldSchema, "mapping.json", applicantSchema},
					part{FormFieldData, "applicants.xlsx", "not a workbook"},
				)
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INPUT_ERROR",
		},
		{
			name:      "body too large",
			validator: New(WithMaxUploadBytes(64)),
			req: func(t *testing.T) *http.Request {
				return newUpload(t, "/v1/validate",
					part{FormFieldSchema, "mapping.json", applicantSchema},
					part{FormFieldData, "applicants.csv", applicantCSV},
				)
			},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantCode:   "INVALID_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.validator.HandleValidate(w, tt.req(t))

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			resp := decodeError(t, w)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}
