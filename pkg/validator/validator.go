/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/flatfile-validator/pkg/dataset"
	"github.com/NVIDIA/flatfile-validator/pkg/defaults"
	ffverrors "github.com/NVIDIA/flatfile-validator/pkg/errors"
	"github.com/NVIDIA/flatfile-validator/pkg/header"
	"github.com/NVIDIA/flatfile-validator/pkg/report"
	"github.com/NVIDIA/flatfile-validator/pkg/schema"
)

// Report metadata keys.
const (
	MetadataRunID  = "runId"
	MetadataSchema = "schema"
	MetadataData   = "data"
	MetadataSheet  = "sheet"
)

// Validator checks datasets against a schema.
type Validator struct {
	// Version is the validator version (typically the CLI version).
	Version string

	// Parallelism is the number of row chunks validated concurrently.
	// Values below 2 validate sequentially.
	Parallelism int

	// ChunkSize is the number of rows per chunk in parallel mode.
	ChunkSize int

	// IgnoreColumns holds patterns of dataset columns that are never
	// reported as extra.
	IgnoreColumns []string

	// MaxUploadBytes limits request bodies accepted by HandleValidate.
	MaxUploadBytes int64
}

// Option is a functional option for configuring Validator instances.
type Option func(*Validator)

// WithVersion returns an Option that sets the Validator version string.
func WithVersion(version string) Option {
	return func(v *Validator) {
		v.Version = version
	}
}

// WithParallelism sets the number of concurrent row chunks.
func WithParallelism(n int) Option {
	return func(v *Validator) {
		v.Parallelism = n
	}
}

// WithChunkSize sets the rows per chunk. Non-positive values keep the default.
func WithChunkSize(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.ChunkSize = n
		}
	}
}

// WithIgnoreColumns adds column patterns ("prefix*", "*suffix", "*contains*"
// or exact names) excluded from extra-column findings.
func WithIgnoreColumns(patterns ...string) Option {
	return func(v *Validator) {
		v.IgnoreColumns = append(v.IgnoreColumns, patterns...)
	}
}

// WithMaxUploadBytes limits the request body size of HandleValidate.
func WithMaxUploadBytes(n int64) Option {
	return func(v *Validator) {
		if n > 0 {
			v.MaxUploadBytes = n
		}
	}
}

// New creates a new Validator with the provided options.
func New(opts ...Option) *Validator {
	v := &Validator{
		Parallelism:    1,
		ChunkSize:      defaults.ChunkSize,
		MaxUploadBytes: defaults.MaxUploadBytes,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate matches the dataset header against the schema and checks every
// cell. Findings are never returned as errors; an error means the run could
// not complete.
func (v *Validator) Validate(ctx context.Context, s *schema.Schema, ds *dataset.Dataset) (*report.Report, error) {
	start := time.Now()

	if s == nil {
		return nil, ffverrors.New(ffverrors.ErrCodeInvalidRequest, "schema cannot be nil")
	}
	if ds == nil {
		return nil, ffverrors.New(ffverrors.ErrCodeInvalidRequest, "dataset cannot be nil")
	}

	headerFindings := MatchHeaders(s, ds.Columns, v.IgnoreColumns...)

	cellFindings, err := v.validateCells(ctx, s, ds)
	if err != nil {
		validationTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	result := report.Build(headerFindings, cellFindings)
	result.SetMetadata(header.MetadataVersion, v.Version)
	result.SetMetadata(MetadataRunID, uuid.NewString())
	result.SetMetadata(MetadataSchema, s.Source)
	result.SetMetadata(MetadataData, ds.Source)
	result.SetMetadata(MetadataSheet, ds.Sheet)

	result.Summary.Columns = len(ds.Columns)
	result.Summary.Rows = ds.Len()
	result.Summary.Duration = time.Since(start)

	validationDuration.Observe(result.Summary.Duration.Seconds())
	validationTotal.WithLabelValues(string(result.Summary.Status)).Inc()
	rowsValidated.Add(float64(ds.Len()))
	for _, f := range result.Findings {
		findingsTotal.WithLabelValues(string(f.Kind)).Inc()
	}

	slog.Debug("validation completed",
		"headerFindings", result.Summary.HeaderFindings,
		"cellFindings", result.Summary.CellFindings,
		"rows", result.Summary.Rows,
		"status", result.Summary.Status,
		"duration", result.Summary.Duration)

	return result, nil
}

func (v *Validator) validateCells(ctx context.Context, s *schema.Schema, ds *dataset.Dataset) ([]report.Finding, error) {
	p := newPlan(s, ds)
	rows := ds.Len()
	size := v.ChunkSize
	if size <= 0 {
		size = defaults.ChunkSize
	}

	if v.Parallelism < 2 || rows <= size {
		out := make([][]report.Finding, len(p))
		for i, col := range p {
			if err := ctx.Err(); err != nil {
				return nil, canceled(err)
			}
			out[i] = col.validate(ds, 0, rows)
		}
		return p.flatten(out), nil
	}

	chunks := (rows + size - 1) / size
	results := make([][][]report.Finding, chunks)

	slog.Debug("validating in parallel",
		"rows", rows,
		"chunks", chunks,
		"parallelism", v.Parallelism)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.Parallelism)
	for c := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			from := c * size
			results[c] = p.validate(ds, from, min(from+size, rows))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, canceled(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, canceled(err)
	}

	// Merge column by column so the order matches a sequential run.
	merged := make([][]report.Finding, len(p))
	for i := range p {
		for c := range chunks {
			merged[i] = append(merged[i], results[c][i]...)
		}
	}
	return p.flatten(merged), nil
}

func canceled(err error) error {
	return ffverrors.Wrap(ffverrors.ErrCodeTimeout, "validation did not complete", err)
}

// withIgnored returns a copy of v with extra ignore patterns.
func (v *Validator) withIgnored(patterns []string) *Validator {
	c := *v
	c.IgnoreColumns = append(slices.Clone(v.IgnoreColumns), patterns...)
	return &c
}
