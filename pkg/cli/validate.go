/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/flatfile-validator/pkg/dataset"
	"github.com/NVIDIA/flatfile-validator/pkg/defaults"
	"github.com/NVIDIA/flatfile-validator/pkg/schema"
	"github.com/NVIDIA/flatfile-validator/pkg/validator"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Validate a dataset against a field-mapping schema",
		Description: `Validates a spreadsheet against a JSON or YAML field-mapping schema and reports:
  - Expected columns missing from the dataset
  - Dataset columns the schema does not declare
  - Empty cells in required columns
  - Values not fully matching the column pattern
  - Values outside the allowed values of the column
  - Violations of dependent rules declared on array fields

Datasets can be xlsx (first sheet unless --sheet is given), csv, json or yaml.
The report can be output in JSON, YAML, or table format.

# Examples

Validate the first sheet of a workbook:
  ffvctl validate --schema mapping.json --data applicants.xlsx

Fail the build when findings exist:
  ffvctl validate -s mapping.json -d applicants.csv --fail-on-error

Ignore bookkeeping columns and write a JSON report:
  ffvctl validate -s mapping.json -d applicants.xlsx --ignore-column "Notes*" -o report.json -t json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "schema",
				Aliases:  []string{"s"},
				Required: true,
				Usage:    "schema file path (JSON or YAML)",
			},
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Required: true,
				Usage:    "dataset file path (xlsx, csv, json or yaml)",
			},
			&cli.StringFlag{
				Name:  "sheet",
				Usage: "worksheet to read from an xlsx workbook (default: first sheet)",
			},
			&cli.StringSliceFlag{
				Name:  "ignore-column",
				Usage: "dataset column never reported as extra (prefix*, *suffix, *contains* or exact name, can be repeated)",
			},
			&cli.IntFlag{
				Name:    "parallel",
				Value:   1,
				Usage:   "number of row chunks validated concurrently",
				Sources: cli.EnvVars("FFV_PARALLEL"),
			},
			&cli.IntFlag{
				Name:  "chunk-size",
				Value: defaults.ChunkSize,
				Usage: "rows per chunk when --parallel is greater than 1",
			},
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: fmt.Sprintf("exit with code %d when the report has findings", ExitFindings),
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			parallel := cmd.Int("parallel")
			if parallel < 1 {
				return fmt.Errorf("parallel must be at least 1, got %d", parallel)
			}
			chunkSize := cmd.Int("chunk-size")
			if chunkSize < 1 {
				return fmt.Errorf("chunk-size must be at least 1, got %d", chunkSize)
			}

			s, err := schema.FromFile(cmd.String("schema"))
			if err != nil {
				return err
			}

			var readOpts []dataset.ReadOption
			if sheet := cmd.String("sheet"); sheet != "" {
				readOpts = append(readOpts, dataset.WithSheet(sheet))
			}
			ds, err := dataset.FromFile(cmd.String("data"), readOpts...)
			if err != nil {
				return err
			}

			v := validator.New(
				validator.WithVersion(version),
				validator.WithParallelism(parallel),
				validator.WithChunkSize(chunkSize),
				validator.WithIgnoreColumns(cmd.StringSlice("ignore-column")...),
			)

			result, err := v.Validate(ctx, s, ds)
			if err != nil {
				return fmt.Errorf("failed to validate %q: %w", ds.Source, err)
			}

			if err := writeOutput(ctx, cmd, outFormat, result); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}

			slog.Debug("validation finished",
				"status", result.Summary.Status,
				"findings", result.Summary.Total)

			if !result.Passed() && cmd.Bool("fail-on-error") {
				return fmt.Errorf("%w: %s", ErrValidationFailed, result.Headline())
			}
			return nil
		},
	}
}
