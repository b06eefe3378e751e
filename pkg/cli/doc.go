// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli implements the command-line interface for the ffvctl tool.
//
// # Overview
//
// ffvctl validates spreadsheet datasets against a field-mapping schema. It is
// meant for data-onboarding pipelines where a CSV or workbook must be checked
// before it is imported into a nested document store.
//
// # Commands
//
// validate - Validate a dataset against a schema:
//
//	ffvctl validate --schema mapping.json --data applicants.xlsx
//	ffvctl validate -s mapping.yaml -d applicants.xlsx --sheet "Q3 Intake"
//	ffvctl validate -s mapping.json -d applicants.csv --fail-on-error
//	ffvctl validate -s mapping.json -d big.csv --parallel 8 --chunk-size 5000
//
// Compares the dataset header row with the headers declared by the schema,
// then checks every cell of every declared column for required, pattern and
// allowed-value violations, including dependent rules declared on array
// fields. Use --fail-on-error for CI/CD pipelines.
//
// headers - List the columns a schema expects:
//
//	ffvctl headers --schema mapping.json
//	ffvctl headers -s mapping.json -t yaml
//
// # Common Flags
//
//	--output, -o   Output file path (default: stdout)
//	--format, -t   Output format: json, yaml, table (default: from the --output
//	               extension, else table)
//	--debug        Enable debug logging
//	--log-json     Output logs in JSON format
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Environment Variables
//
//	LOG_LEVEL      Set logging verbosity (debug, info, warn, error)
//	FFV_DEBUG      Same as --debug
//	FFV_OUTPUT     Default for --output
//	FFV_FORMAT     Default for --format
//	FFV_PARALLEL   Default for validate --parallel
//
// # Exit Codes
//
//	0  Success, or findings without --fail-on-error
//	1  General error (invalid arguments, unreadable schema or dataset)
//	2  Findings reported with --fail-on-error
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to:
//   - pkg/schema - Schema loading and structural checks
//   - pkg/dataset - Workbook, CSV, JSON and YAML readers
//   - pkg/validator - Header matching and cell validation
//   - pkg/report - Report building and table rendering
//   - pkg/serializer - Output formatting
//   - pkg/logging - Structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/flatfile-validator/pkg/cli.version=1.0.0'"
package cli
