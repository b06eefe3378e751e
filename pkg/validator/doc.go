/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package validator checks tabular datasets against a field-mapping schema.
//
// # Overview
//
// A run has two independent passes over the same inputs:
//
//   - MatchHeaders compares the schema's expected flat headers (every direct
//     field with a flatFileHeader, in pre-order) with the dataset columns and
//     reports missing and extra columns.
//   - ValidateCells applies the required, pattern and availableValues checks
//     of each schema column present in the dataset to every row, followed by
//     the dependent rules declared on enclosing arrays.
//
// Validator combines both passes into a report.Report. It never stops at the
// first problem: every violation of every row is reported.
//
// # Dependent Rules
//
// An array field may declare rules that constrain one child only for rows
// whose discriminator column (the rule's target key, or the array's
// primaryKeyField) holds one of a set of values:
//
//	"dependentFieldValidation": [{
//	    "key": "businessRelocationRisk",
//	    "source": {"required": "true"},
//	    "target": {"availableValues": ["ENTITY"]}
//	}]
//
// A rule whose discriminator column is absent from the dataset does not
// apply. Checks already enforced by the field itself are not repeated.
//
// # Usage
//
//	s, err := schema.FromFile("mapping.json")
//	if err != nil {
//	    return err
//	}
//	ds, err := dataset.FromFile("applicants.xlsx")
//	if err != nil {
//	    return err
//	}
//
//	v := validator.New(validator.WithVersion(version))
//	result, err := v.Validate(ctx, s, ds)
//	if err != nil {
//	    return err
//	}
//	for _, msg := range result.Messages() {
//	    fmt.Println(msg)
//	}
//
// # Parallel Mode
//
// WithParallelism splits the rows into chunks of WithChunkSize rows that are
// validated concurrently. Results are merged per column in chunk order, so
// the findings are identical to a sequential run.
package validator
