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

// Package schema models and loads field-mapping schemas.
//
// # Overview
//
// A field-mapping schema describes how the columns of a flat file (a
// spreadsheet or CSV export) map onto a nested record. Every node is a Field
// tagged with one of four field types:
//
//   - direct: a leaf bound to a column through its flatFileHeader
//   - object: a container of named children
//   - array: a repeated container; may declare a primaryKeyField and
//     dependentFieldValidation rules
//   - map: a keyed container of children
//
// # Document Format
//
// Schemas are JSON or YAML documents with a top-level properties mapping:
//
//	{
//	  "properties": {
//	    "applicant": {
//	      "fieldType": "object",
//	      "properties": {
//	        "email": {
//	          "flatFileHeader": "Applicant Email",
//	          "required": "true",
//	          "pattern": "^[^@\\s]+@[^@\\s]+$"
//	        }
//	      }
//	    }
//	  }
//	}
//
// Recognized field keys are type, flatFileHeader, pattern, customValidator,
// required, fieldType, availableValues, primaryKeyField,
// dependentFieldValidation, properties and items.
//
// # Dependent Field Validation
//
// An array field can restrict extra constraints to the elements whose
// primary key has given values:
//
//	"dependentFieldValidation": [{
//	  "key": "businessRelocationRisk",
//	  "source": {"required": "true"},
//	  "target": {"key": "individualType", "availableValues": ["ENTITY"]}
//	}]
//
// target.key defaults to the array's primaryKeyField.
//
// # Loading
//
//	s, err := schema.FromFile("mapping.json")
//	if err != nil {
//	    return err // *errors.StructuredError with code SCHEMA_ERROR
//	}
//	for f := range s.Leaves() {
//	    fmt.Println(f.FlatFileHeader)
//	}
//
// Loading is all-or-nothing: every structural defect found (missing
// properties, containers without children, invalid patterns, duplicate flat
// headers, unresolvable rule keys) is reported in one SCHEMA_ERROR and no
// Schema is returned. A loaded Schema is immutable and safe for concurrent
// reads.
package schema
