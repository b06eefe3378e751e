/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package dataset reads flat files into an in-memory table.
//
// A Dataset holds the header row as ordered Columns and every data row as a
// Row keyed by column name. Supported inputs:
//
//   - xlsx: the first worksheet unless WithSheet names another; cell text is
//     the formatted value
//   - csv: comma separated, optional UTF-8 byte order mark
//   - json/yaml: a list of flat records; columns ordered by first appearance
//
// Read failures are returned as INPUT_ERROR structured errors.
//
//	d, err := dataset.FromFile("applicants.xlsx")
//	if err != nil {
//	    return err
//	}
//	for i := range d.Len() {
//	    fmt.Println(d.Value(i, "Applicant Email"))
//	}
package dataset
