// SPDX-License-Identifier: Apache-2.0

package mapping

import "fmt"

// FieldError reports a cell that could not be coerced to its declared
// type. It names the field, the zero-based row index and the raw value,
// and skips only the record it belongs to.
type FieldError struct {
	Field  string
	Row    int
	Raw    string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("row %d, field %s: %s (value %q)", e.Row, e.Field, e.Reason, e.Raw)
}

// RecordShapeError reports a record whose cell count does not match the
// schema's field count. The record is skipped, the run continues.
type RecordShapeError struct {
	Row  int
	Got  int
	Want int
}

func (e *RecordShapeError) Error() string {
	return fmt.Sprintf("row %d: record has %d cells, schema declares %d fields", e.Row, e.Got, e.Want)
}
