// SPDX-License-Identifier: Apache-2.0

// Package mapping coerces raw record cells into typed values and turns
// whole records into graph individuals. One record maps to one
// Individual; a coercion failure aborts that record only, never the
// run.
package mapping

import (
	"time"

	"github.com/cockroachdb/apd/v3"

	"github.com/bocagrande/semmap/internal/contract"
)

// Kind tags the variant carried by a TypedValue.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindDecimal
	KindDate
	KindClob
	KindMeasurement
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindDate:
		return "date"
	case KindClob:
		return "clob"
	case KindMeasurement:
		return "measurement"
	}
	return "unknown"
}

// TypedValue is the coerced form of one cell, owned by the mapping of a
// single record. Raw always preserves the original cell text exactly,
// including case.
type TypedValue struct {
	Field contract.Field
	Kind  Kind
	Raw   string

	Int  int64
	Dec  *apd.Decimal
	Date time.Time

	// NeedsQuoting marks a clob whose text contains the configured
	// separator, quote character or a newline. Serialization concern,
	// not a parse failure.
	NeedsQuoting bool
}

// Lexical returns the case-preserved string form used for identity
// construction and graph listing.
func (v TypedValue) Lexical() string { return v.Raw }

// Equal compares two values of the same field. Numeric and date kinds
// compare by value, everything else by exact text.
func (v TypedValue) Equal(o TypedValue) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindInteger:
		return v.Int == o.Int
	case KindDecimal:
		return v.Dec != nil && o.Dec != nil && v.Dec.Cmp(o.Dec) == 0
	case KindDate:
		return v.Date.Equal(o.Date)
	default:
		return v.Raw == o.Raw
	}
}
