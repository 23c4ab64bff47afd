// SPDX-License-Identifier: Apache-2.0

package mapping

import (
	"strings"

	"github.com/bocagrande/semmap/internal/contract"
)

// Mapper converts validated records into Individuals. Safe for
// concurrent use across records; the schema is read-only after load.
type Mapper struct {
	schema  *contract.Schema
	coercer *Coercer
}

// NewMapper builds a Mapper for one loaded schema.
func NewMapper(schema *contract.Schema) *Mapper {
	return &Mapper{schema: schema, coercer: NewCoercer(schema)}
}

// MapRecord coerces every cell in ordinal order and assembles the
// Individual. The first coercion failure aborts this record and is
// returned as the record's error; partial individuals are never
// emitted. Errors are per-record: callers skip the row and continue.
func (m *Mapper) MapRecord(cells []string, row int) (*Individual, error) {
	fields := m.schema.Fields()
	if len(cells) != len(fields) {
		return nil, &RecordShapeError{Row: row, Got: len(cells), Want: len(fields)}
	}

	values := make([]*TypedValue, len(fields))
	for i, field := range fields {
		v, err := m.coercer.Coerce(cells[i], field, row)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	var keyParts []string
	for i, field := range fields {
		if !field.Key {
			continue
		}
		// Key fields are non-nullable by schema rule, so the value is
		// always present here.
		keyParts = append(keyParts, values[i].Lexical())
	}
	identity := strings.Join(keyParts, IdentitySeparator)

	ind := newIndividual(identity, row, len(fields))
	for _, v := range values {
		if v == nil {
			continue // nullable field with no value
		}
		ind.Add(*v)
	}
	return ind, nil
}
