// SPDX-License-Identifier: Apache-2.0

// Package contract holds the in-memory representation of a table data
// contract: an ordered field specification plus the global parsing
// metadata (separator, decimal symbol, quote character) that governs how
// raw cells are interpreted. A Schema is immutable once loaded; every
// downstream component trusts its invariants without revalidating.
package contract

import "regexp"

// FieldType enumerates the declared types a field may carry.
type FieldType string

const (
	TypeString      FieldType = "string"
	TypeInteger     FieldType = "integer"
	TypeDecimal     FieldType = "decimal"
	TypeDate        FieldType = "date"
	TypeClob        FieldType = "clob"
	TypeMeasurement FieldType = "measurement"
)

// Valid reports whether t is one of the six declared field types.
func (t FieldType) Valid() bool {
	switch t {
	case TypeString, TypeInteger, TypeDecimal, TypeDate, TypeClob, TypeMeasurement:
		return true
	}
	return false
}

// DefaultDateFormat is applied to date fields that do not declare a
// format of their own.
const DefaultDateFormat = "YYYY-MM-DD"

// Field is one column of the contract. Name is case-sensitive and
// unique within the schema. Ordinal defines the output column order.
type Field struct {
	Name     string    `yaml:"name"`
	Type     FieldType `yaml:"type"`
	Format   string    `yaml:"format,omitempty"`
	Nullable bool      `yaml:"nullable,omitempty"`
	Key      bool      `yaml:"key,omitempty"`
	Ordinal  int       `yaml:"ordinal"`
}

// Globals is the contract-wide parsing metadata.
type Globals struct {
	Separator string `yaml:"separator,omitempty" json:"separator"`
	Decimal   string `yaml:"decimal,omitempty" json:"decimal"`
	Quote     string `yaml:"quote,omitempty" json:"quote"`
}

// DefaultGlobals returns the metadata used when the document overrides
// nothing: comma separator, point decimal, double-quote.
func DefaultGlobals() Globals {
	return Globals{Separator: ",", Decimal: ".", Quote: `"`}
}

// Schema is a validated, immutable field specification.
type Schema struct {
	id           string
	fields       []Field
	globals      Globals
	byName       map[string]int
	dateLayouts  map[string]dateLayout
	measurements map[string]*regexp.Regexp
}

// ID returns the stable schema identifier.
func (s *Schema) ID() string { return s.id }

// Globals returns the contract-wide parsing metadata.
func (s *Schema) Globals() Globals { return s.globals }

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.fields) }

// Fields returns the fields in ordinal order. The returned slice is a
// copy; the schema itself never changes after Load.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks a field up by its case-sensitive name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// KeyFields returns the key-role fields in ordinal order.
func (s *Schema) KeyFields() []Field {
	var keys []Field
	for _, f := range s.fields {
		if f.Key {
			keys = append(keys, f)
		}
	}
	return keys
}

// MeasurementPattern returns the compiled pattern for a measurement
// field. It is only defined for fields declared with TypeMeasurement.
func (s *Schema) MeasurementPattern(name string) *regexp.Regexp {
	return s.measurements[name]
}

// dateLayoutFor returns the precompiled layout for a date field.
func (s *Schema) dateLayoutFor(name string) (dateLayout, bool) {
	l, ok := s.dateLayouts[name]
	return l, ok
}

// DateLayout exposes the Go time layout and strict shape check compiled
// from a date field's declared pattern.
func (s *Schema) DateLayout(name string) (layout string, shape *regexp.Regexp, ok bool) {
	l, found := s.dateLayoutFor(name)
	if !found {
		return "", nil, false
	}
	return l.layout, l.shape, true
}
