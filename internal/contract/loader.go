// SPDX-License-Identifier: Apache-2.0

package contract

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"unicode/utf8"

	"github.com/goccy/go-yaml"
)

// document mirrors the YAML contract file.
type document struct {
	Schema  string  `yaml:"schema"`
	Globals Globals `yaml:"globals"`
	Fields  []Field `yaml:"fields"`
}

// Load parses and validates a contract document. Validation order:
// structural shape (CUE), then field name uniqueness, ordinal
// contiguity, key presence, format requirements and global metadata.
// The first violation aborts the load with a *SchemaError; no partial
// schema is ever returned.
func Load(data []byte) (*Schema, error) {
	if err := validateShape(data); err != nil {
		return nil, &SchemaError{Rule: "invalid document shape", Detail: err.Error()}
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &SchemaError{Rule: "unparseable document", Detail: err.Error()}
	}

	s := &Schema{
		id:           doc.Schema,
		fields:       doc.Fields,
		globals:      applyGlobalDefaults(doc.Globals),
		byName:       make(map[string]int, len(doc.Fields)),
		dateLayouts:  make(map[string]dateLayout),
		measurements: make(map[string]*regexp.Regexp),
	}

	sort.SliceStable(s.fields, func(i, j int) bool {
		return s.fields[i].Ordinal < s.fields[j].Ordinal
	})

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFile reads and loads a contract document from disk.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read contract %s: %w", path, err)
	}
	return Load(data)
}

func applyGlobalDefaults(g Globals) Globals {
	def := DefaultGlobals()
	if g.Separator == "" {
		g.Separator = def.Separator
	}
	if g.Decimal == "" {
		g.Decimal = def.Decimal
	}
	if g.Quote == "" {
		g.Quote = def.Quote
	}
	return g
}

func (s *Schema) validate() error {
	fail := func(field, rule, detail string) error {
		return &SchemaError{SchemaID: s.id, Field: field, Rule: rule, Detail: detail}
	}

	// Character means rune: a multi-byte symbol like € is one character.
	if utf8.RuneCountInString(s.globals.Separator) != 1 {
		return fail("", "separator must be a single character", s.globals.Separator)
	}
	if utf8.RuneCountInString(s.globals.Decimal) != 1 {
		return fail("", "decimal symbol must be a single character", s.globals.Decimal)
	}
	if utf8.RuneCountInString(s.globals.Quote) != 1 {
		return fail("", "quote must be a single character", s.globals.Quote)
	}
	if s.globals.Separator == s.globals.Decimal {
		return fail("", "separator and decimal symbol must differ", s.globals.Separator)
	}

	keyCount := 0
	for i := range s.fields {
		f := &s.fields[i]
		if f.Name == "" {
			return fail("", "field name must not be empty", fmt.Sprintf("ordinal %d", f.Ordinal))
		}
		if _, dup := s.byName[f.Name]; dup {
			return fail(f.Name, "duplicate field name", "")
		}
		s.byName[f.Name] = i

		if !f.Type.Valid() {
			return fail(f.Name, "invalid field type", string(f.Type))
		}
		if f.Ordinal != i {
			return fail(f.Name, "ordinal positions must be contiguous from 0",
				fmt.Sprintf("got %d, want %d", f.Ordinal, i))
		}

		switch f.Type {
		case TypeDate:
			if f.Format == "" {
				f.Format = DefaultDateFormat
			}
			dl, err := compileDateLayout(f.Format)
			if err != nil {
				return fail(f.Name, "invalid date format", err.Error())
			}
			s.dateLayouts[f.Name] = dl
		case TypeMeasurement:
			if f.Format == "" {
				return fail(f.Name, "measurement field must declare a format", "")
			}
			re, err := regexp.Compile("^(?:" + f.Format + ")$")
			if err != nil {
				return fail(f.Name, "invalid measurement pattern", err.Error())
			}
			s.measurements[f.Name] = re
		}

		if f.Key {
			keyCount++
			// Free text cannot guarantee absence of the identity
			// separator, so clob fields never carry key role.
			if f.Type == TypeClob {
				return fail(f.Name, "clob field cannot be key-role", "")
			}
			if f.Nullable {
				return fail(f.Name, "key-role field cannot be nullable", "")
			}
		}
	}

	if keyCount == 0 {
		return fail("", "at least one field must be key-role", "")
	}
	return nil
}
