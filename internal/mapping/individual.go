// SPDX-License-Identifier: Apache-2.0

package mapping

import "sort"

// Individual is one semantic entity derived from a single record: a
// stable identity plus the typed property values that carried data.
// Properties stay in schema ordinal order. The assembler may union
// missing properties in via Add; existing values are never replaced.
type Individual struct {
	Identity string
	Row      int

	values  []TypedValue
	byField map[string]int
}

func newIndividual(identity string, row int, capacity int) *Individual {
	return &Individual{
		Identity: identity,
		Row:      row,
		values:   make([]TypedValue, 0, capacity),
		byField:  make(map[string]int, capacity),
	}
}

// Value returns the property value for a field name, if present.
func (ind *Individual) Value(field string) (TypedValue, bool) {
	i, ok := ind.byField[field]
	if !ok {
		return TypedValue{}, false
	}
	return ind.values[i], true
}

// Properties returns the property values in schema ordinal order.
func (ind *Individual) Properties() []TypedValue {
	out := make([]TypedValue, len(ind.values))
	copy(out, ind.values)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Field.Ordinal < out[j].Field.Ordinal
	})
	return out
}

// Add appends a property if the field is not already set. It reports
// whether the value was added; an existing value is never replaced.
func (ind *Individual) Add(v TypedValue) bool {
	if _, exists := ind.byField[v.Field.Name]; exists {
		return false
	}
	ind.byField[v.Field.Name] = len(ind.values)
	ind.values = append(ind.values, v)
	return true
}
