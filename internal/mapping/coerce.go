// SPDX-License-Identifier: Apache-2.0

package mapping

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"

	"github.com/bocagrande/semmap/internal/contract"
)

// IdentitySeparator joins key field values into an identity. The unit
// separator control character cannot appear in well-formed key values;
// the coercer rejects any key cell that contains it and the loader
// already refuses key-role clob fields.
const IdentitySeparator = "\x1f"

// Coercer turns raw cells into TypedValues per the schema's declared
// types and formats. Safe for concurrent use: all state is read-only
// after construction.
type Coercer struct {
	schema *contract.Schema
	intRe  *regexp.Regexp
	decRe  *regexp.Regexp
}

// NewCoercer precompiles the numeric shapes for the schema's decimal
// symbol. Thousands separators are never recognized.
func NewCoercer(schema *contract.Schema) *Coercer {
	dec := regexp.QuoteMeta(schema.Globals().Decimal)
	return &Coercer{
		schema: schema,
		intRe:  regexp.MustCompile(`^[+-]?[0-9]+$`),
		decRe:  regexp.MustCompile(`^[+-]?[0-9]+(?:` + dec + `[0-9]+)?$`),
	}
}

// Coerce converts one raw cell. An empty cell yields (nil, nil) when
// the field is nullable and a *FieldError otherwise. All other failures
// are *FieldError values naming field, row and raw value.
func (c *Coercer) Coerce(raw string, field contract.Field, row int) (*TypedValue, error) {
	fail := func(reason string) (*TypedValue, error) {
		return nil, &FieldError{Field: field.Name, Row: row, Raw: raw, Reason: reason}
	}

	if raw == "" {
		if field.Nullable {
			return nil, nil
		}
		return fail("missing required value")
	}

	if field.Key && strings.Contains(raw, IdentitySeparator) {
		return fail("key value contains reserved identity separator")
	}

	v := &TypedValue{Field: field, Raw: raw}

	switch field.Type {
	case contract.TypeString:
		v.Kind = KindString

	case contract.TypeInteger:
		if !c.intRe.MatchString(raw) {
			return fail("not a plain integer")
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fail("integer out of range")
		}
		v.Kind = KindInteger
		v.Int = n

	case contract.TypeDecimal:
		if !c.decRe.MatchString(raw) {
			return fail("not a decimal in the schema's notation")
		}
		normalized := strings.Replace(raw, c.schema.Globals().Decimal, ".", 1)
		d, _, err := apd.NewFromString(normalized)
		if err != nil {
			return fail("unparseable decimal")
		}
		v.Kind = KindDecimal
		v.Dec = d

	case contract.TypeDate:
		layout, shape, ok := c.schema.DateLayout(field.Name)
		if !ok {
			return fail("date field has no compiled layout")
		}
		if !shape.MatchString(raw) {
			return fail("date does not match pattern " + field.Format)
		}
		t, err := time.Parse(layout, raw)
		if err != nil {
			return fail("invalid calendar date")
		}
		v.Kind = KindDate
		v.Date = t

	case contract.TypeClob:
		v.Kind = KindClob
		g := c.schema.Globals()
		v.NeedsQuoting = strings.Contains(raw, g.Separator) ||
			strings.Contains(raw, g.Quote) ||
			strings.ContainsAny(raw, "\n\r")

	case contract.TypeMeasurement:
		re := c.schema.MeasurementPattern(field.Name)
		if re == nil {
			return fail("measurement field has no compiled pattern")
		}
		if !re.MatchString(raw) {
			return fail("value does not match measurement pattern " + field.Format)
		}
		v.Kind = KindMeasurement

	default:
		return fail("unhandled field type " + string(field.Type))
	}

	return v, nil
}
