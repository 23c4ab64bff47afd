// SPDX-License-Identifier: Apache-2.0

package mapping_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bocagrande/semmap/internal/mapping"
)

const personContract = `
schema: T_PERSONAS
fields:
  - name: id
    type: string
    key: true
    ordinal: 0
  - name: name
    type: string
    ordinal: 1
  - name: dob
    type: date
    format: YYYY-MM-DD
    ordinal: 2
`

const compositeKeyContract = `
schema: T_VISITAS
fields:
  - name: PACIENTE
    type: string
    key: true
    ordinal: 0
  - name: FECHA
    type: date
    format: YYYY-MM-DD
    key: true
    ordinal: 1
  - name: MOTIVO
    type: string
    nullable: true
    ordinal: 2
`

func TestMapRecord_IdentityIsDeterministic(t *testing.T) {
	m := mapping.NewMapper(loadSchema(t, personContract))

	a, err := m.MapRecord([]string{"1", "Ana", "1990-01-01"}, 0)
	require.NoError(t, err)
	b, err := m.MapRecord([]string{"1", "Ana", "1990-01-01"}, 1)
	require.NoError(t, err)

	assert.Equal(t, "1", a.Identity)
	assert.Equal(t, a.Identity, b.Identity, "same key input must yield same identity")
}

func TestMapRecord_CompositeIdentity(t *testing.T) {
	m := mapping.NewMapper(loadSchema(t, compositeKeyContract))

	ind, err := m.MapRecord([]string{"P01", "2024-05-01", ""}, 0)
	require.NoError(t, err)
	assert.Equal(t, "P01"+mapping.IdentitySeparator+"2024-05-01", ind.Identity)

	// Nullable non-key field with no value carries no property.
	_, ok := ind.Value("MOTIVO")
	assert.False(t, ok)
	assert.Len(t, ind.Properties(), 2)
}

func TestMapRecord_CaseSensitiveIdentity(t *testing.T) {
	m := mapping.NewMapper(loadSchema(t, personContract))

	upper, err := m.MapRecord([]string{"ABC", "x", "1990-01-01"}, 0)
	require.NoError(t, err)
	lower, err := m.MapRecord([]string{"abc", "x", "1990-01-01"}, 1)
	require.NoError(t, err)

	assert.NotEqual(t, upper.Identity, lower.Identity)
}

func TestMapRecord_ShapeMismatch(t *testing.T) {
	m := mapping.NewMapper(loadSchema(t, personContract))

	_, err := m.MapRecord([]string{"1", "Ana"}, 4)
	var se *mapping.RecordShapeError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 4, se.Row)
	assert.Equal(t, 2, se.Got)
	assert.Equal(t, 3, se.Want)
}

func TestMapRecord_FailFastReturnsFirstError(t *testing.T) {
	m := mapping.NewMapper(loadSchema(t, personContract))

	// Both name and dob are bad; the first failing field in ordinal
	// order is reported.
	_, err := m.MapRecord([]string{"1", "", "not-a-date"}, 2)
	var fe *mapping.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "name", fe.Field)
}

func TestMapRecord_PropertiesInOrdinalOrder(t *testing.T) {
	m := mapping.NewMapper(loadSchema(t, personContract))

	ind, err := m.MapRecord([]string{"1", "Ana", "1990-01-01"}, 0)
	require.NoError(t, err)

	props := ind.Properties()
	require.Len(t, props, 3)
	assert.Equal(t, "id", props[0].Field.Name)
	assert.Equal(t, "name", props[1].Field.Name)
	assert.Equal(t, "dob", props[2].Field.Name)
}

func TestIndividual_AddNeverReplaces(t *testing.T) {
	m := mapping.NewMapper(loadSchema(t, personContract))

	ind, err := m.MapRecord([]string{"1", "Ana", "1990-01-01"}, 0)
	require.NoError(t, err)

	v, ok := ind.Value("name")
	require.True(t, ok)
	clone := v
	clone.Raw = "Eva"
	assert.False(t, ind.Add(clone))

	kept, _ := ind.Value("name")
	assert.Equal(t, "Ana", kept.Raw)
}
