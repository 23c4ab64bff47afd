// SPDX-License-Identifier: Apache-2.0

package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bocagrande/semmap/internal/contract"
	"github.com/bocagrande/semmap/internal/graph"
	"github.com/bocagrande/semmap/internal/mapping"
)

func TestWriteTurtle(t *testing.T) {
	doc := `
schema: T_FACTURAS
fields:
  - name: ID
    type: string
    key: true
    ordinal: 0
  - name: UNIDADES
    type: integer
    ordinal: 1
  - name: IMPORTE
    type: decimal
    ordinal: 2
  - name: FECHA
    type: date
    format: YYYY-MM-DD
    ordinal: 3
  - name: NOTAS
    type: clob
    nullable: true
    ordinal: 4
`
	schema, err := contract.Load([]byte(doc))
	require.NoError(t, err)
	m := mapping.NewMapper(schema)

	ind, err := m.MapRecord([]string{"F-1", "3", "19.99", "2024-02-29", "línea \"a\"\nrota"}, 0)
	require.NoError(t, err)
	g := graph.Assemble(schema, []*mapping.Individual{ind})

	var b strings.Builder
	require.NoError(t, graph.WriteTurtle(&b, g))
	ttl := b.String()

	assert.Contains(t, ttl, "@prefix bg: <http://bocagrande.local/ont#> .")
	assert.Contains(t, ttl, "bg:T_FACTURAS_F-1 a bg:T_FACTURAS")
	assert.Contains(t, ttl, `bg:UNIDADES "3"^^xsd:integer`)
	assert.Contains(t, ttl, `bg:IMPORTE "19.99"^^xsd:decimal`)
	assert.Contains(t, ttl, `bg:FECHA "2024-02-29T00:00:00"^^xsd:dateTime`)
	assert.Contains(t, ttl, `\n`, "newlines in literals are escaped")
	assert.NotContains(t, ttl, "\"a\"\nrota", "raw quotes must not leak into literals")
}
