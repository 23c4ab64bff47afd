// SPDX-License-Identifier: Apache-2.0

package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bocagrande/semmap/internal/contract"
	"github.com/bocagrande/semmap/internal/graph"
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

func setup(t *testing.T) (*contract.Schema, *mapping.Mapper) {
	t.Helper()
	schema, err := contract.Load([]byte(personContract))
	require.NoError(t, err)
	return schema, mapping.NewMapper(schema)
}

func mapRow(t *testing.T, m *mapping.Mapper, cells []string, row int) *mapping.Individual {
	t.Helper()
	ind, err := m.MapRecord(cells, row)
	require.NoError(t, err)
	return ind
}

func TestIngest_Insert(t *testing.T) {
	schema, m := setup(t)
	a := graph.NewAssembler(schema)

	outcome := a.Ingest(mapRow(t, m, []string{"1", "Ana", "1990-01-01"}, 0))
	assert.Equal(t, graph.MergeInserted, outcome)
	assert.Equal(t, 1, a.Graph().Len())
}

func TestIngest_IdempotentNoConflict(t *testing.T) {
	schema, m := setup(t)
	a := graph.NewAssembler(schema)

	a.Ingest(mapRow(t, m, []string{"1", "Ana", "1990-01-01"}, 0))
	outcome := a.Ingest(mapRow(t, m, []string{"1", "Ana", "1990-01-01"}, 1))

	assert.Equal(t, graph.MergeIdentical, outcome)
	g := a.Graph()
	assert.Equal(t, 1, g.Len())
	assert.Empty(t, g.Conflicts(), "identical re-ingest must not log conflicts")
}

func TestIngest_FirstWriteWinsConflictLogged(t *testing.T) {
	schema, m := setup(t)
	a := graph.NewAssembler(schema)

	a.Ingest(mapRow(t, m, []string{"1", "Ana", "1990-01-01"}, 0))
	outcome := a.Ingest(mapRow(t, m, []string{"1", "Ana", "1990-01-02"}, 1))

	assert.Equal(t, graph.MergeConflicted, outcome)

	g := a.Graph()
	require.Equal(t, 1, g.Len())

	conflicts := g.Conflicts()
	require.Len(t, conflicts, 1)
	assert.Equal(t, "1", conflicts[0].Identity)
	assert.Equal(t, "dob", conflicts[0].Field)
	assert.Equal(t, "1990-01-01", conflicts[0].Kept)
	assert.Equal(t, "1990-01-02", conflicts[0].Dropped)
	assert.Equal(t, 1, conflicts[0].Row)

	ind, ok := g.Individual("1")
	require.True(t, ok)
	dob, ok := ind.Value("dob")
	require.True(t, ok)
	assert.Equal(t, "1990-01-01", dob.Lexical(), "first-written value retained")
}

func TestIngest_UnionFillsMissingProperties(t *testing.T) {
	doc := `
schema: T_U
fields:
  - name: id
    type: string
    key: true
    ordinal: 0
  - name: a
    type: string
    nullable: true
    ordinal: 1
  - name: b
    type: string
    nullable: true
    ordinal: 2
`
	schema, err := contract.Load([]byte(doc))
	require.NoError(t, err)
	m := mapping.NewMapper(schema)
	a := graph.NewAssembler(schema)

	a.Ingest(mapRow(t, m, []string{"1", "x", ""}, 0))
	outcome := a.Ingest(mapRow(t, m, []string{"1", "", "y"}, 1))
	assert.Equal(t, graph.MergeUnioned, outcome)

	g := a.Graph()
	ind, _ := g.Individual("1")
	va, _ := ind.Value("a")
	vb, _ := ind.Value("b")
	assert.Equal(t, "x", va.Lexical())
	assert.Equal(t, "y", vb.Lexical())

	// Unioned properties still list in declared field order.
	entry := g.Entries()[0]
	require.Len(t, entry.Properties, 3)
	assert.Equal(t, []string{"id", "a", "b"},
		[]string{entry.Properties[0].Field, entry.Properties[1].Field, entry.Properties[2].Field})
}

func TestEntries_PreserveInsertionAndFieldOrder(t *testing.T) {
	schema, m := setup(t)
	a := graph.NewAssembler(schema)

	a.Ingest(mapRow(t, m, []string{"2", "Bea", "1991-01-01"}, 0))
	a.Ingest(mapRow(t, m, []string{"1", "Ana", "1990-01-01"}, 1))

	entries := a.Graph().Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "2", entries[0].Identity, "first-seen order")
	assert.Equal(t, "1", entries[1].Identity)

	for _, e := range entries {
		fields := make([]string, 0, len(e.Properties))
		for _, p := range e.Properties {
			fields = append(fields, p.Field)
		}
		assert.Equal(t, []string{"id", "name", "dob"}, fields)
	}
}

func TestAssemble_ScenarioFromContract(t *testing.T) {
	// Two records, same identity, differing dob: one individual, one
	// conflict, first dob kept.
	schema, m := setup(t)

	g := graph.Assemble(schema, []*mapping.Individual{
		mapRow(t, m, []string{"1", "Ana", "1990-01-01"}, 0),
		mapRow(t, m, []string{"1", "Ana", "1990-01-02"}, 1),
	})

	assert.Equal(t, 1, g.Len())
	require.Len(t, g.Conflicts(), 1)
	ind, _ := g.Individual("1")
	dob, _ := ind.Value("dob")
	assert.Equal(t, "1990-01-01", dob.Lexical())
}
