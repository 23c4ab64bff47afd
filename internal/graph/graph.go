// SPDX-License-Identifier: Apache-2.0

// Package graph accumulates mapped individuals into a single output
// graph, enforcing identity uniqueness and the first-write-wins merge
// policy. The finished Graph is the unit handed to external validation.
package graph

import (
	"github.com/bocagrande/semmap/internal/contract"
	"github.com/bocagrande/semmap/internal/mapping"
)

// MergeConflict records a disagreement between two records that mapped
// to the same identity. The first-written value is kept; the conflict
// never blocks assembly.
type MergeConflict struct {
	Identity string `json:"identity"`
	Field    string `json:"field"`
	Kept     string `json:"kept"`
	Dropped  string `json:"dropped"`
	Row      int    `json:"row"`
}

// Property is one (field, value) pair in an Entry.
type Property struct {
	Field string
	Value mapping.TypedValue
}

// Entry is the stable external shape of one individual: identity plus
// properties in schema ordinal order.
type Entry struct {
	Identity   string
	Properties []Property
}

// Graph holds at most one individual per identity, in first-seen
// insertion order, plus the conflicts logged while assembling.
type Graph struct {
	schema      *contract.Schema
	order       []string
	individuals map[string]*mapping.Individual
	conflicts   []MergeConflict
}

func newGraph(schema *contract.Schema) *Graph {
	return &Graph{
		schema:      schema,
		individuals: make(map[string]*mapping.Individual),
	}
}

// Schema returns the contract the graph was assembled under.
func (g *Graph) Schema() *contract.Schema { return g.schema }

// Len returns the number of distinct identities.
func (g *Graph) Len() int { return len(g.order) }

// Identities returns the identities in first-seen order.
func (g *Graph) Identities() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Individual returns the individual for an identity, if present.
func (g *Graph) Individual(identity string) (*mapping.Individual, bool) {
	ind, ok := g.individuals[identity]
	return ind, ok
}

// Conflicts returns the merge conflicts logged during assembly.
func (g *Graph) Conflicts() []MergeConflict {
	out := make([]MergeConflict, len(g.conflicts))
	copy(out, g.conflicts)
	return out
}

// Entries lists the graph in its documented external shape: identity to
// ordered property list, field order exactly as the schema declares it.
func (g *Graph) Entries() []Entry {
	entries := make([]Entry, 0, len(g.order))
	for _, identity := range g.order {
		ind := g.individuals[identity]
		props := ind.Properties()
		entry := Entry{Identity: identity, Properties: make([]Property, 0, len(props))}
		for _, v := range props {
			entry.Properties = append(entry.Properties, Property{Field: v.Field.Name, Value: v})
		}
		entries = append(entries, entry)
	}
	return entries
}
