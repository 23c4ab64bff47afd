// SPDX-License-Identifier: Apache-2.0

package graph

import (
	"sync"

	"github.com/bocagrande/semmap/internal/contract"
	"github.com/bocagrande/semmap/internal/mapping"
)

// MergeOutcome classifies what Ingest did with an individual.
type MergeOutcome int

const (
	// MergeInserted: first individual seen for its identity.
	MergeInserted MergeOutcome = iota
	// MergeIdentical: identity existed and every shared property agreed,
	// nothing new was added.
	MergeIdentical
	// MergeUnioned: identity existed; new properties were unioned in
	// without any disagreement.
	MergeUnioned
	// MergeConflicted: identity existed and at least one shared property
	// disagreed. The first-written value is kept, the conflict logged.
	MergeConflicted
)

func (o MergeOutcome) String() string {
	switch o {
	case MergeInserted:
		return "inserted"
	case MergeIdentical:
		return "identical"
	case MergeUnioned:
		return "unioned"
	case MergeConflicted:
		return "conflicted"
	}
	return "unknown"
}

// Assembler aggregates individuals into one Graph. Writes to the
// identity map are serialized through a single mutex so conflict
// detection always sees a consistent view.
type Assembler struct {
	mu sync.Mutex
	g  *Graph
}

// NewAssembler creates an Assembler for one pipeline run.
func NewAssembler(schema *contract.Schema) *Assembler {
	return &Assembler{g: newGraph(schema)}
}

// Ingest adds one individual, applying the merge policy when its
// identity already exists: property-by-property union, first write wins
// on disagreement, every dropped write logged as a MergeConflict.
func (a *Assembler) Ingest(ind *mapping.Individual) MergeOutcome {
	a.mu.Lock()
	defer a.mu.Unlock()

	existing, ok := a.g.individuals[ind.Identity]
	if !ok {
		a.g.individuals[ind.Identity] = ind
		a.g.order = append(a.g.order, ind.Identity)
		return MergeInserted
	}

	outcome := MergeIdentical
	for _, v := range ind.Properties() {
		kept, present := existing.Value(v.Field.Name)
		if !present {
			existing.Add(v)
			if outcome == MergeIdentical {
				outcome = MergeUnioned
			}
			continue
		}
		if !kept.Equal(v) {
			a.g.conflicts = append(a.g.conflicts, MergeConflict{
				Identity: ind.Identity,
				Field:    v.Field.Name,
				Kept:     kept.Lexical(),
				Dropped:  v.Lexical(),
				Row:      ind.Row,
			})
			outcome = MergeConflicted
		}
	}
	return outcome
}

// Graph returns the assembled graph. Call after all Ingest calls have
// completed.
func (a *Assembler) Graph() *Graph {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.g
}

// Assemble ingests a sequence of individuals and returns the graph.
func Assemble(schema *contract.Schema, individuals []*mapping.Individual) *Graph {
	a := NewAssembler(schema)
	for _, ind := range individuals {
		a.Ingest(ind)
	}
	return a.Graph()
}
