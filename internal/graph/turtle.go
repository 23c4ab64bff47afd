// SPDX-License-Identifier: Apache-2.0

package graph

import (
	"fmt"
	"io"
	"strings"

	"github.com/bocagrande/semmap/internal/mapping"
	"github.com/bocagrande/semmap/internal/vocab"
)

// WriteTurtle serializes the graph as Turtle. Each individual becomes
// one subject typed by the schema class; properties become typed data
// literals. Dates are emitted as xsd:dateTime with a T00:00:00 time
// part when the field pattern carried no time component.
func WriteTurtle(w io.Writer, g *Graph) error {
	var b strings.Builder
	b.WriteString("@prefix bg: <" + vocab.Namespace + "> .\n")
	b.WriteString("@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .\n")
	b.WriteString("@prefix rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .\n\n")

	schemaID := g.Schema().ID()
	class := prefixed(vocab.ClassIRI(schemaID))

	for _, entry := range g.Entries() {
		subject := prefixed(vocab.IndividualIRI(schemaID, entry.Identity))
		b.WriteString(subject + " a " + class)
		for _, p := range entry.Properties {
			b.WriteString(" ;\n    " + prefixed(vocab.PropertyIRI(p.Field)) + " " + literal(p.Value))
		}
		b.WriteString(" .\n\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// prefixed rewrites a full namespace IRI to its bg: or xsd: short form.
func prefixed(iri string) string {
	if rest, ok := strings.CutPrefix(iri, vocab.Namespace); ok {
		return "bg:" + rest
	}
	if rest, ok := strings.CutPrefix(iri, "http://www.w3.org/2001/XMLSchema#"); ok {
		return "xsd:" + rest
	}
	return "<" + iri + ">"
}

func literal(v mapping.TypedValue) string {
	switch v.Kind {
	case mapping.KindInteger:
		return fmt.Sprintf("%q^^xsd:integer", v.Raw)
	case mapping.KindDecimal:
		return fmt.Sprintf("%q^^xsd:decimal", v.Dec.Text('f'))
	case mapping.KindDate:
		return fmt.Sprintf("%q^^xsd:dateTime", v.Date.Format("2006-01-02T15:04:05"))
	default:
		return escapeString(v.Raw)
	}
}

var turtleEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func escapeString(s string) string {
	return `"` + turtleEscaper.Replace(s) + `"`
}
