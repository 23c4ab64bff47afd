// SPDX-License-Identifier: Apache-2.0

// Package vocab defines the ontology namespace and IRI construction
// helpers used when a graph is serialized to a concrete RDF syntax.
package vocab

import "strings"

// Namespace is the base IRI prefix for all ontology terms and
// individuals.
const Namespace = "http://bocagrande.local/ont#"

// XSD datatype IRIs for typed literals.
const (
	XSDInteger  = "http://www.w3.org/2001/XMLSchema#integer"
	XSDDecimal  = "http://www.w3.org/2001/XMLSchema#decimal"
	XSDDateTime = "http://www.w3.org/2001/XMLSchema#dateTime"
	XSDString   = "http://www.w3.org/2001/XMLSchema#string"
)

// ClassIRI returns the class IRI for a schema identifier.
func ClassIRI(schemaID string) string {
	return Namespace + CleanFragment(strings.ToUpper(schemaID))
}

// PropertyIRI returns the data property IRI for a field name.
func PropertyIRI(fieldName string) string {
	return Namespace + CleanFragment(strings.ToUpper(fieldName))
}

// IndividualIRI returns the IRI for one individual: the schema class
// name suffixed with its percent-encoded identity.
func IndividualIRI(schemaID, identity string) string {
	return Namespace + CleanFragment(strings.ToUpper(schemaID)) + "_" + CleanFragment(identity)
}

const upperhex = "0123456789ABCDEF"

// CleanFragment percent-encodes everything outside the unreserved IRI
// character set so arbitrary field values are safe as fragments. The
// identity separator control character encodes as %1F.
func CleanFragment(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			c == '_', c == '-', c == '.', c == '~':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0x0f])
		}
	}
	return b.String()
}
