// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bocagrande/semmap/internal/contract"
	"github.com/bocagrande/semmap/internal/graph"
	"github.com/bocagrande/semmap/internal/pipeline"
)

// MetadataMapTable describes the map_table tool.
var MetadataMapTable = &mcp.Tool{
	Name: "map_table",
	Description: "Map delimited table records onto a semantic graph driven by a YAML data contract. " +
		"Each record becomes one individual keyed by the contract's key-role fields; records sharing " +
		"an identity are merged property-by-property with first-write-wins and logged conflicts. " +
		"Returns the graph entries (identity and ordered properties), per-record diagnostics for " +
		"skipped rows, and a run summary.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"contract", "records"},
		"properties": map[string]interface{}{
			"contract": map[string]interface{}{
				"type":        "string",
				"description": "YAML data contract: schema id, globals, ordered field list.",
			},
			"records": map[string]interface{}{
				"type":        "string",
				"description": "Delimited record rows using the contract's separator and quote character.",
			},
			"skip_header": map[string]interface{}{
				"type":        "boolean",
				"description": "Treat the first row as a header and skip it.",
			},
		},
	},
}

// InputMapTable is the input for the MapTable tool.
type InputMapTable struct {
	Contract   string `json:"contract"`
	Records    string `json:"records"`
	SkipHeader bool   `json:"skip_header"`
}

// OutputEntry is one serialized graph entry.
type OutputEntry struct {
	Identity   string           `json:"identity"`
	Properties []OutputProperty `json:"properties"`
}

// OutputProperty is one (field, value) pair in declared field order.
type OutputProperty struct {
	Field string `json:"field"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// OutputMapTable is the output for the MapTable tool.
type OutputMapTable struct {
	Entries     []OutputEntry         `json:"entries"`
	Conflicts   []graph.MergeConflict `json:"conflicts,omitempty"`
	Diagnostics []pipeline.Diagnostic `json:"diagnostics,omitempty"`
	Summary     pipeline.Summary      `json:"summary"`
}

// MapTable loads the contract, splits the record text into rows and
// runs the mapping pipeline over them.
func MapTable(ctx context.Context, _ *mcp.CallToolRequest, input InputMapTable) (*mcp.CallToolResult, OutputMapTable, error) {
	if input.Contract == "" {
		return nil, OutputMapTable{}, fmt.Errorf("contract is required")
	}

	schema, err := contract.Load([]byte(input.Contract))
	if err != nil {
		return nil, OutputMapTable{}, err
	}

	records, err := SplitRecords(schema, input.Records, input.SkipHeader)
	if err != nil {
		return nil, OutputMapTable{}, err
	}

	runner := pipeline.NewRunner(schema)
	result := runner.Run(ctx, records)

	return nil, OutputMapTable{
		Entries:     SerializeEntries(result.Graph),
		Conflicts:   result.Graph.Conflicts(),
		Diagnostics: result.Diagnostics,
		Summary:     result.Summary,
	}, nil
}

// SplitRecords parses delimited text into raw cell rows using the
// contract's separator and quote character. A cell that opens with the
// quote character runs to the matching close quote, so it may contain
// the separator and newlines; a doubled quote inside it is a literal
// quote. A quote appearing mid-cell stays literal, so a sloppy row
// surfaces later as a RecordShapeError rather than aborting the whole
// input. Blank lines are skipped.
func SplitRecords(schema *contract.Schema, text string, skipHeader bool) ([][]string, error) {
	g := schema.Globals()
	sep, _ := utf8.DecodeRuneInString(g.Separator)
	quote, _ := utf8.DecodeRuneInString(g.Quote)

	var (
		rows    [][]string
		row     []string
		cell    strings.Builder
		started bool
		quoted  bool
	)
	endCell := func() {
		row = append(row, cell.String())
		cell.Reset()
		started = false
	}
	endRow := func() {
		if len(row) == 0 && !started {
			return
		}
		endCell()
		rows = append(rows, row)
		row = nil
	}

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size
		switch {
		case quoted:
			if r != quote {
				cell.WriteRune(r)
				break
			}
			if strings.HasPrefix(text[i:], g.Quote) {
				cell.WriteRune(quote)
				i += len(g.Quote)
				break
			}
			quoted = false
		case r == quote && !started:
			quoted = true
			started = true
		case r == sep:
			endCell()
		case r == '\r':
			if strings.HasPrefix(text[i:], "\n") {
				i++
			}
			endRow()
		case r == '\n':
			endRow()
		default:
			cell.WriteRune(r)
			started = true
		}
	}
	if quoted {
		return nil, fmt.Errorf("split records: unterminated quoted cell")
	}
	endRow()

	if skipHeader && len(rows) > 0 {
		rows = rows[1:]
	}
	return rows, nil
}

// SerializeEntries flattens the graph into its documented external
// shape: identity plus (field, type, lexical value) triples in
// declared field order.
func SerializeEntries(g *graph.Graph) []OutputEntry {
	entries := g.Entries()
	out := make([]OutputEntry, 0, len(entries))
	for _, e := range entries {
		oe := OutputEntry{Identity: e.Identity, Properties: make([]OutputProperty, 0, len(e.Properties))}
		for _, p := range e.Properties {
			oe.Properties = append(oe.Properties, OutputProperty{
				Field: p.Field,
				Type:  p.Value.Kind.String(),
				Value: p.Value.Lexical(),
			})
		}
		out = append(out, oe)
	}
	return out
}
