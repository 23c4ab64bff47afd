// SPDX-License-Identifier: Apache-2.0

// Package tool exposes the mapping engine as MCP tools.
package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bocagrande/semmap/internal/contract"
)

// MetadataInspectSchema describes the inspect_schema tool.
var MetadataInspectSchema = &mcp.Tool{
	Name: "inspect_schema",
	Description: "Load and validate a YAML data contract without mapping any records. " +
		"Returns the schema identifier, global parsing metadata and the declared field list " +
		"in ordinal order, or the schema error that made the contract unusable.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"contract"},
		"properties": map[string]interface{}{
			"contract": map[string]interface{}{
				"type":        "string",
				"description": "YAML data contract to validate.",
			},
		},
	},
}

// InputInspectSchema is the input for the InspectSchema tool.
type InputInspectSchema struct {
	Contract string `json:"contract"`
}

// OutputField is one declared field in the contract.
type OutputField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Format   string `json:"format,omitempty"`
	Nullable bool   `json:"nullable"`
	Key      bool   `json:"key"`
	Ordinal  int    `json:"ordinal"`
}

// OutputInspectSchema is the output for the InspectSchema tool.
type OutputInspectSchema struct {
	SchemaID  string           `json:"schema_id"`
	Globals   contract.Globals `json:"globals"`
	Fields    []OutputField    `json:"fields"`
	KeyFields []string         `json:"key_fields"`
}

// InspectSchema validates a contract document and reports its shape.
func InspectSchema(_ context.Context, _ *mcp.CallToolRequest, input InputInspectSchema) (*mcp.CallToolResult, OutputInspectSchema, error) {
	if input.Contract == "" {
		return nil, OutputInspectSchema{}, fmt.Errorf("contract is required")
	}

	schema, err := contract.Load([]byte(input.Contract))
	if err != nil {
		return nil, OutputInspectSchema{}, err
	}

	out := OutputInspectSchema{SchemaID: schema.ID(), Globals: schema.Globals()}
	for _, f := range schema.Fields() {
		out.Fields = append(out.Fields, OutputField{
			Name:     f.Name,
			Type:     string(f.Type),
			Format:   f.Format,
			Nullable: f.Nullable,
			Key:      f.Key,
			Ordinal:  f.Ordinal,
		})
	}
	for _, f := range schema.KeyFields() {
		out.KeyFields = append(out.KeyFields, f.Name)
	}
	return nil, out, nil
}
