// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/bocagrande/semmap/internal/tool"
)

const serverVersion = "0.1.0"

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the mapping engine as MCP tools over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := mcp.NewServer(&mcp.Implementation{
				Name:    "semmap",
				Version: serverVersion,
			}, nil)

			mcp.AddTool(server, tool.MetadataInspectSchema, tool.InspectSchema)
			mcp.AddTool(server, tool.MetadataMapTable, tool.MapTable)

			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
