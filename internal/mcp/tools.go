// ABOUTME: MCP tool registration for the lectern server
// ABOUTME: Mirrors the chat tool registry so agents see the same actions
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/lectern/lectern/internal/llm"
	"github.com/lectern/lectern/internal/tools"
)

// RegisterTools exposes every registry tool over MCP. Input schemas are
// derived from the same JSON Schema definitions used for chat tool-calling.
func RegisterTools(server *mcpserver.MCPServer, registry *tools.Registry) *Handlers {
	handlers := &Handlers{registry: registry}

	for _, def := range registry.Definitions() {
		server.AddTool(mcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: toInputSchema(def),
		}, handlers.dispatch(def))
	}

	return handlers
}

// toInputSchema converts a chat tool schema to the MCP wire shape
func toInputSchema(def llm.ToolDefinition) mcp.ToolInputSchema {
	properties := make(map[string]interface{}, len(def.Parameters.Properties))
	for name, prop := range def.Parameters.Properties {
		p := map[string]interface{}{
			"type": string(prop.Type),
		}
		if prop.Description != "" {
			p["description"] = prop.Description
		}
		properties[name] = p
	}

	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: properties,
		Required:   def.Parameters.Required,
	}
}
