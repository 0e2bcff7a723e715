// ABOUTME: MCP tool handlers bridging requests into the tool registry
// ABOUTME: Argument failures come back as MCP tool errors, never process faults
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/lectern/lectern/internal/llm"
	"github.com/lectern/lectern/internal/tools"
)

// Handlers dispatches MCP tool calls through the shared registry
type Handlers struct {
	registry *tools.Registry
}

// dispatch adapts one registry tool to an MCP handler
func (h *Handlers) dispatch(def llm.ToolDefinition) mcpserver.ToolHandlerFunc {
	name := def.Name
	required := def.Parameters.Required

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := request.Params.Arguments.(map[string]any)
		if !ok {
			args = map[string]any{}
		}

		for _, field := range required {
			if _, present := args[field]; !present {
				return mcp.NewToolResultError(fmt.Sprintf("%s argument is required", field)), nil
			}
		}

		raw, err := json.Marshal(args)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode arguments: %v", err)), nil
		}

		result := h.registry.Dispatch(ctx, name, raw)
		return mcp.NewToolResultText(result.Text), nil
	}
}
