// ABOUTME: Tool interface and execution result types for model tool calling
// ABOUTME: Results carry observation text plus explicit source references
package tools

import (
	"context"
	"encoding/json"

	"github.com/lectern/lectern/internal/llm"
	"github.com/lectern/lectern/internal/models"
)

// Result is what a tool execution hands back to the model: observation
// text for the transcript, plus any source references the execution
// produced. Sources travel with the result, never through shared state.
type Result struct {
	Text    string
	Sources []models.SourceRef
}

// Tool is a single callable action exposed to the model
type Tool interface {
	// Definition describes the tool and its argument schema
	Definition() llm.ToolDefinition
	// Execute runs the tool with raw JSON arguments. Errors are reserved
	// for malformed arguments; domain failures (no matching course, search
	// backend down) are reported in Result.Text instead.
	Execute(ctx context.Context, args json.RawMessage) (Result, error)
}
