// ABOUTME: Tool registry with typed dispatch by tool name
// ABOUTME: Unknown tools and argument errors become observations, not faults
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lectern/lectern/internal/llm"
)

// Registry holds the registered tools in registration order
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty tool registry
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Registration order determines definition order.
func (r *Registry) Register(tool Tool) error {
	name := tool.Definition().Name
	if name == "" {
		return fmt.Errorf("tool must have a name in its definition")
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %q already registered", name)
	}
	r.tools[name] = tool
	r.order = append(r.order, name)
	return nil
}

// Definitions returns every tool definition in registration order
func (r *Registry) Definitions() []llm.ToolDefinition {
	defs := make([]llm.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Definition())
	}
	return defs
}

// Dispatch executes the named tool. Failures never escape as errors: an
// unknown tool or a bad argument set is reported back to the model as
// observation text so the conversation can recover.
func (r *Registry) Dispatch(ctx context.Context, name string, args json.RawMessage) Result {
	tool, ok := r.tools[name]
	if !ok {
		return Result{Text: fmt.Sprintf("Tool '%s' not found", name)}
	}

	result, err := tool.Execute(ctx, args)
	if err != nil {
		return Result{Text: fmt.Sprintf("Tool '%s' failed: %v", name, err)}
	}
	return result
}
