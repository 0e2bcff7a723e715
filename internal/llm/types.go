// ABOUTME: Provider-neutral message and tool-call types for the generation loop
// ABOUTME: The orchestration engine speaks these; the client maps them to the wire
package llm

import (
	"encoding/json"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// Transcript roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one transcript turn. Assistant turns may carry tool calls;
// tool turns carry the observation for the call identified by ToolCallID.
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
}

// ToolCall is a structured request from the model naming an action and its
// raw JSON arguments.
type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

// ToolDefinition declares an action the model may invoke. Parameters is a
// JSON Schema object consumed by both the chat wire format and the MCP
// server.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  jsonschema.Definition
}

// GenerateRequest is one model call: system prompt, transcript so far, and
// the tools enabled for this round. An empty Tools slice disables tool use,
// forcing a text answer.
type GenerateRequest struct {
	System   string
	Messages []Message
	Tools    []ToolDefinition
}

// Completion is the model's response: either final text or one or more
// tool-call requests (Content may accompany tool calls).
type Completion struct {
	Content   string
	ToolCalls []ToolCall
}
