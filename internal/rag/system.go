// ABOUTME: Query orchestration loop: prompt, model call, tool rounds, answer
// ABOUTME: Bounds tool rounds and forces a final no-tools call at the cap
package rag

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lectern/lectern/internal/llm"
	"github.com/lectern/lectern/internal/models"
	"github.com/lectern/lectern/internal/tools"
)

// DefaultMaxRounds is the default cap on tool-using rounds per query
const DefaultMaxRounds = 2

// Generator is the language model surface the loop calls
type Generator interface {
	Generate(ctx context.Context, req llm.GenerateRequest) (*llm.Completion, error)
}

// ToolRegistry dispatches model-requested tool calls
type ToolRegistry interface {
	Definitions() []llm.ToolDefinition
	Dispatch(ctx context.Context, name string, args json.RawMessage) tools.Result
}

// SessionStore tracks per-session conversation history
type SessionStore interface {
	NewSession() string
	History(sessionID string) []models.Turn
	Append(sessionID string, turn models.Turn)
}

// System runs the orchestration loop for inbound queries
type System struct {
	generator Generator
	registry  ToolRegistry
	sessions  SessionStore
	maxRounds int
}

// NewSystem wires the orchestration loop. A negative maxRounds falls back
// to DefaultMaxRounds; zero disables tool use entirely.
func NewSystem(generator Generator, registry ToolRegistry, sessions SessionStore, maxRounds int) *System {
	if maxRounds < 0 {
		maxRounds = DefaultMaxRounds
	}
	return &System{
		generator: generator,
		registry:  registry,
		sessions:  sessions,
		maxRounds: maxRounds,
	}
}

// QueryResult is the outcome of one processed query
type QueryResult struct {
	Answer    string             `json:"answer"`
	Sources   []models.SourceRef `json:"sources"`
	SessionID string             `json:"session_id"`
}

// ProcessQuery answers a query in the context of a session. An empty
// session id allocates a new session. History is updated only on success.
// On failure the returned result still carries the session id (possibly
// newly generated) so callers can retry without losing context.
func (s *System) ProcessQuery(ctx context.Context, query, sessionID string) (*QueryResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("query cannot be empty")
	}
	if sessionID == "" {
		sessionID = s.sessions.NewSession()
	}

	history := s.sessions.History(sessionID)
	answer, sources, err := s.run(ctx, query, history)
	if err != nil {
		return &QueryResult{SessionID: sessionID}, err
	}

	s.sessions.Append(sessionID, models.Turn{
		Query:     query,
		Answer:    answer,
		Timestamp: time.Now(),
	})

	return &QueryResult{
		Answer:    answer,
		Sources:   models.DedupeSources(sources),
		SessionID: sessionID,
	}, nil
}

// run drives the bounded tool-calling loop. Tools stay enabled for the
// first maxRounds model calls; the last call always runs without tools,
// so the loop makes at most maxRounds+1 model calls.
func (s *System) run(ctx context.Context, query string, history []models.Turn) (string, []models.SourceRef, error) {
	baseSystem := buildSystemPrompt(history, s.maxRounds)
	defs := s.registry.Definitions()
	messages := []llm.Message{{Role: llm.RoleUser, Content: query}}
	var sources []models.SourceRef

	for round := 0; ; round++ {
		req := llm.GenerateRequest{
			System:   roundSystemPrompt(baseSystem, round, s.maxRounds),
			Messages: messages,
		}
		if round < s.maxRounds {
			req.Tools = defs
		}

		completion, err := s.generator.Generate(ctx, req)
		if err != nil {
			return "", nil, fmt.Errorf("model call failed: %w", err)
		}

		if len(completion.ToolCalls) == 0 || round >= s.maxRounds {
			return completion.Content, sources, nil
		}

		messages = append(messages, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   completion.Content,
			ToolCalls: completion.ToolCalls,
		})

		// Sequential, in requested order: later calls may depend on
		// earlier observations, and source order stays deterministic.
		for _, call := range completion.ToolCalls {
			result := s.registry.Dispatch(ctx, call.Name, call.Arguments)
			sources = append(sources, result.Sources...)
			messages = append(messages, llm.Message{
				Role:       llm.RoleTool,
				ToolCallID: call.ID,
				Content:    result.Text,
			})
		}
	}
}
