// ABOUTME: Course outline tool returning metadata and the full lesson list
// ABOUTME: Resolves fuzzy course names through the catalog
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/lectern/lectern/internal/llm"
)

// OutlineTool exposes course outlines to the model
type OutlineTool struct {
	catalog Catalog
}

// NewOutlineTool creates the get_course_outline tool
func NewOutlineTool(catalog Catalog) *OutlineTool {
	return &OutlineTool{catalog: catalog}
}

// Definition describes the tool for the model
func (t *OutlineTool) Definition() llm.ToolDefinition {
	return llm.ToolDefinition{
		Name:        "get_course_outline",
		Description: "Get course outline including course title, course link, and complete lesson list",
		Parameters: jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"course_name": {
					Type:        jsonschema.String,
					Description: "Course title to get outline for (partial matches work)",
				},
			},
			Required: []string{"course_name"},
		},
	}
}

type outlineArgs struct {
	CourseName string `json:"course_name"`
}

// Execute resolves the course and renders its outline
func (t *OutlineTool) Execute(ctx context.Context, raw json.RawMessage) (Result, error) {
	var args outlineArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return Result{}, fmt.Errorf("invalid arguments: %w", err)
	}
	if strings.TrimSpace(args.CourseName) == "" {
		return Result{}, errors.New("course_name is required")
	}

	course, ok := t.catalog.Resolve(ctx, args.CourseName)
	if !ok {
		return Result{Text: fmt.Sprintf("No course found matching '%s'", args.CourseName)}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Course:** %s\n", course.Title)
	if course.Link != "" {
		fmt.Fprintf(&b, "**Course Link:** %s\n", course.Link)
	}
	if course.Instructor != "" {
		fmt.Fprintf(&b, "**Instructor:** %s\n", course.Instructor)
	}
	fmt.Fprintf(&b, "**Lessons (%d total):**\n", len(course.Lessons))
	for _, lesson := range course.Lessons {
		if lesson.Link != "" {
			fmt.Fprintf(&b, "- Lesson %d: %s (%s)\n", lesson.Number, lesson.Title, lesson.Link)
		} else {
			fmt.Fprintf(&b, "- Lesson %d: %s\n", lesson.Number, lesson.Title)
		}
	}

	return Result{Text: strings.TrimRight(b.String(), "\n")}, nil
}
