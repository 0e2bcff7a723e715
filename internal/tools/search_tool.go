// ABOUTME: Course content search tool with fuzzy course and lesson filtering
// ABOUTME: Formats hits as labeled blocks and reports source references
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/lectern/lectern/internal/llm"
	"github.com/lectern/lectern/internal/models"
	"github.com/lectern/lectern/internal/search"
)

// Catalog resolves fuzzy course names and looks up courses by id
type Catalog interface {
	Resolve(ctx context.Context, name string) (*models.Course, bool)
	Course(id string) (*models.Course, bool)
}

// Searcher runs similarity search over indexed chunks
type Searcher interface {
	Search(ctx context.Context, query string, filter models.SearchFilter, limit int) ([]search.Result, error)
}

// SearchTool exposes semantic course content search to the model
type SearchTool struct {
	catalog    Catalog
	searcher   Searcher
	maxResults int
}

// NewSearchTool creates the search_course_content tool
func NewSearchTool(catalog Catalog, searcher Searcher, maxResults int) *SearchTool {
	return &SearchTool{catalog: catalog, searcher: searcher, maxResults: maxResults}
}

// Definition describes the tool for the model
func (t *SearchTool) Definition() llm.ToolDefinition {
	return llm.ToolDefinition{
		Name:        "search_course_content",
		Description: "Search course materials with smart course name matching and lesson filtering",
		Parameters: jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"query": {
					Type:        jsonschema.String,
					Description: "What to search for in the course content",
				},
				"course_name": {
					Type:        jsonschema.String,
					Description: "Course title (partial matches work, e.g. 'MCP', 'Introduction')",
				},
				"lesson_number": {
					Type:        jsonschema.Integer,
					Description: "Specific lesson number to search within (e.g. 1, 2, 3)",
				},
			},
			Required: []string{"query"},
		},
	}
}

type searchArgs struct {
	Query        string `json:"query"`
	CourseName   string `json:"course_name"`
	LessonNumber *int   `json:"lesson_number"`
}

// Execute runs the search and formats hits as labeled text blocks.
// Lookup failures come back as observation text so the model can adjust.
func (t *SearchTool) Execute(ctx context.Context, raw json.RawMessage) (Result, error) {
	var args searchArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return Result{}, fmt.Errorf("invalid arguments: %w", err)
	}
	if strings.TrimSpace(args.Query) == "" {
		return Result{}, errors.New("query is required")
	}

	var filter models.SearchFilter
	if args.CourseName != "" {
		course, ok := t.catalog.Resolve(ctx, args.CourseName)
		if !ok {
			return Result{Text: fmt.Sprintf("No course found matching '%s'", args.CourseName)}, nil
		}
		filter.CourseID = course.ID
	}
	filter.LessonNumber = args.LessonNumber

	results, err := t.searcher.Search(ctx, args.Query, filter, t.maxResults)
	if err != nil {
		return Result{Text: fmt.Sprintf("Search error: %v", err)}, nil
	}
	if len(results) == 0 {
		return Result{Text: noResultsMessage(args)}, nil
	}

	return t.formatResults(results), nil
}

// noResultsMessage describes the empty result in terms of the filters the
// caller asked for
func noResultsMessage(args searchArgs) string {
	var b strings.Builder
	b.WriteString("No relevant content found")
	if args.CourseName != "" {
		fmt.Fprintf(&b, " in course '%s'", args.CourseName)
	}
	if args.LessonNumber != nil {
		fmt.Fprintf(&b, " in lesson %d", *args.LessonNumber)
	}
	b.WriteString(".")
	return b.String()
}

// formatResults renders each hit as a labeled block and collects one
// source reference per hit, in hit order
func (t *SearchTool) formatResults(results []search.Result) Result {
	blocks := make([]string, 0, len(results))
	sources := make([]models.SourceRef, 0, len(results))

	for _, r := range results {
		title := r.Chunk.CourseID
		header := fmt.Sprintf("[%s - Lesson %d]", title, r.Chunk.LessonNumber)
		blocks = append(blocks, header+"\n"+r.Chunk.Content)

		lessonNumber := r.Chunk.LessonNumber
		ref := models.SourceRef{CourseTitle: title, LessonNumber: &lessonNumber}
		if course, ok := t.catalog.Course(r.Chunk.CourseID); ok {
			if lesson, ok := course.Lesson(lessonNumber); ok {
				ref.Link = lesson.Link
			}
		}
		sources = append(sources, ref)
	}

	return Result{
		Text:    strings.Join(blocks, "\n\n"),
		Sources: sources,
	}
}
