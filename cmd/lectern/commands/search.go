// ABOUTME: Search command runs a raw semantic search over course content
// ABOUTME: Bypasses the model entirely; useful for inspecting retrieval quality
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lectern/lectern/internal/models"
)

var (
	searchLimit  int
	searchCourse string
	searchLesson int
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search course content directly",
		Long: `Search course content using vector similarity.

Embeds the query and ranks stored chunks by cosine similarity,
without involving the chat model. Filters accept a partial course
name and an exact lesson number.

Examples:
  lectern search "vector embeddings"
  lectern search --limit 10 "tool calling"
  lectern search --course MCP --lesson 3 "server setup"
  lectern search --format json "chunking strategies"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 5, "Maximum results to return")
	cmd.Flags().StringVar(&searchCourse, "course", "", "Restrict to a course (partial name)")
	cmd.Flags().IntVar(&searchLesson, "lesson", -1, "Restrict to a lesson number")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	client, err := newLLMClient(cfg)
	if err != nil {
		return err
	}

	catalog, index, err := buildSearch(cmd.Context(), st, client)
	if err != nil {
		return err
	}

	var filter models.SearchFilter
	if searchCourse != "" {
		course, found := catalog.Resolve(cmd.Context(), searchCourse)
		if !found {
			return fmt.Errorf("no course found matching %q", searchCourse)
		}
		filter.CourseID = course.ID
	}
	if searchLesson >= 0 {
		lesson := searchLesson
		filter.LessonNumber = &lesson
	}

	results, err := index.Search(cmd.Context(), args[0], filter, searchLimit)
	if err != nil {
		return fmt.Errorf("searching course content: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No content found for query: %s\n", args[0])
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tCOURSE\tLESSON\tCONTENT\n")
	fmt.Fprintf(w, "-----\t------\t------\t-------\n")
	for _, result := range results {
		fmt.Fprintf(w, "%.3f\t%s\t%d\t%s\n",
			result.Score,
			truncate(result.Chunk.CourseID, 30),
			result.Chunk.LessonNumber,
			truncate(result.Chunk.Content, 60))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(results))
	}
	return nil
}
