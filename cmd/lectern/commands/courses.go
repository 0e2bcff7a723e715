// ABOUTME: Courses command lists ingested courses
// ABOUTME: Shows lesson and chunk counts straight from the store
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// NewCoursesCmd creates the courses command
func NewCoursesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List ingested courses",
		Long: `List ingested courses with their lesson and chunk counts.

Reads straight from the store; no API key required.

Examples:
  lectern courses
  lectern courses --format json`,
		RunE: runCourses,
	}

	return cmd
}

type courseInfo struct {
	Title      string    `json:"title"`
	Instructor string    `json:"instructor,omitempty"`
	Lessons    int       `json:"lessons"`
	Chunks     int       `json:"chunks"`
	CreatedAt  time.Time `json:"created_at"`
}

func runCourses(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	courses, err := st.Courses()
	if err != nil {
		return fmt.Errorf("loading courses: %w", err)
	}

	if len(courses) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No courses ingested yet. Run 'lectern ingest' first.")
		}
		return nil
	}

	infos := make([]courseInfo, 0, len(courses))
	for _, course := range courses {
		chunks, err := st.ChunksByCourse(course.ID)
		if err != nil {
			return fmt.Errorf("counting chunks for %q: %w", course.ID, err)
		}
		infos = append(infos, courseInfo{
			Title:      course.Title,
			Instructor: course.Instructor,
			Lessons:    len(course.Lessons),
			Chunks:     len(chunks),
			CreatedAt:  course.CreatedAt,
		})
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "TITLE\tINSTRUCTOR\tLESSONS\tCHUNKS\tCREATED\n")
	fmt.Fprintf(w, "-----\t----------\t-------\t------\t-------\n")
	for _, info := range infos {
		instructor := info.Instructor
		if instructor == "" {
			instructor = "(unknown)"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			truncate(info.Title, 40),
			truncate(instructor, 20),
			info.Lessons,
			info.Chunks,
			formatTime(info.CreatedAt))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d course(s)\n", len(infos))
	}
	return nil
}
