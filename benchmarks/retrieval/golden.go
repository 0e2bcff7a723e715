// ABOUTME: Golden query set for retrieval benchmarks
// ABOUTME: Defines query/expectation pairs with JSON loading for custom sets

package retrieval

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lectern/lectern/internal/models"
)

// GoldenQuery pairs a benchmark query with the course content expected to
// surface for it. A nil WantLesson accepts any lesson in the course.
type GoldenQuery struct {
	Query      string `json:"query"`
	WantCourse string `json:"want_course"`
	WantLesson *int   `json:"want_lesson,omitempty"`
}

// Matches reports whether a retrieved chunk satisfies the expectation
func (q GoldenQuery) Matches(chunk models.Chunk) bool {
	if chunk.CourseID != q.WantCourse {
		return false
	}
	if q.WantLesson != nil && chunk.LessonNumber != *q.WantLesson {
		return false
	}
	return true
}

// LoadGoldenSet reads a golden query set from a JSON file
func LoadGoldenSet(path string) ([]GoldenQuery, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading golden set: %w", err)
	}

	var queries []GoldenQuery
	if err := json.Unmarshal(data, &queries); err != nil {
		return nil, fmt.Errorf("parsing golden set: %w", err)
	}
	if len(queries) == 0 {
		return nil, fmt.Errorf("golden set %s is empty", path)
	}
	for i, q := range queries {
		if q.Query == "" {
			return nil, fmt.Errorf("golden set entry %d has no query", i)
		}
		if q.WantCourse == "" {
			return nil, fmt.Errorf("golden set entry %d (%q) has no expected course", i, q.Query)
		}
	}
	return queries, nil
}
