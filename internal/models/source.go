// ABOUTME: SourceRef is a citation unit pointing at a course/lesson
// ABOUTME: Produced by search tools and deduplicated in answer order
package models

import "fmt"

// SourceRef points at the course/lesson an answer fragment was derived
// from. LessonNumber is a pointer so lesson 0 survives serialization and
// course-level references stay distinguishable.
type SourceRef struct {
	CourseTitle  string `json:"course_title"`
	LessonNumber *int   `json:"lesson_number"`
	Link         string `json:"link,omitempty"`
}

// Key returns a stable identity for deduplication
func (s SourceRef) Key() string {
	if s.LessonNumber == nil {
		return s.CourseTitle
	}
	return fmt.Sprintf("%s#%d", s.CourseTitle, *s.LessonNumber)
}

// Label renders the reference the way citations are displayed
func (s SourceRef) Label() string {
	if s.LessonNumber == nil {
		return s.CourseTitle
	}
	return fmt.Sprintf("%s - Lesson %d", s.CourseTitle, *s.LessonNumber)
}

// DedupeSources removes duplicate references while preserving first-seen
// order. The input is not modified.
func DedupeSources(refs []SourceRef) []SourceRef {
	if len(refs) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(refs))
	out := make([]SourceRef, 0, len(refs))
	for _, r := range refs {
		k := r.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}
