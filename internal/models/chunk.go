// ABOUTME: Chunk represents an embedded span of course text for retrieval
// ABOUTME: SearchFilter constrains retrieval to exact course/lesson matches
package models

// Chunk is a bounded span of course text stored with its embedding and
// its originating course/lesson. Sequence indexes are assigned per course
// in document order.
type Chunk struct {
	CourseID     string    `json:"course_id"`
	Seq          int       `json:"seq"`
	LessonNumber int       `json:"lesson_number"`
	Content      string    `json:"content"`
	Vector       []float32 `json:"-"`
}

// SearchFilter restricts a content search to exact matches. The zero value
// matches every chunk.
type SearchFilter struct {
	CourseID     string
	LessonNumber *int
}

// Matches reports whether the chunk satisfies every constraint set on the filter
func (f SearchFilter) Matches(c Chunk) bool {
	if f.CourseID != "" && c.CourseID != f.CourseID {
		return false
	}
	if f.LessonNumber != nil && c.LessonNumber != *f.LessonNumber {
		return false
	}
	return true
}
