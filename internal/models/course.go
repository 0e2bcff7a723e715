// ABOUTME: Course and Lesson domain types for ingested course materials
// ABOUTME: Course ids are canonical titles; lessons are ordered within a course
package models

import (
	"errors"
	"strings"
	"time"
)

// Lesson is a single lesson within a course
type Lesson struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Link   string `json:"link,omitempty"`
}

// Course is an ingested course with its ordered lessons.
// The id is the canonical course title: titles are unique across the
// catalog and double as the natural key for resolution and re-ingestion.
type Course struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Instructor string    `json:"instructor,omitempty"`
	Link       string    `json:"link,omitempty"`
	Lessons    []Lesson  `json:"lessons"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewCourse creates a Course with validation
func NewCourse(title, instructor, link string) (*Course, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("course title cannot be empty")
	}
	return &Course{
		ID:         title,
		Title:      title,
		Instructor: instructor,
		Link:       link,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// Lesson returns the lesson with the given number, if present
func (c *Course) Lesson(number int) (Lesson, bool) {
	for _, l := range c.Lessons {
		if l.Number == number {
			return l, true
		}
	}
	return Lesson{}, false
}
