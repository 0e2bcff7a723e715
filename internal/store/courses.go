// ABOUTME: Course and lesson storage operations for SQLite
// ABOUTME: Implements upserts, hydrated reads, and catalog queries
package store

import (
	"database/sql"
	"fmt"

	"github.com/lectern/lectern/internal/models"
)

// CourseStore handles course and lesson persistence
type CourseStore struct {
	db *DB
}

// NewCourseStore creates a new CourseStore
func NewCourseStore(db *DB) *CourseStore {
	return &CourseStore{db: db}
}

// Save saves or updates a course and replaces its lesson list (upsert)
func (s *CourseStore) Save(course *models.Course) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO courses (id, title, instructor, link, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			instructor = excluded.instructor,
			link = excluded.link
	`, course.ID, course.Title, course.Instructor, course.Link, course.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save course: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM lessons WHERE course_id = ?", course.ID); err != nil {
		return fmt.Errorf("failed to clear lessons: %w", err)
	}
	for _, lesson := range course.Lessons {
		_, err := tx.Exec(`
			INSERT INTO lessons (course_id, number, title, link)
			VALUES (?, ?, ?, ?)
		`, course.ID, lesson.Number, lesson.Title, lesson.Link)
		if err != nil {
			return fmt.Errorf("failed to save lesson %d: %w", lesson.Number, err)
		}
	}

	return tx.Commit()
}

// Get retrieves a course by id with its lessons, or nil if not found
func (s *CourseStore) Get(id string) (*models.Course, error) {
	var (
		course     models.Course
		instructor sql.NullString
		link       sql.NullString
	)

	err := s.db.QueryRow(`
		SELECT id, title, instructor, link, created_at
		FROM courses
		WHERE id = ?
	`, id).Scan(&course.ID, &course.Title, &instructor, &link, &course.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if instructor.Valid {
		course.Instructor = instructor.String
	}
	if link.Valid {
		course.Link = link.String
	}

	lessons, err := s.lessonsFor(course.ID)
	if err != nil {
		return nil, err
	}
	course.Lessons = lessons

	return &course, nil
}

// ListAll retrieves all courses with their lessons, in ingestion order
func (s *CourseStore) ListAll() ([]models.Course, error) {
	rows, err := s.db.Query(`
		SELECT id, title, instructor, link, created_at
		FROM courses
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var courses []models.Course
	for rows.Next() {
		var (
			course     models.Course
			instructor sql.NullString
			link       sql.NullString
		)
		if err := rows.Scan(&course.ID, &course.Title, &instructor, &link, &course.CreatedAt); err != nil {
			return nil, err
		}
		if instructor.Valid {
			course.Instructor = instructor.String
		}
		if link.Valid {
			course.Link = link.String
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lessonsByID, err := s.allLessons()
	if err != nil {
		return nil, err
	}
	for i := range courses {
		courses[i].Lessons = lessonsByID[courses[i].ID]
	}

	return courses, nil
}

// Titles returns all course titles in ingestion order
func (s *CourseStore) Titles() ([]string, error) {
	rows, err := s.db.Query(`
		SELECT title FROM courses ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}

	return titles, rows.Err()
}

// Count returns the number of stored courses
func (s *CourseStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM courses").Scan(&count)
	return count, err
}

// Delete removes a course (lessons and chunks will cascade delete)
func (s *CourseStore) Delete(id string) error {
	_, err := s.db.Exec("DELETE FROM courses WHERE id = ?", id)
	return err
}

// lessonsFor retrieves the ordered lessons for one course
func (s *CourseStore) lessonsFor(courseID string) ([]models.Lesson, error) {
	rows, err := s.db.Query(`
		SELECT number, title, link
		FROM lessons
		WHERE course_id = ?
		ORDER BY number ASC
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var lessons []models.Lesson
	for rows.Next() {
		var (
			lesson models.Lesson
			link   sql.NullString
		)
		if err := rows.Scan(&lesson.Number, &lesson.Title, &link); err != nil {
			return nil, err
		}
		if link.Valid {
			lesson.Link = link.String
		}
		lessons = append(lessons, lesson)
	}

	return lessons, rows.Err()
}

// allLessons retrieves every lesson grouped by course id
func (s *CourseStore) allLessons() (map[string][]models.Lesson, error) {
	rows, err := s.db.Query(`
		SELECT course_id, number, title, link
		FROM lessons
		ORDER BY course_id ASC, number ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	byCourse := make(map[string][]models.Lesson)
	for rows.Next() {
		var (
			courseID string
			lesson   models.Lesson
			link     sql.NullString
		)
		if err := rows.Scan(&courseID, &lesson.Number, &lesson.Title, &link); err != nil {
			return nil, err
		}
		if link.Valid {
			lesson.Link = link.String
		}
		byCourse[courseID] = append(byCourse[courseID], lesson)
	}

	return byCourse, rows.Err()
}
