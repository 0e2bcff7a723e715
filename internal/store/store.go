// ABOUTME: Unified Store that wraps the course and chunk SQLite stores
// ABOUTME: Single entry point for ingestion writes and catalog/index reads
package store

import (
	"fmt"

	"github.com/lectern/lectern/internal/models"
)

// Store manages all persistent data for the course catalog
type Store struct {
	db      *DB
	courses *CourseStore
	chunks  *ChunkStore
}

// NewStore opens a store backed by the SQLite database at path
func NewStore(path string) (*Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return newStore(db), nil
}

// NewStoreInMemory creates an in-memory store (for testing)
func NewStoreInMemory() (*Store, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	return newStore(db), nil
}

func newStore(db *DB) *Store {
	return &Store{
		db:      db,
		courses: NewCourseStore(db),
		chunks:  NewChunkStore(db),
	}
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.db.Path()
}

// SaveCourse saves or updates a course and its lessons
func (s *Store) SaveCourse(course *models.Course) error {
	return s.courses.Save(course)
}

// Course retrieves a course by id, or nil if not found
func (s *Store) Course(id string) (*models.Course, error) {
	return s.courses.Get(id)
}

// Courses retrieves all courses with lessons, in ingestion order
func (s *Store) Courses() ([]models.Course, error) {
	return s.courses.ListAll()
}

// CourseTitles returns all course titles in ingestion order
func (s *Store) CourseTitles() ([]string, error) {
	return s.courses.Titles()
}

// CourseCount returns the number of stored courses
func (s *Store) CourseCount() (int, error) {
	return s.courses.Count()
}

// DeleteCourse removes a course and all its lessons and chunks
func (s *Store) DeleteCourse(id string) error {
	return s.courses.Delete(id)
}

// SaveChunks saves a batch of chunks in one transaction
func (s *Store) SaveChunks(chunks []models.Chunk) error {
	return s.chunks.SaveBatch(chunks)
}

// Chunks retrieves every chunk in insertion order
func (s *Store) Chunks() ([]models.Chunk, error) {
	return s.chunks.ListAll()
}

// ChunksByCourse retrieves all chunks for a course in document order
func (s *Store) ChunksByCourse(courseID string) ([]models.Chunk, error) {
	return s.chunks.GetByCourse(courseID)
}

// ChunkCount returns the number of stored chunks
func (s *Store) ChunkCount() (int, error) {
	return s.chunks.Count()
}

// Clear removes all courses, lessons, and chunks
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM courses"); err != nil {
		return fmt.Errorf("failed to clear courses: %w", err)
	}
	// Chunks cascade from courses, but clear explicitly in case foreign
	// keys are disabled on an existing database file.
	if _, err := s.db.Exec("DELETE FROM chunks"); err != nil {
		return fmt.Errorf("failed to clear chunks: %w", err)
	}
	return nil
}
