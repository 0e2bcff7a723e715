// ABOUTME: Chunk storage operations for SQLite
// ABOUTME: Persists chunk text with embedding vectors as little-endian BLOBs
package store

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/lectern/lectern/internal/models"
)

// ChunkStore handles chunk persistence
type ChunkStore struct {
	db *DB
}

// NewChunkStore creates a new ChunkStore
func NewChunkStore(db *DB) *ChunkStore {
	return &ChunkStore{db: db}
}

// SaveBatch saves a batch of chunks in one transaction (upsert by course/seq)
func (s *ChunkStore) SaveBatch(chunks []models.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO chunks (course_id, seq, lesson_number, content, vector)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(course_id, seq) DO UPDATE SET
			lesson_number = excluded.lesson_number,
			content = excluded.content,
			vector = excluded.vector
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, chunk := range chunks {
		if len(chunk.Vector) == 0 {
			return fmt.Errorf("chunk %s/%d has no embedding vector", chunk.CourseID, chunk.Seq)
		}
		blob := vectorToBlob(chunk.Vector)
		if _, err := stmt.Exec(chunk.CourseID, chunk.Seq, chunk.LessonNumber, chunk.Content, blob); err != nil {
			return fmt.Errorf("failed to save chunk %s/%d: %w", chunk.CourseID, chunk.Seq, err)
		}
	}

	return tx.Commit()
}

// GetByCourse retrieves all chunks for a course in document order
func (s *ChunkStore) GetByCourse(courseID string) ([]models.Chunk, error) {
	rows, err := s.db.Query(`
		SELECT course_id, seq, lesson_number, content, vector
		FROM chunks
		WHERE course_id = ?
		ORDER BY seq ASC
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanChunks(rows)
}

// ListAll retrieves every chunk in insertion order
func (s *ChunkStore) ListAll() ([]models.Chunk, error) {
	rows, err := s.db.Query(`
		SELECT course_id, seq, lesson_number, content, vector
		FROM chunks
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanChunks(rows)
}

// DeleteByCourse removes all chunks for a course
func (s *ChunkStore) DeleteByCourse(courseID string) error {
	_, err := s.db.Exec("DELETE FROM chunks WHERE course_id = ?", courseID)
	return err
}

// Count returns the number of stored chunks
func (s *ChunkStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM chunks").Scan(&count)
	return count, err
}

// scanChunks scans rows into chunks, decoding vectors from BLOB
func scanChunks(rows *sql.Rows) ([]models.Chunk, error) {
	var chunks []models.Chunk

	for rows.Next() {
		var (
			chunk models.Chunk
			blob  []byte
		)
		if err := rows.Scan(&chunk.CourseID, &chunk.Seq, &chunk.LessonNumber, &chunk.Content, &blob); err != nil {
			return nil, err
		}
		chunk.Vector = blobToVector(blob)
		chunks = append(chunks, chunk)
	}

	return chunks, rows.Err()
}

// vectorToBlob converts a float32 slice to a little-endian binary blob
func vectorToBlob(vector []float32) []byte {
	blob := make([]byte, len(vector)*4)
	for i, v := range vector {
		binary.LittleEndian.PutUint32(blob[i*4:], math.Float32bits(v))
	}
	return blob
}

// blobToVector converts a binary blob back to a float32 slice
func blobToVector(blob []byte) []float32 {
	count := len(blob) / 4
	vector := make([]float32, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint32(blob[i*4:])
		vector[i] = math.Float32frombits(bits)
	}
	return vector
}
