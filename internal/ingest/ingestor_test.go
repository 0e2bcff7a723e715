// ABOUTME: Tests for folder ingestion into the course store
// ABOUTME: Covers idempotency, bad-file handling, and batch embedding
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/lectern/lectern/internal/store"
)

// stubEmbedder returns a deterministic vector per text and records batches
type stubEmbedder struct {
	mu      sync.Mutex
	batches [][]string
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (s *stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	s.mu.Lock()
	s.batches = append(s.batches, texts)
	s.mu.Unlock()

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = []float32{float32(len(text)), 1, 0}
	}
	return vectors, nil
}

func (s *stubEmbedder) batchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.batches)
}

func courseDoc(title string, lessons int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Course Title: %s\nCourse Link: http://example.com/%s\n\n", title, strings.ToLower(title))
	for i := 1; i <= lessons; i++ {
		fmt.Fprintf(&b, "Lesson %d: Part %d\nSentence one of part %d. Sentence two of part %d.\n\n", i, i, i, i)
	}
	return b.String()
}

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", name, err)
	}
}

func newTestIngestor(t *testing.T) (*Ingestor, *store.Store, *stubEmbedder) {
	t.Helper()
	st, err := store.NewStoreInMemory()
	if err != nil {
		t.Fatalf("NewStoreInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	embedder := &stubEmbedder{}
	return NewIngestor(st, embedder, NewProcessor(800, 100)), st, embedder
}

func TestIngestFolder(t *testing.T) {
	ing, st, _ := newTestIngestor(t)
	dir := t.TempDir()
	writeDoc(t, dir, "alpha.txt", courseDoc("Alpha Course", 2))
	writeDoc(t, dir, "beta.txt", courseDoc("Beta Course", 1))

	stats, err := ing.IngestFolder(context.Background(), dir)
	if err != nil {
		t.Fatalf("IngestFolder() error = %v", err)
	}

	if stats.CoursesAdded != 2 {
		t.Errorf("CoursesAdded = %d, want 2", stats.CoursesAdded)
	}
	if stats.ChunksAdded == 0 {
		t.Error("ChunksAdded = 0, want chunks")
	}

	course, err := st.Course("Alpha Course")
	if err != nil || course == nil {
		t.Fatalf("Course(Alpha Course) = %v, %v", course, err)
	}
	if len(course.Lessons) != 2 {
		t.Errorf("Alpha Course lessons = %d, want 2", len(course.Lessons))
	}

	chunks, err := st.ChunksByCourse("Alpha Course")
	if err != nil {
		t.Fatalf("ChunksByCourse() error = %v", err)
	}
	for _, chunk := range chunks {
		if want := float32(len(chunk.Content)); len(chunk.Vector) != 3 || chunk.Vector[0] != want {
			t.Errorf("chunk %d vector = %v, want [%v 1 0]", chunk.Seq, chunk.Vector, want)
		}
	}
}

func TestIngestIdempotent(t *testing.T) {
	ing, st, embedder := newTestIngestor(t)
	dir := t.TempDir()
	writeDoc(t, dir, "alpha.txt", courseDoc("Alpha Course", 1))

	if _, err := ing.IngestFolder(context.Background(), dir); err != nil {
		t.Fatalf("first IngestFolder() error = %v", err)
	}
	firstBatches := embedder.batchCount()

	stats, err := ing.IngestFolder(context.Background(), dir)
	if err != nil {
		t.Fatalf("second IngestFolder() error = %v", err)
	}

	if stats.CoursesAdded != 0 || stats.ChunksAdded != 0 {
		t.Errorf("second run stats = %+v, want zero", stats)
	}
	if embedder.batchCount() != firstBatches {
		t.Error("second run should not embed anything")
	}
	if count, _ := st.CourseCount(); count != 1 {
		t.Errorf("CourseCount() = %d, want 1", count)
	}
}

func TestIngestSkipsBadFiles(t *testing.T) {
	ing, st, _ := newTestIngestor(t)
	dir := t.TempDir()
	writeDoc(t, dir, "good.txt", courseDoc("Good Course", 1))
	writeDoc(t, dir, "untitled.txt", "Lesson 1: Orphan\nNo course header at all.\n")
	writeDoc(t, dir, "notes.md", "Course Title: Not A Txt File\n")
	if err := os.Mkdir(filepath.Join(dir, "nested.txt"), 0o755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}

	stats, err := ing.IngestFolder(context.Background(), dir)
	if err != nil {
		t.Fatalf("IngestFolder() error = %v", err)
	}

	if stats.CoursesAdded != 1 {
		t.Errorf("CoursesAdded = %d, want only the good file", stats.CoursesAdded)
	}
	titles, err := st.CourseTitles()
	if err != nil {
		t.Fatalf("CourseTitles() error = %v", err)
	}
	if len(titles) != 1 || titles[0] != "Good Course" {
		t.Errorf("CourseTitles() = %v", titles)
	}
}

func TestIngestProcessesFilesInNameOrder(t *testing.T) {
	ing, _, embedder := newTestIngestor(t)
	dir := t.TempDir()
	// Written out of order on purpose
	writeDoc(t, dir, "b.txt", courseDoc("Beta Course", 1))
	writeDoc(t, dir, "a.txt", courseDoc("Alpha Course", 1))

	if _, err := ing.IngestFolder(context.Background(), dir); err != nil {
		t.Fatalf("IngestFolder() error = %v", err)
	}

	if len(embedder.batches) != 2 {
		t.Fatalf("batches = %d, want 2", len(embedder.batches))
	}
	if !strings.Contains(embedder.batches[0][0], "part 1") || !strings.Contains(strings.Join(embedder.batches[0], " "), "one of part 1") {
		t.Errorf("first batch = %v", embedder.batches[0])
	}
}

func TestIngestLargeCourseBatchesEmbedding(t *testing.T) {
	st, err := store.NewStoreInMemory()
	if err != nil {
		t.Fatalf("NewStoreInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	embedder := &stubEmbedder{}
	// Tiny chunks force one chunk per sentence
	ing := NewIngestor(st, embedder, NewProcessor(30, 0))

	var b strings.Builder
	b.WriteString("Course Title: Big Course\n\nLesson 1: Everything\n")
	for i := 0; i < 150; i++ {
		fmt.Fprintf(&b, "Sentence number %03d here. ", i)
	}
	b.WriteString("\n")

	dir := t.TempDir()
	writeDoc(t, dir, "big.txt", b.String())

	stats, err := ing.IngestFolder(context.Background(), dir)
	if err != nil {
		t.Fatalf("IngestFolder() error = %v", err)
	}

	if stats.ChunksAdded != 150 {
		t.Errorf("ChunksAdded = %d, want 150", stats.ChunksAdded)
	}
	embedder.mu.Lock()
	defer embedder.mu.Unlock()
	total := 0
	for _, batch := range embedder.batches {
		if len(batch) > embedBatchSize {
			t.Errorf("batch of %d texts exceeds limit %d", len(batch), embedBatchSize)
		}
		total += len(batch)
	}
	if total != 150 {
		t.Errorf("embedded %d texts, want 150", total)
	}
	if len(embedder.batches) != 3 {
		t.Errorf("batches = %d, want 3", len(embedder.batches))
	}
}

func TestIngestEmptyFolder(t *testing.T) {
	ing, _, _ := newTestIngestor(t)

	stats, err := ing.IngestFolder(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("IngestFolder() error = %v", err)
	}
	if stats.CoursesAdded != 0 || stats.ChunksAdded != 0 {
		t.Errorf("stats = %+v, want zero", stats)
	}
}

func TestIngestMissingFolder(t *testing.T) {
	ing, _, _ := newTestIngestor(t)

	if _, err := ing.IngestFolder(context.Background(), filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("IngestFolder() should fail for a missing directory")
	}
}

func TestIngestClear(t *testing.T) {
	ing, st, _ := newTestIngestor(t)
	dir := t.TempDir()
	writeDoc(t, dir, "alpha.txt", courseDoc("Alpha Course", 1))

	if _, err := ing.IngestFolder(context.Background(), dir); err != nil {
		t.Fatalf("IngestFolder() error = %v", err)
	}
	if err := ing.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	if count, _ := st.CourseCount(); count != 0 {
		t.Errorf("CourseCount() = %d, want 0 after clear", count)
	}
	if count, _ := st.ChunkCount(); count != 0 {
		t.Errorf("ChunkCount() = %d, want 0 after clear", count)
	}
}
