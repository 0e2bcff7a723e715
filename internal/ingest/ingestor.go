// ABOUTME: Ingestor walks a docs folder and loads course documents into the store
// ABOUTME: Skips already-ingested courses and embeds chunk text in bounded batches
package ingest

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/lectern/lectern/internal/models"
)

const (
	embedBatchSize = 64
	embedWorkers   = 4
)

// Embedder produces embedding vectors for chunk text
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Store is the persistence surface ingestion writes to
type Store interface {
	Course(id string) (*models.Course, error)
	SaveCourse(course *models.Course) error
	SaveChunks(chunks []models.Chunk) error
	Clear() error
}

// Stats reports what an ingestion run added
type Stats struct {
	CoursesAdded int
	ChunksAdded  int
}

// Ingestor loads course documents from disk into the store
type Ingestor struct {
	store     Store
	embedder  Embedder
	processor *Processor
}

// NewIngestor creates an Ingestor
func NewIngestor(store Store, embedder Embedder, processor *Processor) *Ingestor {
	return &Ingestor{store: store, embedder: embedder, processor: processor}
}

// IngestFolder parses every .txt document in dir (sorted by name), embeds
// new chunk text, and persists courses and chunks. Courses whose id already
// exists are skipped, so re-running over the same folder is a no-op. A file
// that fails to parse is logged and skipped.
func (ing *Ingestor) IngestFolder(ctx context.Context, dir string) (*Stats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read docs directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	stats := &Stats{}
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		course, chunks, err := ing.processor.ParseFile(filepath.Join(dir, name))
		if err != nil {
			log.Printf("[Ingest] skipping %s: %v", name, err)
			continue
		}

		existing, err := ing.store.Course(course.ID)
		if err != nil {
			return stats, fmt.Errorf("failed to check for existing course: %w", err)
		}
		if existing != nil {
			log.Printf("[Ingest] course %q already exists, skipping %s", course.ID, name)
			continue
		}

		if err := ing.embedChunks(ctx, chunks); err != nil {
			return stats, fmt.Errorf("failed to embed chunks for %q: %w", course.ID, err)
		}
		if err := ing.store.SaveCourse(course); err != nil {
			return stats, fmt.Errorf("failed to save course %q: %w", course.ID, err)
		}
		if err := ing.store.SaveChunks(chunks); err != nil {
			return stats, fmt.Errorf("failed to save chunks for %q: %w", course.ID, err)
		}

		stats.CoursesAdded++
		stats.ChunksAdded += len(chunks)
		log.Printf("[Ingest] added course %q with %d lessons, %d chunks", course.ID, len(course.Lessons), len(chunks))
	}

	return stats, nil
}

// Clear empties the store before a full re-ingestion
func (ing *Ingestor) Clear() error {
	return ing.store.Clear()
}

// embedChunks fills in chunk vectors, batching requests through a bounded
// worker pool so large courses do not spike API concurrency
func (ing *Ingestor) embedChunks(ctx context.Context, chunks []models.Chunk) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(embedWorkers)

	for start := 0; start < len(chunks); start += embedBatchSize {
		batch := chunks[start:min(start+embedBatchSize, len(chunks))]
		eg.Go(func() error {
			texts := make([]string, len(batch))
			for i, chunk := range batch {
				texts[i] = chunk.Content
			}
			vectors, err := ing.embedder.EmbedBatch(ctx, texts)
			if err != nil {
				return err
			}
			if len(vectors) != len(batch) {
				return fmt.Errorf("embedding batch returned %d vectors for %d texts", len(vectors), len(batch))
			}
			for i := range batch {
				batch[i].Vector = vectors[i]
			}
			return nil
		})
	}

	return eg.Wait()
}
