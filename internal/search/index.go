// ABOUTME: In-memory vector index over course chunks with cosine ranking
// ABOUTME: Filters are exact-match on course/lesson; ties keep insertion order
package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/lectern/lectern/internal/models"
)

// DefaultMaxResults is the result cap applied when no limit is given
const DefaultMaxResults = 5

// ErrUnavailable indicates the index could not serve the search, typically
// because embedding the query failed.
var ErrUnavailable = errors.New("search unavailable")

// Embedder generates embedding vectors for text
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Result is a single search hit with its similarity score
type Result struct {
	Chunk models.Chunk
	Score float64
}

// Index holds all chunks in memory for brute-force similarity search.
// Chunks are scored in load order, so equal scores keep ingestion order.
type Index struct {
	embedder Embedder
	chunks   []models.Chunk
}

// NewIndex creates an empty index backed by the given embedder
func NewIndex(embedder Embedder) *Index {
	return &Index{embedder: embedder}
}

// Load replaces the index contents with the given chunks
func (i *Index) Load(chunks []models.Chunk) {
	i.chunks = chunks
}

// Count returns the number of indexed chunks
func (i *Index) Count() int {
	return len(i.chunks)
}

// Search embeds the query and returns the top chunks by cosine similarity,
// restricted to chunks matching the filter. A limit <= 0 falls back to
// DefaultMaxResults. An empty result set is not an error.
func (i *Index) Search(ctx context.Context, query string, filter models.SearchFilter, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = DefaultMaxResults
	}

	queryVector, err := i.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var results []Result
	for _, chunk := range i.chunks {
		if !filter.Matches(chunk) {
			continue
		}
		results = append(results, Result{
			Chunk: chunk,
			Score: CosineSimilarity(queryVector, chunk.Vector),
		})
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// CosineSimilarity calculates cosine similarity between two vectors
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
