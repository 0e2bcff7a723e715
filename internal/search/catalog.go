// ABOUTME: Course catalog with semantic title resolution
// ABOUTME: Resolves fuzzy course names to the nearest known title, no threshold
package search

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/lectern/lectern/internal/models"
)

// Catalog holds the known courses and an embedding per title so that
// partial or fuzzy course names resolve to the closest real course.
type Catalog struct {
	embedder     Embedder
	courses      []models.Course
	byID         map[string]*models.Course
	titleVectors [][]float32
}

// NewCatalog creates an empty catalog backed by the given embedder
func NewCatalog(embedder Embedder) *Catalog {
	return &Catalog{
		embedder: embedder,
		byID:     make(map[string]*models.Course),
	}
}

// Load replaces the catalog contents and embeds every course title.
// Must complete before the catalog serves lookups.
func (c *Catalog) Load(ctx context.Context, courses []models.Course) error {
	byID := make(map[string]*models.Course, len(courses))
	titles := make([]string, len(courses))
	for i := range courses {
		byID[courses[i].ID] = &courses[i]
		titles[i] = courses[i].Title
	}

	var vectors [][]float32
	if len(titles) > 0 {
		var err error
		vectors, err = c.embedder.EmbedBatch(ctx, titles)
		if err != nil {
			return fmt.Errorf("failed to embed course titles: %w", err)
		}
	}

	c.courses = courses
	c.byID = byID
	c.titleVectors = vectors
	return nil
}

// Resolve maps a possibly-partial course name to the closest known course.
// The nearest title always wins; there is no similarity cutoff. Returns
// false only when the catalog is empty or the name cannot be embedded.
func (c *Catalog) Resolve(ctx context.Context, name string) (*models.Course, bool) {
	if len(c.courses) == 0 {
		return nil, false
	}

	// Exact title match needs no embedding call
	for i := range c.courses {
		if strings.EqualFold(c.courses[i].Title, name) {
			return &c.courses[i], true
		}
	}

	nameVector, err := c.embedder.Embed(ctx, name)
	if err != nil {
		log.Printf("[Catalog] failed to embed course name %q: %v", name, err)
		return nil, false
	}

	best := -1
	bestScore := 0.0
	for i, vec := range c.titleVectors {
		score := CosineSimilarity(nameVector, vec)
		if best == -1 || score > bestScore {
			best = i
			bestScore = score
		}
	}
	if best == -1 {
		return nil, false
	}

	return &c.courses[best], true
}

// Course retrieves a course by id
func (c *Catalog) Course(id string) (*models.Course, bool) {
	course, ok := c.byID[id]
	return course, ok
}

// Titles returns all course titles in catalog order
func (c *Catalog) Titles() []string {
	titles := make([]string, len(c.courses))
	for i := range c.courses {
		titles[i] = c.courses[i].Title
	}
	return titles
}

// Count returns the number of courses in the catalog
func (c *Catalog) Count() int {
	return len(c.courses)
}
