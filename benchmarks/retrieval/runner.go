// ABOUTME: Benchmark runner executes a golden query set against the index
// ABOUTME: Collects per-query ranks and exports aggregate results as JSON

package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lectern/lectern/internal/models"
	"github.com/lectern/lectern/internal/search"
)

// DefaultK is the result depth scored when none is configured
const DefaultK = 5

// Searcher is the slice of the content index the benchmark drives
type Searcher interface {
	Search(ctx context.Context, query string, filter models.SearchFilter, limit int) ([]search.Result, error)
}

// Runner executes golden queries and scores the ranked results
type Runner struct {
	searcher Searcher
	k        int
	verbose  bool
}

// NewRunner creates a benchmark runner scoring the top k results per query
func NewRunner(searcher Searcher, k int, verbose bool) *Runner {
	if k <= 0 {
		k = DefaultK
	}
	return &Runner{searcher: searcher, k: k, verbose: verbose}
}

// Run executes every golden query and aggregates the outcomes
func (r *Runner) Run(ctx context.Context, golden []GoldenQuery) (*Report, error) {
	outcomes := make([]QueryOutcome, 0, len(golden))

	for _, q := range golden {
		results, err := r.searcher.Search(ctx, q.Query, models.SearchFilter{}, r.k)
		if err != nil {
			return nil, fmt.Errorf("query %q: %w", q.Query, err)
		}

		outcome := evaluate(q, results)
		if r.verbose {
			if outcome.Hit {
				fmt.Printf("  HIT  rank %d  %s\n", outcome.Rank, q.Query)
			} else {
				fmt.Printf("  MISS         %s\n", q.Query)
			}
		}
		outcomes = append(outcomes, outcome)
	}

	return Summarize(outcomes, r.k), nil
}

// ExportResults writes the report to a JSON file
func (r *Runner) ExportResults(report *Report, outputPath string) error {
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}

	fmt.Printf("✓ Results exported to: %s\n", outputPath)
	return nil
}
