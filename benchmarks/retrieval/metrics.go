// ABOUTME: Retrieval quality metrics for golden-set benchmarks
// ABOUTME: Computes hit-rate@K and mean reciprocal rank from ranked results

package retrieval

import (
	"time"

	"github.com/lectern/lectern/internal/search"
)

// QueryOutcome records how one golden query ranked against the index
type QueryOutcome struct {
	Query      string `json:"query"`
	WantCourse string `json:"want_course"`
	WantLesson *int   `json:"want_lesson,omitempty"`
	Rank       int    `json:"rank"` // 1-based rank of first matching chunk, 0 = miss
	Hit        bool   `json:"hit"`
}

// Report aggregates outcomes for a full benchmark run
type Report struct {
	Timestamp time.Time      `json:"timestamp"`
	K         int            `json:"k"`
	Queries   int            `json:"queries"`
	Hits      int            `json:"hits"`
	HitRate   float64        `json:"hit_rate"`
	MRR       float64        `json:"mrr"`
	Outcomes  []QueryOutcome `json:"outcomes"`
}

// evaluate ranks a golden query against its retrieved results
func evaluate(q GoldenQuery, results []search.Result) QueryOutcome {
	outcome := QueryOutcome{
		Query:      q.Query,
		WantCourse: q.WantCourse,
		WantLesson: q.WantLesson,
	}
	for i, result := range results {
		if q.Matches(result.Chunk) {
			outcome.Rank = i + 1
			outcome.Hit = true
			break
		}
	}
	return outcome
}

// HitRate returns the fraction of outcomes that found a match
func HitRate(outcomes []QueryOutcome) float64 {
	if len(outcomes) == 0 {
		return 0
	}
	hits := 0
	for _, o := range outcomes {
		if o.Hit {
			hits++
		}
	}
	return float64(hits) / float64(len(outcomes))
}

// MeanReciprocalRank returns the mean of 1/rank over all outcomes.
// Misses contribute zero.
func MeanReciprocalRank(outcomes []QueryOutcome) float64 {
	if len(outcomes) == 0 {
		return 0
	}
	var sum float64
	for _, o := range outcomes {
		if o.Rank > 0 {
			sum += 1.0 / float64(o.Rank)
		}
	}
	return sum / float64(len(outcomes))
}

// Summarize builds a report from per-query outcomes
func Summarize(outcomes []QueryOutcome, k int) *Report {
	hits := 0
	for _, o := range outcomes {
		if o.Hit {
			hits++
		}
	}
	return &Report{
		Timestamp: time.Now().UTC(),
		K:         k,
		Queries:   len(outcomes),
		Hits:      hits,
		HitRate:   HitRate(outcomes),
		MRR:       MeanReciprocalRank(outcomes),
		Outcomes:  outcomes,
	}
}
