// ABOUTME: Tests for retrieval benchmark metrics
// ABOUTME: Verifies hit-rate and MRR math on known outcome sets

package retrieval

import (
	"math"
	"testing"

	"github.com/lectern/lectern/internal/models"
	"github.com/lectern/lectern/internal/search"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func resultFor(courseID string, lesson int) search.Result {
	return search.Result{Chunk: models.Chunk{CourseID: courseID, LessonNumber: lesson}}
}

func TestEvaluateRanksFirstMatch(t *testing.T) {
	golden := GoldenQuery{Query: "q", WantCourse: "Course B"}
	results := []search.Result{
		resultFor("Course A", 0),
		resultFor("Course B", 2),
		resultFor("Course B", 3),
	}

	outcome := evaluate(golden, results)
	if !outcome.Hit {
		t.Fatal("evaluate() should hit")
	}
	if outcome.Rank != 2 {
		t.Errorf("Rank = %v, want 2", outcome.Rank)
	}
}

func TestEvaluateLessonConstraint(t *testing.T) {
	lesson := 3
	golden := GoldenQuery{Query: "q", WantCourse: "Course B", WantLesson: &lesson}
	results := []search.Result{
		resultFor("Course B", 1),
		resultFor("Course A", 3),
		resultFor("Course B", 3),
	}

	outcome := evaluate(golden, results)
	if !outcome.Hit {
		t.Fatal("evaluate() should hit")
	}
	if outcome.Rank != 3 {
		t.Errorf("Rank = %v, want 3", outcome.Rank)
	}
}

func TestEvaluateMiss(t *testing.T) {
	golden := GoldenQuery{Query: "q", WantCourse: "Course C"}
	results := []search.Result{
		resultFor("Course A", 0),
		resultFor("Course B", 1),
	}

	outcome := evaluate(golden, results)
	if outcome.Hit {
		t.Error("evaluate() should miss")
	}
	if outcome.Rank != 0 {
		t.Errorf("Rank = %v, want 0", outcome.Rank)
	}
}

func TestHitRate(t *testing.T) {
	outcomes := []QueryOutcome{
		{Rank: 1, Hit: true},
		{Rank: 2, Hit: true},
		{Rank: 0, Hit: false},
	}

	got := HitRate(outcomes)
	if !almostEqual(got, 2.0/3.0) {
		t.Errorf("HitRate() = %v, want %v", got, 2.0/3.0)
	}
}

func TestMeanReciprocalRank(t *testing.T) {
	outcomes := []QueryOutcome{
		{Rank: 1, Hit: true},
		{Rank: 2, Hit: true},
		{Rank: 0, Hit: false},
	}

	// (1 + 1/2 + 0) / 3
	got := MeanReciprocalRank(outcomes)
	if !almostEqual(got, 0.5) {
		t.Errorf("MeanReciprocalRank() = %v, want 0.5", got)
	}
}

func TestMetricsEmptyOutcomes(t *testing.T) {
	if got := HitRate(nil); got != 0 {
		t.Errorf("HitRate(nil) = %v, want 0", got)
	}
	if got := MeanReciprocalRank(nil); got != 0 {
		t.Errorf("MeanReciprocalRank(nil) = %v, want 0", got)
	}
}

func TestSummarize(t *testing.T) {
	outcomes := []QueryOutcome{
		{Query: "first", Rank: 1, Hit: true},
		{Query: "second", Rank: 0, Hit: false},
	}

	report := Summarize(outcomes, 5)
	if report.K != 5 {
		t.Errorf("K = %v, want 5", report.K)
	}
	if report.Queries != 2 {
		t.Errorf("Queries = %v, want 2", report.Queries)
	}
	if report.Hits != 1 {
		t.Errorf("Hits = %v, want 1", report.Hits)
	}
	if !almostEqual(report.HitRate, 0.5) {
		t.Errorf("HitRate = %v, want 0.5", report.HitRate)
	}
	if !almostEqual(report.MRR, 0.5) {
		t.Errorf("MRR = %v, want 0.5", report.MRR)
	}
	if report.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
	if len(report.Outcomes) != 2 {
		t.Errorf("Outcomes count = %v, want 2", len(report.Outcomes))
	}
}
