// ABOUTME: Command-line benchmark runner for retrieval quality
// ABOUTME: Scores the content index against a golden query set and exports JSON

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/lectern/lectern/benchmarks/retrieval"
	"github.com/lectern/lectern/internal/config"
	"github.com/lectern/lectern/internal/llm"
	"github.com/lectern/lectern/internal/search"
	"github.com/lectern/lectern/internal/store"
)

func main() {
	// Command-line flags
	goldenPath := flag.String("golden", "golden.json", "Path to the golden query set (JSON)")
	outputPath := flag.String("output", "benchmark_results.json", "Output path for JSON results")
	k := flag.Int("k", retrieval.DefaultK, "Result depth to score (hit-rate@K)")
	minHitRate := flag.Float64("min-hit-rate", 0, "Exit non-zero if hit-rate falls below this value")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Parse()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (continuing anyway): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.OpenAIKey == "" {
		log.Fatal("OPENAI_API_KEY environment variable is required for benchmarks")
	}

	golden, err := retrieval.LoadGoldenSet(*goldenPath)
	if err != nil {
		log.Fatalf("Failed to load golden set: %v", err)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = store.DefaultDBPath()
	}
	st, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open course store: %v", err)
	}
	defer st.Close()

	client, err := llm.NewClient(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Temperature:    cfg.Temperature,
		MaxTokens:      cfg.MaxTokens,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	chunks, err := st.Chunks()
	if err != nil {
		log.Fatalf("Failed to load chunks: %v", err)
	}
	index := search.NewIndex(client)
	index.Load(chunks)
	if index.Count() == 0 {
		log.Fatal("No chunks in store - run 'lectern ingest' first")
	}

	// Print header
	fmt.Println("========================================")
	fmt.Println("Lectern Retrieval Benchmarks")
	fmt.Println("========================================")
	fmt.Printf("Scoring %d queries against %d chunks (top %d)\n\n", len(golden), index.Count(), *k)

	runner := retrieval.NewRunner(index, *k, *verbose)
	report, err := runner.Run(context.Background(), golden)
	if err != nil {
		log.Fatalf("Benchmark failed: %v", err)
	}

	// Print summary
	fmt.Println("\n========================================")
	fmt.Println("BENCHMARK SUMMARY")
	fmt.Println("========================================")
	fmt.Printf("Queries:    %d\n", report.Queries)
	fmt.Printf("Hits:       %d\n", report.Hits)
	fmt.Printf("Hit-rate@%d: %.3f\n", report.K, report.HitRate)
	fmt.Printf("MRR:        %.3f\n", report.MRR)
	fmt.Println("========================================")

	// Export results
	if err := runner.ExportResults(report, *outputPath); err != nil {
		log.Fatalf("Failed to export results: %v", err)
	}

	// Exit with error code if retrieval quality fell below the bar
	if report.HitRate < *minHitRate {
		fmt.Printf("Hit-rate %.3f below required %.3f\n", report.HitRate, *minHitRate)
		os.Exit(1)
	}
}
