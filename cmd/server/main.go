// ABOUTME: Main entry point for the lectern HTTP API server
// ABOUTME: Initializes the store, ingests the docs folder, and serves the query API
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lectern/lectern/internal/api"
	"github.com/lectern/lectern/internal/config"
	"github.com/lectern/lectern/internal/ingest"
	"github.com/lectern/lectern/internal/llm"
	"github.com/lectern/lectern/internal/rag"
	"github.com/lectern/lectern/internal/search"
	"github.com/lectern/lectern/internal/session"
	"github.com/lectern/lectern/internal/store"
	"github.com/lectern/lectern/internal/tools"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
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

	ctx := context.Background()

	// Ingest the docs folder on boot, skipping courses already stored
	if _, err := os.Stat(cfg.DocsDir); err == nil {
		ingestor := ingest.NewIngestor(st, client, ingest.NewProcessor(cfg.ChunkSize, cfg.ChunkOverlap))
		stats, err := ingestor.IngestFolder(ctx, cfg.DocsDir)
		if err != nil {
			log.Fatalf("Failed to ingest %s: %v", cfg.DocsDir, err)
		}
		log.Printf("Ingested %d courses, %d chunks from %s", stats.CoursesAdded, stats.ChunksAdded, cfg.DocsDir)
	} else {
		log.Printf("Docs folder %s not found, serving stored courses only", cfg.DocsDir)
	}

	courses, err := st.Courses()
	if err != nil {
		log.Fatalf("Failed to load courses: %v", err)
	}
	catalog := search.NewCatalog(client)
	if err := catalog.Load(ctx, courses); err != nil {
		log.Fatalf("Failed to load course catalog: %v", err)
	}

	chunks, err := st.Chunks()
	if err != nil {
		log.Fatalf("Failed to load chunks: %v", err)
	}
	index := search.NewIndex(client)
	index.Load(chunks)

	registry := tools.NewRegistry()
	if err := registry.Register(tools.NewSearchTool(catalog, index, cfg.MaxResults)); err != nil {
		log.Fatalf("Failed to register search tool: %v", err)
	}
	if err := registry.Register(tools.NewOutlineTool(catalog)); err != nil {
		log.Fatalf("Failed to register outline tool: %v", err)
	}

	sessions := session.NewStore(cfg.MaxHistory)
	system := rag.NewSystem(client, registry, sessions, cfg.MaxToolRounds)

	handler := api.NewAPIHandler(system, catalog, sessions)
	router := api.NewRouter(handler)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // LLM calls can take time
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Lectern serving %d courses on %s", catalog.Count(), cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatalf("Server error: %v", err)
	case <-stop:
		log.Println("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Failed to shut down cleanly: %v", err)
	}

	log.Println("Server exited gracefully")
}
