// ABOUTME: Shared service wiring for CLI commands
// ABOUTME: Builds the store, LLM client, search layer, and orchestration system
package commands

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/lectern/lectern/internal/config"
	"github.com/lectern/lectern/internal/llm"
	"github.com/lectern/lectern/internal/rag"
	"github.com/lectern/lectern/internal/search"
	"github.com/lectern/lectern/internal/session"
	"github.com/lectern/lectern/internal/store"
	"github.com/lectern/lectern/internal/tools"
)

// loadConfig loads .env (if present) and reads configuration
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// openStore opens the course store at the configured path
func openStore(cfg *config.Config) (*store.Store, error) {
	path := cfg.DBPath
	if path == "" {
		path = store.DefaultDBPath()
	}
	st, err := store.NewStore(path)
	if err != nil {
		return nil, fmt.Errorf("opening course store: %w", err)
	}
	return st, nil
}

// newLLMClient builds the OpenAI-backed client from configuration
func newLLMClient(cfg *config.Config) (*llm.Client, error) {
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
		return nil, fmt.Errorf("initializing LLM client: %w", err)
	}
	return client, nil
}

// buildSearch hydrates the course catalog and content index from the store.
// Both are built fully before being handed to any server, so concurrent
// readers never observe a partial load.
func buildSearch(ctx context.Context, st *store.Store, embedder search.Embedder) (*search.Catalog, *search.Index, error) {
	courses, err := st.Courses()
	if err != nil {
		return nil, nil, fmt.Errorf("loading courses: %w", err)
	}
	catalog := search.NewCatalog(embedder)
	if err := catalog.Load(ctx, courses); err != nil {
		return nil, nil, fmt.Errorf("loading course catalog: %w", err)
	}

	chunks, err := st.Chunks()
	if err != nil {
		return nil, nil, fmt.Errorf("loading chunks: %w", err)
	}
	index := search.NewIndex(embedder)
	index.Load(chunks)

	if verbose {
		log.Printf("Loaded %d courses, %d chunks", catalog.Count(), index.Count())
	}
	return catalog, index, nil
}

// buildRegistry registers the search and outline tools
func buildRegistry(catalog *search.Catalog, index *search.Index, maxResults int) (*tools.Registry, error) {
	registry := tools.NewRegistry()
	if err := registry.Register(tools.NewSearchTool(catalog, index, maxResults)); err != nil {
		return nil, fmt.Errorf("registering search tool: %w", err)
	}
	if err := registry.Register(tools.NewOutlineTool(catalog)); err != nil {
		return nil, fmt.Errorf("registering outline tool: %w", err)
	}
	return registry, nil
}

// buildSystem wires the orchestration loop with its session store
func buildSystem(cfg *config.Config, client *llm.Client, registry *tools.Registry) (*rag.System, *session.Store) {
	sessions := session.NewStore(cfg.MaxHistory)
	return rag.NewSystem(client, registry, sessions, cfg.MaxToolRounds), sessions
}
