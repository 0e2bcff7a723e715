// ABOUTME: Serve command starts the HTTP API server
// ABOUTME: Optionally ingests the docs folder before serving
package commands

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lectern/lectern/internal/api"
	"github.com/lectern/lectern/internal/ingest"
)

var (
	serveIngest bool
	serveAddr   string
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Hydrates the course catalog and content index from the store, then
serves query, courses, session, and health endpoints until interrupted.

Examples:
  lectern serve
  lectern serve --ingest
  lectern serve --addr :9000`,
		RunE: runServe,
	}

	cmd.Flags().BoolVar(&serveIngest, "ingest", false, "Ingest the docs folder before serving")
	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides LECTERN_ADDR)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	client, err := newLLMClient(cfg)
	if err != nil {
		return err
	}

	if serveIngest {
		ingestor := ingest.NewIngestor(st, client, ingest.NewProcessor(cfg.ChunkSize, cfg.ChunkOverlap))
		stats, err := ingestor.IngestFolder(cmd.Context(), cfg.DocsDir)
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", cfg.DocsDir, err)
		}
		if !quiet {
			log.Printf("Ingested %d courses, %d chunks from %s", stats.CoursesAdded, stats.ChunksAdded, cfg.DocsDir)
		}
	}

	catalog, index, err := buildSearch(cmd.Context(), st, client)
	if err != nil {
		return err
	}

	registry, err := buildRegistry(catalog, index, cfg.MaxResults)
	if err != nil {
		return err
	}
	system, sessions := buildSystem(cfg, client, registry)

	handler := api.NewAPIHandler(system, catalog, sessions)
	router := api.NewRouter(handler)

	addr := cfg.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // LLM calls can take time
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if !quiet {
			log.Printf("Lectern serving %d courses on %s", catalog.Count(), addr)
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
		if !quiet {
			log.Println("Shutting down server...")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	if !quiet {
		log.Println("Server exited gracefully")
	}
	return nil
}
