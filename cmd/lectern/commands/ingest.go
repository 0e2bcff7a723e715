// ABOUTME: Ingest command loads course documents into the store
// ABOUTME: Parses, chunks, embeds, and persists every .txt document in a folder
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lectern/lectern/internal/ingest"
)

var (
	ingestClear bool
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [dir]",
		Short: "Ingest course documents",
		Long: `Ingest course documents from a folder.

Parses every .txt course document, splits lesson text into overlapping
chunks, embeds them, and stores the result. Courses already in the
store are skipped, so re-running is safe.

Examples:
  lectern ingest
  lectern ingest ./docs
  lectern ingest --clear ./docs`,
		Args: cobra.MaximumNArgs(1),
		RunE: runIngest,
	}

	cmd.Flags().BoolVar(&ingestClear, "clear", false, "Empty the store before ingesting")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir := cfg.DocsDir
	if len(args) == 1 {
		dir = args[0]
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

	ingestor := ingest.NewIngestor(st, client, ingest.NewProcessor(cfg.ChunkSize, cfg.ChunkOverlap))

	if ingestClear {
		if err := ingestor.Clear(); err != nil {
			return fmt.Errorf("clearing store: %w", err)
		}
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "Store cleared")
		}
	}

	stats, err := ingestor.IngestFolder(cmd.Context(), dir)
	if err != nil {
		return fmt.Errorf("ingesting %s: %w", dir, err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Added %d course(s), %d chunk(s) from %s\n", stats.CoursesAdded, stats.ChunksAdded, dir)
	}
	return nil
}
