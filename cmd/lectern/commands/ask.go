// ABOUTME: Ask command runs one orchestrated query from the terminal
// ABOUTME: Prints the model's answer followed by its cited sources
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about the course materials",
		Long: `Ask a question about the course materials.

Runs one orchestrated query: the model may search course content or
fetch course outlines before answering. Each invocation is a fresh
session with no conversation history.

Examples:
  lectern ask "What does lesson 3 of the MCP course cover?"
  lectern ask --format json "Which course explains embeddings?"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
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

	catalog, index, err := buildSearch(cmd.Context(), st, client)
	if err != nil {
		return err
	}
	registry, err := buildRegistry(catalog, index, cfg.MaxResults)
	if err != nil {
		return err
	}
	system, _ := buildSystem(cfg, client, registry)

	result, err := system.ProcessQuery(cmd.Context(), args[0], "")
	if err != nil {
		return fmt.Errorf("processing query: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Answer)
	if len(result.Sources) > 0 && !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), "\nSources:")
		for _, source := range result.Sources {
			if source.Link != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s (%s)\n", source.Label(), source.Link)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", source.Label())
			}
		}
	}
	return nil
}
