// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to search course materials via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/lectern/lectern/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents.

Runs lectern as an MCP (Model Context Protocol) server, exposing the
course search and outline tools to LLM agents over stdio.

Configure in Claude Desktop's config file to enable course tools.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an agent host)
  lectern mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "lectern": {
  #       "command": "lectern",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
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

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"Lectern Course Materials",
		versionInfo.Version,
	)
	mcp.RegisterTools(server, registry)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Lectern MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
