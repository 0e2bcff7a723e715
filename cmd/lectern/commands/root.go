// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Defines verbose/quiet/format flags shared by every subcommand
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

var validFormats = []string{"auto", "table", "json"}

const banner = `
██╗     ███████╗ ██████╗████████╗███████╗██████╗ ███╗   ██╗
██║     ██╔════╝██╔════╝╚══██╔══╝██╔════╝██╔══██╗████╗  ██║
██║     █████╗  ██║        ██║   █████╗  ██████╔╝██╔██╗ ██║
██║     ██╔══╝  ██║        ██║   ██╔══╝  ██╔══██╗██║╚██╗██║
███████╗███████╗╚██████╗   ██║   ███████╗██║  ██║██║ ╚████║
╚══════╝╚══════╝ ╚═════╝   ╚═╝   ╚══════╝╚═╝  ╚═╝╚═╝  ╚═══╝
`

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lectern",
		Short: "Course materials assistant with retrieval-augmented answers",
		Long: banner + `
Lectern answers questions about your course materials.

It ingests structured course documents, embeds their content for
semantic search, and orchestrates an LLM with search and outline
tools to produce cited answers over HTTP, MCP, or the CLI.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !containsString(validFormats, outputFormat) {
				return fmt.Errorf("invalid format %q (must be auto, table, or json)", outputFormat)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto|table|json)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewCoursesCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
