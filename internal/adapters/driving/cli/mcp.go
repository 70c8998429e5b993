package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rsvp-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

Tools:
  segment_text    - split text into reading segments
  list_documents  - list stored documents
  get_segments    - read the segments of a stored document

By default, the server communicates over stdio using JSON-RPC.

Use --http to serve over streamable HTTP instead. Prometheus metrics are
then available at /metrics on the same address.

Examples:
  # Stdio mode (default, for desktop assistants)
  rsvp mcp serve

  # HTTP mode (for MCP Inspector, remote access, metrics)
  rsvp mcp serve --http localhost:8080

Desktop assistant configuration:
  {
    "mcpServers": {
      "rsvp": {
        "command": "/path/to/rsvp",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().String("http", "", "Serve over HTTP on this address instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func newMCPServer() (*mcp.Server, error) {
	if segmentService == nil {
		return nil, errNoSegmentService
	}
	return mcp.NewServer(&mcp.Ports{
		Segment:  segmentService,
		Document: documentService,
	})
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("http")
	if err != nil {
		return fmt.Errorf("getting http flag: %w", err)
	}

	server, err := newMCPServer()
	if err != nil {
		return err
	}

	if addr != "" {
		cmd.PrintErrf("MCP server listening on http://%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
