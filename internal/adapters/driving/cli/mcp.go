package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jyotish/internal/adapters/driven/refdata"
	"github.com/custodia-labs/jyotish/internal/adapters/driving/mcp"
	"github.com/custodia-labs/jyotish/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can compute
charts, dasha periods, divisional longitudes and sidereal time.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead; it also answers GET /health.

When a reference override file is in use, it is watched and reloaded on
change while the server runs.

Examples:
  # Stdio mode (default)
  jyotish mcp serve

  # HTTP mode
  jyotish mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "jyotish": {
        "command": "/path/to/jyotish",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if chartService == nil {
		return errors.New("chart service not configured")
	}

	ports := &mcp.Ports{
		Chart:     chartService,
		Reference: referenceService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if referenceStore != nil {
		watcher, err := refdata.NewWatcher(referenceStore)
		if err != nil {
			return fmt.Errorf("watching reference data: %w", err)
		}
		if err := watcher.Start(); err != nil {
			return fmt.Errorf("watching reference data: %w", err)
		}
		defer watcher.Stop()
		logger.Info("Watching %s for changes", referenceStore.Path())
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
