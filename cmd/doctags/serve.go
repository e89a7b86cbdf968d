package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	doctagsmcp "github.com/gorewood/doctags/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run doctags as a Model Context Protocol (MCP) server over stdio.

This exposes doctags operations as MCP tools that any MCP-capable agent
environment can use (Claude Code, Cursor, Windsurf, Gemini CLI, etc).

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "doctags": {
        "command": "doctags",
        "args": ["serve"]
      }
    }
  }

Tool arguments left unset fall back to the settings resolved at startup.

Available tools: export, clean_comment`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server, err := newMCPServer(cmd)
			if err != nil {
				return err
			}
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}

// newMCPServer resolves settings once for the life of the server. stdout
// carries the protocol, so diagnostics go to stderr.
func newMCPServer(cmd *cobra.Command) (*mcp.Server, error) {
	settings, err := loadSettings(cmd, nil)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cmd, settings)
	if err != nil {
		return nil, err
	}
	return doctagsmcp.NewServer(buildVersion(), settings, logger), nil
}
