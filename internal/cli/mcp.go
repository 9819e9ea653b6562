package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/mentions/internal/mcp"
	"github.com/aidanlsb/mentions/internal/workspace"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the mention tools to agents over MCP (stdio)",
	Long: `Start a Model Context Protocol server on stdin/stdout.

Tools:
  list_mentions     List every person or location note
  suggest_mentions  Turn typed text into a wikilink (or a create suggestion)
  create_mention    Create a person or location note

The vault is watched while the server runs so the tools always see the
current notes.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	logger := newLogger(true)
	ws, err := openWorkspace(ctx, true, workspace.Options{Logger: logger})
	if err != nil {
		return err
	}

	go func() {
		if err := ws.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("watcher stopped", "err", err)
		}
	}()

	return mcp.Serve(ws)
}
