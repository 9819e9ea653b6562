package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/mentions/internal/lsp"
)

var lspNoWatch bool

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Start the Language Server Protocol server",
	Long: `Start a Language Server Protocol (LSP) server for mentions.

This enables editor features like:
- Completion after "@" (people) and "!" (locations)
- Creating a missing note when its "New ..." completion is accepted
- Go-to-definition and hover for mention links

The server communicates over stdin/stdout using JSON-RPC. Logs go to stderr.

Without --vault or --vault-path the editor's workspace root is used.

Examples:
  # Start LSP server (for editor integration)
  mentions lsp

  # Start with debug logging to stderr
  mentions lsp --debug

  # Start for a specific vault
  mentions lsp --vault-path /path/to/vault`,
	Args: cobra.NoArgs,
	RunE: runLSP,
}

func init() {
	rootCmd.AddCommand(lspCmd)
	lspCmd.Flags().BoolVar(&lspNoWatch, "no-watch", false, "Do not watch the vault for changes")
}

func runLSP(cmd *cobra.Command, args []string) error {
	vaultPath := ""
	if vaultExplicit {
		vaultPath = getVaultPath()
	}

	server := lsp.NewServer(lsp.Config{
		VaultPath: vaultPath,
		Logger:    newLogger(true),
		Watch:     !lspNoWatch,
		Input:     os.Stdin,
		Output:    os.Stdout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx)
}
