package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/mentions/internal/index"
	"github.com/aidanlsb/mentions/internal/workspace"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the vault and keep the mention folders in place",
	Long: `Watch the vault directory and rebuild the people and location indexes
whenever a note is created, deleted or renamed.

The watcher:
- Debounces rapid changes (waits 100ms after the last change)
- Ignores .git/, .obsidian/, .trash/ and node_modules/
- Reloads mentions.yaml when it is edited and creates any missing folder

Examples:
  # Watch the default vault
  mentions watch

  # Watch with debug output
  mentions watch --debug`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := newLogger(true)
	ws, err := openWorkspace(ctx, true, workspace.Options{
		Logger: logger,
		OnRebuild: func(s index.Snapshot) {
			logger.Debug("index rebuilt", "people", s.People.Len(), "locations", s.Locations.Len())
		},
	})
	if err != nil {
		return err
	}

	logger.Info("watching vault", "path", ws.Root())
	if err := ws.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
