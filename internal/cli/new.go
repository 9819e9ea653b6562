package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/mentions/internal/suggest"
	"github.com/aidanlsb/mentions/internal/ui"
	"github.com/aidanlsb/mentions/internal/workspace"
)

var newCmd = &cobra.Command{
	Use:   "new person|location NAME",
	Short: "Create a person or location note",
	Long: `Create "<folder>@NAME.md" or "<folder>!NAME.md" with a heading and print
the wikilink to it. The name is used verbatim. Existing notes are never
overwritten.

Examples:
  mentions new person "Freya Stark"
  mentions new location Oslo`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"person", "location"},
	RunE:      runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	kind, err := parseKindArg(args[0])
	if err != nil {
		return err
	}
	name := args[1]
	if name == "" {
		return fmt.Errorf("name must not be empty")
	}

	ws, err := workspace.Open(getVaultPath(), workspace.Options{Logger: newLogger(false)})
	if err != nil {
		return fmt.Errorf("failed to open vault: %w", err)
	}
	if err := ws.Maintainer.EnsureFolders(); err != nil {
		return err
	}

	path, err := ws.Engine.CreateNote(kind, name)
	if suggest.IsExists(err) {
		return fmt.Errorf("%s already exists: %s", kind.Noun(), path)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Successf("Created %s", ui.FilePath(path)))
	fmt.Fprintln(out, ws.Engine.Link(kind, name))
	return nil
}
