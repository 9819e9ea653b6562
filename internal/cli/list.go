package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/mentions/internal/index"
	"github.com/aidanlsb/mentions/internal/ui"
	"github.com/aidanlsb/mentions/internal/workspace"
)

var listCmd = &cobra.Command{
	Use:   "list [people|locations]",
	Short: "List indexed people and locations",
	Long: `List the person and location notes found in the vault, in index order.

Examples:
  mentions list
  mentions list people
  mentions list locations`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"people", "locations"},
	RunE:      runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	kinds := []index.Kind{index.KindName, index.KindLocation}
	if len(args) == 1 {
		kind, err := parseKindArg(args[0])
		if err != nil {
			return err
		}
		kinds = []index.Kind{kind}
	}

	ws, err := openWorkspace(cmd.Context(), false, workspace.Options{})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, kind := range kinds {
		entries := ws.Store.Lookup(kind, "")
		if len(kinds) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%s %s\n", ui.Header(kindTitle(kind)), ui.Hint("("+ui.Count(len(entries), kind.Noun(), pluralNoun(kind))+")"))
		}
		if len(entries) == 0 {
			fmt.Fprintln(out, ui.Hint("No "+pluralNoun(kind)+"."))
			continue
		}
		tbl := ui.NewTable(2)
		for _, e := range entries {
			tbl.AddRow(ui.Mention(kind, e.Name), ui.FilePath(e.Path))
		}
		fmt.Fprint(out, tbl.String())
	}
	return nil
}

func pluralNoun(kind index.Kind) string {
	if kind == index.KindLocation {
		return "locations"
	}
	return "people"
}

func kindTitle(kind index.Kind) string {
	if kind == index.KindLocation {
		return "Locations"
	}
	return "People"
}
