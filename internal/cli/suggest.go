package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/mentions/internal/suggest"
	"github.com/aidanlsb/mentions/internal/ui"
	"github.com/aidanlsb/mentions/internal/workspace"
)

var (
	suggestLine   string
	suggestCol    int
	suggestAccept int
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Show the suggestions for a line of text",
	Long: `Run the trigger detection on a single line as if the cursor were at --col
(byte offset, default end of line) and print the suggestions.

With --accept N the Nth suggestion (1-based) is applied: a missing note is
created and the rewritten line is printed.

Examples:
  mentions suggest --line "met @Jo"
  mentions suggest --line "flew to !Os" --accept 1`,
	Args: cobra.NoArgs,
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().StringVar(&suggestLine, "line", "", "Line of text to complete")
	suggestCmd.Flags().IntVar(&suggestCol, "col", -1, "Cursor byte offset (default: end of line)")
	suggestCmd.Flags().IntVar(&suggestAccept, "accept", 0, "Apply the Nth suggestion and print the new line")
	_ = suggestCmd.MarkFlagRequired("line")
}

// lineBuffer is a one-line editor.
type lineBuffer struct {
	text string
}

func (b *lineBuffer) Line(n int) string {
	if n != 0 {
		return ""
	}
	return b.text
}

func (b *lineBuffer) ReplaceRange(text string, start, end suggest.Position) {
	b.text = b.text[:start.Ch] + text + b.text[end.Ch:]
}

func runSuggest(cmd *cobra.Command, args []string) error {
	col := suggestCol
	if col < 0 || col > len(suggestLine) {
		col = len(suggestLine)
	}

	ws, err := openWorkspace(cmd.Context(), false, workspace.Options{})
	if err != nil {
		return err
	}

	buf := &lineBuffer{text: suggestLine}
	sess := ws.NewSession()
	if sess.Update(suggest.Position{Line: 0, Ch: col}, buf) != suggest.Suggesting {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Hint("no mention before the cursor"))
		return nil
	}
	cands, err := sess.Suggestions()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if suggestAccept == 0 {
		tbl := ui.NewTable(3)
		for i, c := range cands {
			tbl.AddRow(fmt.Sprintf("%d", i+1), suggest.Render(c), ui.Hint(ws.Engine.Link(c.Kind, c.Label)))
		}
		fmt.Fprint(out, tbl.String())
		return nil
	}

	if suggestAccept < 1 || suggestAccept > len(cands) {
		return fmt.Errorf("--accept must be between 1 and %d", len(cands))
	}
	c := cands[suggestAccept-1]
	if err := sess.Commit(c, buf); err != nil {
		fmt.Fprintln(out, buf.text)
		return err
	}
	if c.Op == suggest.OpCreate {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Successf("Created %s", ui.FilePath(ws.Engine.LinkTarget(c.Kind, c.Label))))
	}
	fmt.Fprintln(out, buf.text)
	return nil
}
