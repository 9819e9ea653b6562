package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/mentions/internal/parser"
	"github.com/aidanlsb/mentions/internal/ui"
	"github.com/aidanlsb/mentions/internal/workspace"
)

var showRaw bool

var showCmd = &cobra.Command{
	Use:   "show person|location NAME",
	Short: "Print a person or location note",
	Long: `Print the note for an exact name. Frontmatter is shown as a field list
and the body is rendered as markdown when stdout is a terminal.

Examples:
  mentions show person "Freya Stark"
  mentions show location Oslo --raw`,
	Args: cobra.ExactArgs(2),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the file without rendering")
}

func runShow(cmd *cobra.Command, args []string) error {
	kind, err := parseKindArg(args[0])
	if err != nil {
		return err
	}

	ws, err := openWorkspace(cmd.Context(), false, workspace.Options{})
	if err != nil {
		return err
	}
	path, ok := ws.Store.Snapshot().For(kind).Get(args[1])
	if !ok {
		return fmt.Errorf("%s not found: %s", kind.Noun(), args[1])
	}
	content, err := ws.Dir.ReadFile(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	term := ui.DetectTerminal(os.Stdout)
	if showRaw || !term.TTY {
		fmt.Fprint(out, content)
		if !strings.HasSuffix(content, "\n") {
			fmt.Fprintln(out)
		}
		return nil
	}

	fmt.Fprintln(out, ui.FilePath(path))
	fm, err := parser.ParseFrontmatter(content)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Warningf("invalid frontmatter: %v", err))
	}
	if fm != nil {
		for _, k := range fm.Keys() {
			fmt.Fprintf(out, "%s %v\n", ui.Hint(k+":"), fm.Fields[k])
		}
	}

	body, _ := parser.Body(content)
	rendered, err := ui.RenderMarkdown(body, term.ContentWidth(ui.MarkdownRenderMargin))
	if err != nil {
		return fmt.Errorf("failed to render note: %w", err)
	}
	fmt.Fprint(out, rendered)
	return nil
}
