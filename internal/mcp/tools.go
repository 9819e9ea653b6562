package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aidanlsb/mentions/internal/index"
	"github.com/aidanlsb/mentions/internal/maintainer"
	"github.com/aidanlsb/mentions/internal/suggest"
	"github.com/aidanlsb/mentions/internal/workspace"
)

// RegisterTools adds the mention tools to s.
func RegisterTools(s *server.MCPServer, ws *workspace.Workspace) {
	s.AddTool(listTool(), listHandler(ws))
	s.AddTool(suggestTool(), suggestHandler(ws))
	s.AddTool(createTool(), createHandler(ws))
}

func kindParam() mcp.ToolOption {
	return mcp.WithString("kind",
		mcp.Required(),
		mcp.Description(`"person" or "location"`),
	)
}

func listTool() mcp.Tool {
	return mcp.NewTool("list_mentions",
		mcp.WithDescription("List every indexed person or location with the path of its note."),
		mcp.WithTitleAnnotation("List Mentions"),
		mcp.WithReadOnlyHintAnnotation(true),
		kindParam(),
	)
}

func suggestTool() mcp.Tool {
	return mcp.NewTool("suggest_mentions",
		mcp.WithDescription("Suggest notes whose names start with the query, with the wikilink each would insert. "+
			"When nothing matches, the single suggestion is to create a new note named exactly as the query."),
		mcp.WithTitleAnnotation("Suggest Mentions"),
		mcp.WithReadOnlyHintAnnotation(true),
		kindParam(),
		mcp.WithString("query", mcp.Description("Text typed after the marker (case-sensitive prefix, may be empty)")),
	)
}

func createTool() mcp.Tool {
	return mcp.NewTool("create_mention",
		mcp.WithDescription("Create the note for a person or location and return the wikilink to it. "+
			"An existing note is left untouched."),
		mcp.WithTitleAnnotation("Create Mention"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		kindParam(),
		mcp.WithString("name", mcp.Required(), mcp.Description("Display name, used verbatim in the file name")),
	)
}

func listHandler(ws *workspace.Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind, err := index.ParseKind(req.GetString("kind", ""))
		if err != nil {
			return toolError(err)
		}
		entries := ws.Store.Lookup(kind, "")
		if len(entries) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("No %s notes.", kind.Noun())), nil
		}
		var sb strings.Builder
		for _, e := range entries {
			fmt.Fprintf(&sb, "%c%s\t%s\n", kind.Marker(), e.Name, e.Path)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func suggestHandler(ws *workspace.Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind, err := index.ParseKind(req.GetString("kind", ""))
		if err != nil {
			return toolError(err)
		}
		query := req.GetString("query", "")
		cands, err := ws.Engine.GetSuggestions(suggest.TriggerContext{
			Kind:  kind,
			Query: suggest.FormatQuery(kind, query),
		})
		if err != nil {
			return toolError(err)
		}
		var sb strings.Builder
		for _, c := range cands {
			fmt.Fprintf(&sb, "%s\t%s\n", suggest.Render(c), ws.Engine.Link(c.Kind, c.Label))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func createHandler(ws *workspace.Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind, err := index.ParseKind(req.GetString("kind", ""))
		if err != nil {
			return toolError(err)
		}
		name := req.GetString("name", "")
		if name == "" {
			return toolError(fmt.Errorf("name is required"))
		}

		path, err := ws.Engine.CreateNote(kind, name)
		link := ws.Engine.Link(kind, name)
		switch {
		case suggest.IsExists(err):
			return mcp.NewToolResultText(fmt.Sprintf("Already exists: %s\n%s", path, link)), nil
		case err != nil:
			return toolError(err)
		}
		if err := ws.Dispatch(maintainer.Event{Op: maintainer.OpCreate, Path: path}); err != nil {
			return toolError(fmt.Errorf("note created but index not refreshed: %w", err))
		}
		return mcp.NewToolResultText(fmt.Sprintf("Created %s\n%s", path, link)), nil
	}
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
