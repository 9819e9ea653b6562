package mcp

import (
	"context"
	"strings"
	"testing"

	mcppkg "github.com/mark3labs/mcp-go/mcp"

	"github.com/aidanlsb/mentions/internal/testutil"
	"github.com/aidanlsb/mentions/internal/workspace"
)

func newTestWorkspace(t *testing.T) (*workspace.Workspace, *testutil.TestVault) {
	t.Helper()
	tv := testutil.NewTestVault(t).
		WithPerson("_people/", "John").
		WithPerson("_people/", "Joanna").
		WithLocation("_locations/", "Oslo").
		Build()
	ws, err := workspace.Open(tv.Path, workspace.Options{})
	if err != nil {
		t.Fatalf("open workspace: %v", err)
	}
	if err := ws.Start(context.Background()); err != nil {
		t.Fatalf("start workspace: %v", err)
	}
	return ws, tv
}

func call(t *testing.T, h func(context.Context, mcppkg.CallToolRequest) (*mcppkg.CallToolResult, error), args map[string]any) *mcppkg.CallToolResult {
	t.Helper()
	req := mcppkg.CallToolRequest{Params: mcppkg.CallToolParams{Arguments: args}}
	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return res
}

func callResultText(t *testing.T, res *mcppkg.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatalf("expected non-empty tool result")
	}
	text, ok := mcppkg.AsTextContent(res.Content[0])
	if !ok {
		t.Fatalf("expected text content")
	}
	return text.Text
}

func TestNewServerRegistersTools(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	if srv := NewServer(ws); srv == nil {
		t.Fatalf("expected MCP server instance")
	}
}

func TestListMentions(t *testing.T) {
	ws, _ := newTestWorkspace(t)

	res := call(t, listHandler(ws), map[string]any{"kind": "person"})
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", callResultText(t, res))
	}
	want := "@Joanna\t_people/@Joanna.md\n@John\t_people/@John.md\n"
	if got := callResultText(t, res); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	res = call(t, listHandler(ws), map[string]any{"kind": "location"})
	if got := callResultText(t, res); !strings.Contains(got, "!Oslo\t_locations/!Oslo.md") {
		t.Errorf("locations = %q", got)
	}
}

func TestListMentionsRejectsUnknownKind(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	res := call(t, listHandler(ws), map[string]any{"kind": "animal"})
	if !res.IsError {
		t.Fatalf("expected tool error, got %q", callResultText(t, res))
	}
}

func TestSuggestMentions(t *testing.T) {
	ws, _ := newTestWorkspace(t)

	res := call(t, suggestHandler(ws), map[string]any{"kind": "person", "query": "Jo"})
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", callResultText(t, res))
	}
	want := "Joanna\t[[_people/@Joanna.md|@Joanna]]\nJohn\t[[_people/@John.md|@John]]\n"
	if got := callResultText(t, res); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSuggestMentionsOffersCreate(t *testing.T) {
	ws, _ := newTestWorkspace(t)

	res := call(t, suggestHandler(ws), map[string]any{"kind": "location", "query": "Bergen"})
	want := "New Location: Bergen\t[[_locations/!Bergen.md|!Bergen]]\n"
	if got := callResultText(t, res); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCreateMention(t *testing.T) {
	ws, tv := newTestWorkspace(t)

	res := call(t, createHandler(ws), map[string]any{"kind": "person", "name": "Mary Ann"})
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", callResultText(t, res))
	}
	got := callResultText(t, res)
	if !strings.HasPrefix(got, "Created _people/@Mary Ann.md") {
		t.Errorf("result = %q", got)
	}
	if !strings.Contains(got, "[[_people/@Mary Ann.md|@Mary Ann]]") {
		t.Errorf("result missing link: %q", got)
	}
	tv.AssertFileContent("_people/@Mary Ann.md", "# Mary Ann")

	// The index sees the new note right away.
	res = call(t, suggestHandler(ws), map[string]any{"kind": "person", "query": "Mary"})
	if got := callResultText(t, res); !strings.HasPrefix(got, "Mary Ann\t") {
		t.Errorf("suggest after create = %q", got)
	}
}

func TestCreateMentionExisting(t *testing.T) {
	ws, tv := newTestWorkspace(t)

	res := call(t, createHandler(ws), map[string]any{"kind": "person", "name": "John"})
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", callResultText(t, res))
	}
	if got := callResultText(t, res); !strings.HasPrefix(got, "Already exists: _people/@John.md") {
		t.Errorf("result = %q", got)
	}
	tv.AssertFileContent("_people/@John.md", "# John\n")
}

func TestCreateMentionRequiresName(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	res := call(t, createHandler(ws), map[string]any{"kind": "person"})
	if !res.IsError {
		t.Fatalf("expected tool error, got %q", callResultText(t, res))
	}
}
