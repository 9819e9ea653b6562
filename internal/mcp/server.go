// Package mcp exposes the mention indexes to agents as an MCP tool server.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/aidanlsb/mentions/internal/buildinfo"
	"github.com/aidanlsb/mentions/internal/workspace"
)

const instructions = `Tools for linking people and places in a markdown vault.

Person notes are named "@<name>.md" and location notes "!<name>.md" inside
their configured folders. Use list_mentions to see what exists,
suggest_mentions to turn typed text into a wikilink, and create_mention to add
a note that does not exist yet.`

// NewServer returns an MCP server with the mention tools registered against ws.
func NewServer(ws *workspace.Workspace) *server.MCPServer {
	version := buildinfo.Version
	if version == "" {
		version = "dev"
	}
	s := server.NewMCPServer(
		"mentions",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
	)
	RegisterTools(s, ws)
	return s
}

// Serve runs the server over stdio until the client disconnects.
func Serve(ws *workspace.Workspace) error {
	return server.ServeStdio(NewServer(ws))
}
