// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes plasmerge's three-way structural merge as an MCP tool.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	plasmerge "github.com/plasmerge/plasmerge"
)

const serverInstructions = `plasmerge MCP server — three-way structural merges a design tool's regenerated component source against a developer's edited copy, preserving developer edits while absorbing tool-side changes.

Configuration: all defaults are configurable via PLASMERGE_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- PLASMERGE_HELPER — default managed-call helper object name, when a component's own source doesn't name one
- PLASMERGE_MARKER_START / PLASMERGE_MARKER_END (default: plasmic-managed-start / plasmic-managed-end) — bounds of the managed region, which the merged output copies verbatim from the new source
- PLASMERGE_REPORT_VERBOSE (default: true) — include conflict sites and rename propagations in the merge_component report`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "plasmerge", Version: plasmerge.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge_component",
		Description: "Three-way merge a design tool's freshly regenerated component source against a developer's edited copy. Optionally supply the last-synced base source and base/new nameInId-to-uuid maps so renamed entities are tracked across versions; without them every entity is paired by name only. Returns the merged source plus a report of how many nodes were merged, emitted verbatim, or dropped, and any attribute conflicts left for manual resolution.",
	}, handleMergeComponent)
}

// sanitizeError strips absolute filesystem paths from error messages to
// prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
