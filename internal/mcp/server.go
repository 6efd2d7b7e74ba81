// Package mcp exposes the pull request aggregation as MCP tools over
// streamable HTTP, one of the presentation collaborators consuming the
// controller's item-building surface.
package mcp

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type ToolAdapter interface {
	ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

type Config struct {
	ToolAdapters map[string]ToolAdapter
	Options      []server.StreamableHTTPOption
}

type Server struct {
	MCP     *server.MCPServer
	HTTP    *server.StreamableHTTPServer
	Handler http.Handler
}

func New(cfg Config) *Server {
	mcpServer := server.NewMCPServer(
		"prdeck",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	toolDefinitions := map[string]mcp.Tool{
		"list_open_prs": mcp.NewTool("list_open_prs",
			mcp.WithDescription("List the organization's open pull requests awaiting review, the user's own first, newest first. Optionally filtered by a query."),
			mcp.WithString("query",
				mcp.Description("Case-insensitive pattern matched against PR title or repository name"),
			),
		),
		"list_approved_prs": mcp.NewTool("list_approved_prs",
			mcp.WithDescription("List the organization's open pull requests that already count as approved: two or more approvers, or approved by the configured user."),
		),
	}

	for name, adapter := range cfg.ToolAdapters {
		tool := toolDefinitions[name]
		mcpServer.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return adapter.ToolAdapter(ctx, req)
		})
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer, cfg.Options...)

	return &Server{
		MCP:     mcpServer,
		HTTP:    httpServer,
		Handler: httpServer,
	}
}
