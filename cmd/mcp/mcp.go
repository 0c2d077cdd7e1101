// Package mcp exposes definition resolution as tools over the model
// context protocol, so agent harnesses can navigate code the way
// editors do.
package mcp

import (
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer registers the lexnav tools on a stdio-ready MCP server.
func NewServer(h *Handler) *server.MCPServer {
	s := server.NewMCPServer(
		"lexnav",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	resolve := mcp.NewTool("resolve_definition",
		mcp.WithDescription("Resolve the symbol at a source position to its definition site. Follows imports to other workspace files. Lines and columns count from 1."),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Source file, absolute or relative to the workspace root"),
		),
		mcp.WithNumber("line",
			mcp.Required(),
			mcp.Description("1-based line of the position"),
		),
		mcp.WithNumber("column",
			mcp.Required(),
			mcp.Description("1-based column of the position"),
		),
	)
	s.AddTool(resolve, h.ResolveDefinition)

	symbols := mcp.NewTool("list_symbols",
		mcp.WithDescription("List every declaration site recognized in a source file: functions, classes, variables and imports."),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Source file, absolute or relative to the workspace root"),
		),
	)
	s.AddTool(symbols, h.ListSymbols)

	return s
}

// RunMCP serves the tools on stdin/stdout until the client disconnects.
// Logs go to stderr; stdout carries protocol traffic only.
func RunMCP(root string) error {
	level := new(slog.LevelVar)
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	h, err := NewHandler(root, log)
	if err != nil {
		return err
	}
	level.Set(h.cfg.SlogLevel())
	return server.ServeStdio(NewServer(h))
}
