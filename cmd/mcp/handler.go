package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lexnav/lexnav/analysis"
	"github.com/lexnav/lexnav/common"
	"github.com/lexnav/lexnav/config"
	"github.com/lexnav/lexnav/resolver"
	"github.com/lexnav/lexnav/workspace"
)

// Handler answers tool calls against a single workspace root.
type Handler struct {
	root    string
	cfg     config.Config
	service *resolver.Service
	log     *slog.Logger
}

// NewHandler wires a handler over root, honoring the workspace's
// lexnav.toml when present. A rejected config degrades to defaults so
// the server still comes up.
func NewHandler(root string, log *slog.Logger) (*Handler, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace root: %w", err)
	}
	cfg, err := config.LoadWorkspace(abs)
	if err != nil {
		log.Warn("workspace config rejected, using defaults", "err", err)
		cfg = config.Default()
	}
	reg := analysis.NewRegistry()
	cfg.ApplyAliases(reg)
	ws := workspace.New(abs, workspace.Options{
		Registry:    reg,
		LanguageFor: cfg.LanguageFor,
	})
	return &Handler{
		root: ws.Root(),
		cfg:  cfg,
		service: resolver.New(reg, resolver.Options{
			ResolveExternal: ws.ResolveExternal,
			IncludeBuiltins: cfg.IncludeBuiltins,
			Logger:          log,
		}),
		log: log,
	}, nil
}

type spanJSON struct {
	StartLine   uint32 `json:"start_line"`
	StartColumn uint32 `json:"start_column"`
	EndLine     uint32 `json:"end_line"`
	EndColumn   uint32 `json:"end_column"`
}

type definitionJSON struct {
	Found bool      `json:"found"`
	File  string    `json:"file,omitempty"`
	Span  *spanJSON `json:"span,omitempty"`
}

type symbolJSON struct {
	Name string   `json:"name"`
	Kind string   `json:"kind"`
	Span spanJSON `json:"span"`
}

func toSpanJSON(s common.Span) spanJSON {
	return spanJSON{
		StartLine:   s.StartLine,
		StartColumn: s.StartColumn,
		EndLine:     s.EndLine,
		EndColumn:   s.EndColumn,
	}
}

// ResolveDefinition handles the resolve_definition tool.
func (h *Handler) ResolveDefinition(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := req.RequireString("file")
	if err != nil {
		return mcp.NewToolResultError("file is required"), nil
	}
	line, err := req.RequireInt("line")
	if err != nil {
		return mcp.NewToolResultError("line is required"), nil
	}
	column, err := req.RequireInt("column")
	if err != nil {
		return mcp.NewToolResultError("column is required"), nil
	}
	if line < 1 || column < 1 {
		return mcp.NewToolResultError("line and column count from 1"), nil
	}

	path := h.resolvePath(file)
	text, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot read %s: %v", file, err)), nil
	}

	target := h.service.ResolveDefinition(ctx, resolver.Request{
		Text:     string(text),
		Language: h.cfg.LanguageFor(path),
		Line:     uint32(line),
		Column:   uint32(column),
		Document: path,
	})
	if target == nil {
		return jsonResult(definitionJSON{Found: false})
	}
	doc := target.Document
	if doc == "" {
		doc = path
	}
	span := toSpanJSON(target.Span)
	return jsonResult(definitionJSON{Found: true, File: doc, Span: &span})
}

// ListSymbols handles the list_symbols tool.
func (h *Handler) ListSymbols(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := req.RequireString("file")
	if err != nil {
		return mcp.NewToolResultError("file is required"), nil
	}
	path := h.resolvePath(file)
	text, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot read %s: %v", file, err)), nil
	}
	az := h.service.Registry().Lookup(h.cfg.LanguageFor(path))
	if az == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no analyzer for %s", file)), nil
	}
	defs := az.Extract(string(text))
	out := make([]symbolJSON, 0, len(defs))
	for _, d := range defs {
		out = append(out, symbolJSON{Name: d.Name, Kind: string(d.Kind), Span: toSpanJSON(d.Span)})
	}
	return jsonResult(out)
}

// resolvePath anchors relative tool paths at the workspace root.
func (h *Handler) resolvePath(file string) string {
	if filepath.IsAbs(file) {
		return common.FilePathClean(file)
	}
	return common.FilePathClean(filepath.Join(h.root, file))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
