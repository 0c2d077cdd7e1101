// Package lsp serves definition, hover and reference requests over the
// language server protocol on stdio.
package lsp

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	protocol "github.com/gluax-lang/lsp"

	"github.com/lexnav/lexnav/analysis"
	"github.com/lexnav/lexnav/common"
	"github.com/lexnav/lexnav/config"
	"github.com/lexnav/lexnav/resolver"
	"github.com/lexnav/lexnav/workspace"
)

// RunLSP serves the protocol on stdin/stdout until the client
// disconnects. Logs go to stderr; stdout carries protocol traffic only.
func RunLSP() error {
	return NewHandler().Serve(context.Background())
}

type Handler struct {
	*protocol.Server
	mu        sync.Mutex
	fileCache map[string]string // cleaned absolute path -> open buffer
	workspace string
	cfg       config.Config
	service   *resolver.Service
	log       *slog.Logger
	level     *slog.LevelVar
}

func NewHandler() *Handler {
	level := new(slog.LevelVar)
	h := &Handler{
		fileCache: make(map[string]string),
		cfg:       config.Default(),
		log:       slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
		level:     level,
	}
	h.Server = protocol.NewServer(os.Stdin, os.Stdout, h)
	return h
}

func (h *Handler) Initialize(p *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	if p.WorkspaceFolders == nil || len(*p.WorkspaceFolders) == 0 {
		return nil, fmt.Errorf("no workspace folder detected")
	}
	folders := *p.WorkspaceFolders
	root, err := uriToFilePath(folders[0].URI)
	if err != nil {
		return nil, fmt.Errorf("invalid workspace folder: %w", err)
	}
	h.configure(root)
	h.log.Info("workspace initialized", "root", h.workspace)
	return &protocol.InitializeResult{Capabilities: protocol.ServerCapabilities{
		HoverProvider: protocol.NewHoverProviderBool(true),
		TextDocumentSync: protocol.NewTextDocumentSyncOptions(protocol.TextDocumentSyncOptions{
			OpenClose: true,
			Change:    protocol.TextDocumentSyncKindFull,
			Save: &protocol.SaveOptions{
				IncludeText: true,
			},
		}),
		DefinitionProvider: true,
	}}, nil
}

func (h *Handler) Initialized() error {
	h.log.Debug("client ready")
	return nil
}

// configure loads the workspace configuration and wires the resolution
// service over it. A rejected config file degrades to defaults so the
// server still comes up.
func (h *Handler) configure(root string) {
	cfg, err := config.LoadWorkspace(root)
	if err != nil {
		h.log.Warn("workspace config rejected, using defaults", "err", err)
		cfg = config.Default()
	}
	h.cfg = cfg
	h.level.Set(cfg.SlogLevel())
	h.workspace = common.FilePathClean(root)

	reg := analysis.NewRegistry()
	cfg.ApplyAliases(reg)
	ws := workspace.New(root, workspace.Options{
		Registry:    reg,
		LanguageFor: cfg.LanguageFor,
		Overlay:     h.overlay,
	})
	h.service = resolver.New(reg, resolver.Options{
		ResolveExternal: ws.ResolveExternal,
		IncludeBuiltins: cfg.IncludeBuiltins,
		Logger:          h.log,
	})
}

// overlay exposes open buffers to the workspace resolver. The caller
// already holds h.mu: every handler that reaches the resolver locks it
// first, so the map must be read without locking again.
func (h *Handler) overlay(path string) (string, bool) {
	text, ok := h.fileCache[path]
	return text, ok
}

// text returns the current content of path: the open buffer when the
// client sent one, the on-disk content otherwise.
func (h *Handler) text(path string) (string, bool) {
	if text, ok := h.fileCache[path]; ok {
		return text, true
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

func pathOf(uri string) (string, error) {
	p, err := uriToFilePath(uri)
	if err != nil {
		return "", err
	}
	return common.FilePathClean(p), nil
}

// uriToFilePath converts a file:// URI into an absolute filesystem path.
func uriToFilePath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid URI: %w", err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("unsupported scheme %q (must be file)", u.Scheme)
	}

	p, err := url.PathUnescape(u.Path)
	if err != nil {
		return "", fmt.Errorf("cannot unescape path: %w", err)
	}

	// On Windows, strip the leading slash before the drive letter
	if runtime.GOOS == "windows" {
		if strings.HasPrefix(p, "/") && len(p) >= 3 && p[2] == ':' {
			p = p[1:]
		}
	}

	return filepath.FromSlash(p), nil
}
