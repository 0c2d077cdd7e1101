package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lexnav/lexnav/analysis"
	"github.com/lexnav/lexnav/config"
	"github.com/lexnav/lexnav/resolver"
	"github.com/lexnav/lexnav/workspace"
)

// newService wires a resolution service over a workspace root for the
// one-shot commands. Unlike the servers, a rejected config file fails
// the command instead of degrading to defaults.
func newService(root string) (*resolver.Service, config.Config, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, config.Config{}, err
	}
	cfg, err := config.LoadWorkspace(abs)
	if err != nil {
		return nil, config.Config{}, err
	}
	reg := analysis.NewRegistry()
	cfg.ApplyAliases(reg)
	ws := workspace.New(abs, workspace.Options{
		Registry:    reg,
		LanguageFor: cfg.LanguageFor,
	})
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	svc := resolver.New(reg, resolver.Options{
		ResolveExternal: ws.ResolveExternal,
		IncludeBuiltins: cfg.IncludeBuiltins,
		Logger:          log,
	})
	return svc, cfg, nil
}
