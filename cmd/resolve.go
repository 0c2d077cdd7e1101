package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lexnav/lexnav/common"
	"github.com/lexnav/lexnav/resolver"
)

type ResolveCmd struct {
	File   string `arg:"" required:"" help:"Source file to resolve in."`
	Line   uint32 `help:"1-based line of the position." short:"l" required:""`
	Column uint32 `help:"1-based column of the position." short:"c" required:""`
	Path   string `help:"Path to the workspace root." short:"p" default:"."`
}

func (r *ResolveCmd) Run() error {
	if r.Line < 1 || r.Column < 1 {
		return fmt.Errorf("line and column count from 1")
	}
	svc, cfg, err := newService(r.Path)
	if err != nil {
		return err
	}
	path, err := filepath.Abs(r.File)
	if err != nil {
		return err
	}
	path = common.FilePathClean(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	target := svc.ResolveDefinition(context.Background(), resolver.Request{
		Text:     string(data),
		Language: cfg.LanguageFor(path),
		Line:     r.Line,
		Column:   r.Column,
		Document: path,
	})
	if target == nil {
		return fmt.Errorf("no definition found at %s:%d:%d", r.File, r.Line, r.Column)
	}

	doc := target.Document
	if doc == "" {
		doc = path
	}
	fmt.Printf("%s:%s\n", doc, target.Span)
	return nil
}
