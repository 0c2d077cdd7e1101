package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lexnav/lexnav/common"
)

type SymbolsCmd struct {
	File string `arg:"" required:"" help:"Source file to scan."`
	Path string `help:"Path to the workspace root." short:"p" default:"."`
}

func (s *SymbolsCmd) Run() error {
	svc, cfg, err := newService(s.Path)
	if err != nil {
		return err
	}
	path, err := filepath.Abs(s.File)
	if err != nil {
		return err
	}
	path = common.FilePathClean(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	az := svc.Registry().Lookup(cfg.LanguageFor(path))
	if az == nil {
		return fmt.Errorf("no analyzer for %s", s.File)
	}
	for _, d := range az.Extract(string(data)) {
		fmt.Printf("%s\t%s\t%s\n", d.Span, d.Kind, d.Name)
	}
	return nil
}
