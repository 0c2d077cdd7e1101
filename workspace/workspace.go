// Package workspace turns import specifiers into files on disk, giving
// the resolution service a concrete external collaborator scoped to one
// workspace root.
package workspace

import (
	"context"
	"os"
	"strings"

	"github.com/lexnav/lexnav/analysis"
	"github.com/lexnav/lexnav/common"
	"github.com/lexnav/lexnav/resolver"
)

// Overlay returns the open-editor content of a cleaned absolute path.
// Overlay content takes precedence over what is on disk.
type Overlay func(path string) (string, bool)

// Options configures a Resolver.
type Options struct {
	// Registry supplies the analyzers used to scan resolved files. Nil
	// uses the built-in registry.
	Registry *analysis.Registry

	// LanguageFor maps a file path to a language identifier, "" meaning
	// unknown. Nil uses the built-in extension table.
	LanguageFor func(path string) string

	// Overlay supplies open-editor content. Nil reads disk only.
	Overlay Overlay
}

// Resolver locates the file an import specifier points at and the
// definition of a symbol within it. Specifiers never resolve to files
// outside the workspace root.
type Resolver struct {
	root    string
	reg     *analysis.Registry
	langFor func(string) string
	overlay Overlay
}

// New builds a Resolver rooted at root.
func New(root string, opts Options) *Resolver {
	r := &Resolver{
		root:    common.FilePathClean(root),
		reg:     opts.Registry,
		langFor: opts.LanguageFor,
		overlay: opts.Overlay,
	}
	if r.reg == nil {
		r.reg = analysis.NewRegistry()
	}
	if r.langFor == nil {
		r.langFor = analysis.LanguageForPath
	}
	return r
}

// Root returns the cleaned workspace root.
func (r *Resolver) Root() string { return r.root }

// ResolveExternal is a resolver.External. It maps importPath to
// candidate files around fromDocument, reads the first one that exists,
// and returns the definition of symbol inside it. The result is
// (nil, nil) when the specifier is bare, escapes the root, or names no
// file; a read failure on an existing candidate is returned as an error.
func (r *Resolver) ResolveExternal(ctx context.Context, symbol, importPath, fromDocument string) (*resolver.Target, error) {
	from := common.FilePathClean(fromDocument)
	for _, cand := range r.candidates(importPath, from) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !r.inside(cand) {
			continue
		}
		text, ok, err := r.read(cand)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		return r.find(cand, text, symbol), nil
	}
	return nil, nil
}

// candidates picks the specifier grammar by the importing document's
// language family.
func (r *Resolver) candidates(importPath, from string) []string {
	switch r.langFor(from) {
	case analysis.LangPython:
		return pythonCandidates(r.root, importPath, from)
	case analysis.LangTypeScript, analysis.LangJavaScript:
		return scriptCandidates(importPath, from)
	}
	return nil
}

func (r *Resolver) inside(path string) bool {
	return strings.HasPrefix(path+"/", r.root+"/")
}

// read returns the content of path, preferring an overlay over disk.
func (r *Resolver) read(path string) (string, bool, error) {
	if r.overlay != nil {
		if text, ok := r.overlay(path); ok {
			return text, true, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// find extracts path's definitions and picks the one a lookup for
// symbol lands on. A file that exists but does not define symbol is a
// final miss, not a reason to try further candidates.
func (r *Resolver) find(path, text, symbol string) *resolver.Target {
	az := r.reg.Lookup(r.langFor(path))
	if az == nil {
		return nil
	}
	def := analysis.FirstMatch(az.Extract(text), symbol)
	if def == nil {
		return nil
	}
	return &resolver.Target{Document: path, Span: def.Span}
}
