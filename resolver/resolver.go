// Package resolver orchestrates symbol resolution: a local pass over the
// requested document first, then an optional hop to an external
// collaborator for symbols that are only bound by an import.
package resolver

import (
	"context"
	"log/slog"

	"github.com/lexnav/lexnav/analysis"
	"github.com/lexnav/lexnav/common"
)

// Target is a navigation destination. An empty Document means the span
// lies in the document the request named.
type Target struct {
	Document string
	Span     common.Span
}

// External resolves a definition outside the requested document. symbol
// is the identifier under the cursor, importPath the module specifier
// that binds it, and fromDocument the requesting document. Returning
// (nil, nil) means the collaborator could not place the symbol; errors
// are logged by the caller and treated the same way.
type External func(ctx context.Context, symbol, importPath, fromDocument string) (*Target, error)

// Options configures a Service.
type Options struct {
	// ResolveExternal is invoked for import-bound symbols with no local
	// definition. Nil disables the external phase.
	ResolveExternal External

	// IncludeBuiltins is carried for analyzers that recognize a
	// language's built-in symbols. The bundled analyzers ignore it.
	IncludeBuiltins bool

	// Logger receives collaborator failures at warn level. Nil discards.
	Logger *slog.Logger
}

// Request identifies a position in a document.
type Request struct {
	Text     string
	Language string
	Line     uint32
	Column   uint32
	Document string
}

// Service resolves definition requests against a registry of language
// analyzers. Safe for concurrent use once constructed, as long as the
// registry is no longer being mutated.
type Service struct {
	registry        *analysis.Registry
	external        External
	includeBuiltins bool
	log             *slog.Logger
}

// New builds a Service over registry.
func New(registry *analysis.Registry, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{
		registry:        registry,
		external:        opts.ResolveExternal,
		includeBuiltins: opts.IncludeBuiltins,
		log:             log,
	}
}

// Registry exposes the service's registry so callers can add or replace
// language analyzers before serving requests.
func (s *Service) Registry() *analysis.Registry { return s.registry }

// IncludeBuiltins reports the carried builtins flag for analyzers that
// want to honor it.
func (s *Service) IncludeBuiltins() bool { return s.includeBuiltins }

// Close releases the service's language bindings. Resolution after
// Close resolves nothing.
func (s *Service) Close() {
	s.registry.Clear()
}

// ResolveDefinition runs the two-phase protocol and returns a target or
// nil. It never fails: unknown languages, empty positions, canceled
// contexts and collaborator errors all degrade to nil.
//
// The context is consulted at the two points where time passes: right
// before the external collaborator is invoked, and again when its result
// arrives. A result that lands after cancellation is discarded.
func (s *Service) ResolveDefinition(ctx context.Context, req Request) *Target {
	az := s.registry.Lookup(req.Language)
	if az == nil {
		return nil
	}
	name := az.SymbolAt(req.Text, req.Line, req.Column)
	if name == "" {
		return nil
	}
	if def := analysis.FirstMatch(az.Extract(req.Text), name); def != nil && !def.IsImport() {
		return &Target{Span: def.Span}
	} else if def != nil {
		// Only an import binds the name locally. Prefer a real
		// definition from the external phase; fall back to the import
		// line itself.
		if t := s.resolveExternal(ctx, az, name, req); t != nil {
			return t
		}
		return &Target{Span: def.Span}
	}
	return s.resolveExternal(ctx, az, name, req)
}

func (s *Service) resolveExternal(ctx context.Context, az analysis.Analyzer, name string, req Request) *Target {
	if s.external == nil {
		return nil
	}
	path := az.ImportPath(req.Text, name)
	if path == "" {
		return nil
	}
	if ctx.Err() != nil {
		return nil
	}
	target, err := s.external(ctx, name, path, req.Document)
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		s.log.Warn("external resolution failed",
			"symbol", name,
			"import", path,
			"document", req.Document,
			"err", err)
		return nil
	}
	return target
}
