// Package analysis locates declaration sites in source text.
//
// Scanners are strictly lexical: each language is a set of line-anchored
// regular expressions swept independently over the text. No parsing or
// scope tracking happens, so results are heuristic, and only the shapes
// the patterns recognize produce definitions.
package analysis

import "github.com/lexnav/lexnav/common"

// Kind classifies a declaration site.
type Kind string

const (
	KindFunction  Kind = "function"
	KindClass     Kind = "class"
	KindMethod    Kind = "method"
	KindVariable  Kind = "variable"
	KindParameter Kind = "parameter"
	KindImport    Kind = "import"
	KindModule    Kind = "module"
)

// Built-in language identifiers.
const (
	LangPython     = "python"
	LangTypeScript = "typescript"
	LangJavaScript = "javascript"
)

// Definition is one declaration site of a name. Import definitions span
// their whole source line; every other kind spans exactly the identifier.
type Definition struct {
	Name string
	Kind Kind
	Span common.Span
}

func (d Definition) IsImport() bool { return d.Kind == KindImport }

// Analyzer is the per-language capability contract. Implementations must
// be safe for concurrent use; the built-ins are stateless.
type Analyzer interface {
	// Extract sweeps text and returns every declaration site the
	// language's patterns recognize, in scan order.
	Extract(text string) []Definition

	// SymbolAt returns the identifier touching the 1-based position, or
	// "" when the position is out of range or not on an identifier.
	SymbolAt(text string, line, column uint32) string

	// ImportPath returns the module specifier whose import binds name in
	// text, or "" when no import binds it.
	ImportPath(text, name string) string
}

// FirstMatch returns the definition a lookup for name should land on:
// the first non-import definition wins, otherwise the first import.
// Returns nil when name has no definition at all.
func FirstMatch(defs []Definition, name string) *Definition {
	var imp *Definition
	for i := range defs {
		if defs[i].Name != name {
			continue
		}
		if !defs[i].IsImport() {
			return &defs[i]
		}
		if imp == nil {
			imp = &defs[i]
		}
	}
	return imp
}
