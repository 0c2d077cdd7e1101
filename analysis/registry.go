package analysis

import "sort"

// Registry maps language identifiers to analyzers. Registration replaces
// any previous analyzer for the same identifier, so callers can override
// a built-in. The registry is not synchronized: register languages
// during startup, before resolution traffic begins, and treat it as
// read-only afterwards.
type Registry struct {
	analyzers map[string]Analyzer
}

// NewRegistry returns a registry preloaded with the built-in analyzers.
// JavaScript and TypeScript share a single analyzer instance.
func NewRegistry() *Registry {
	r := &Registry{analyzers: make(map[string]Analyzer)}
	r.Register(LangPython, NewPythonAnalyzer())
	ts := NewTypeScriptAnalyzer()
	r.Register(LangTypeScript, ts)
	r.Register(LangJavaScript, ts)
	return r
}

// Register binds an analyzer to a language identifier.
func (r *Registry) Register(language string, a Analyzer) {
	r.analyzers[language] = a
}

// Alias makes alias resolve to the analyzer currently registered for
// language. Unknown targets are ignored.
func (r *Registry) Alias(alias, language string) {
	if a, ok := r.analyzers[language]; ok {
		r.analyzers[alias] = a
	}
}

// Lookup returns the analyzer for a language, or nil when none is
// registered.
func (r *Registry) Lookup(language string) Analyzer {
	return r.analyzers[language]
}

// Languages returns the registered identifiers in sorted order.
func (r *Registry) Languages() []string {
	out := make([]string, 0, len(r.analyzers))
	for lang := range r.analyzers {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// Clear removes every registration, built-ins included.
func (r *Registry) Clear() {
	r.analyzers = make(map[string]Analyzer)
}
