package lsp

import (
	protocol "github.com/gluax-lang/lsp"

	"github.com/lexnav/lexnav/analysis"
)

// References lists every whole-word occurrence of the identifier under
// the cursor within the same document. The search is lexical, so
// shadowed and commented occurrences are included.
func (h *Handler) References(p *protocol.ReferenceParams) ([]protocol.Location, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.service == nil {
		return nil, nil
	}
	path, err := pathOf(p.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	text, ok := h.text(path)
	if !ok {
		return nil, nil
	}
	az := h.service.Registry().Lookup(h.cfg.LanguageFor(path))
	if az == nil {
		return nil, nil
	}

	name := az.SymbolAt(text, p.Position.Line+1, p.Position.Character+1)
	if name == "" {
		return nil, nil
	}
	def := analysis.FirstMatch(az.Extract(text), name)

	var locations []protocol.Location
	for _, span := range analysis.Occurrences(text, name) {
		if !p.Context.IncludeDeclaration && def != nil && def.Span.Contains(span) {
			continue
		}
		locations = append(locations, span.ToLocation(p.TextDocument.URI))
	}
	return locations, nil
}
