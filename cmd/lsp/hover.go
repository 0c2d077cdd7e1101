package lsp

import (
	"fmt"
	"strings"

	protocol "github.com/gluax-lang/lsp"

	"github.com/lexnav/lexnav/analysis"
	"github.com/lexnav/lexnav/common"
)

// Hover previews the line that defines the identifier under the cursor,
// fenced with the document's language id.
func (h *Handler) Hover(p *protocol.HoverParams) (*protocol.Hover, error) {
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
	lang := h.cfg.LanguageFor(path)
	az := h.service.Registry().Lookup(lang)
	if az == nil {
		return nil, nil
	}

	name := az.SymbolAt(text, p.Position.Line+1, p.Position.Character+1)
	if name == "" {
		return nil, nil
	}
	def := analysis.FirstMatch(az.Extract(text), name)
	if def == nil {
		return nil, nil
	}
	line, ok := common.NewLineIndex(text).Line(def.Span.StartLine)
	if !ok {
		return nil, nil
	}

	content := fmt.Sprintf("```%s\n%s\n```\n", lang, strings.TrimSpace(line))
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  "markdown",
			Value: content,
		},
	}, nil
}
