package lsp

import (
	"context"

	protocol "github.com/gluax-lang/lsp"

	"github.com/lexnav/lexnav/common"
	"github.com/lexnav/lexnav/resolver"
)

func (h *Handler) Definition(p *protocol.DefinitionParams) ([]protocol.Location, error) {
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

	target := h.service.ResolveDefinition(context.Background(), resolver.Request{
		Text:     text,
		Language: h.cfg.LanguageFor(path),
		Line:     p.Position.Line + 1,
		Column:   p.Position.Character + 1,
		Document: path,
	})
	if target == nil {
		return nil, nil
	}

	uri := p.TextDocument.URI
	if target.Document != "" {
		uri = common.FilePathToURI(target.Document)
	}
	return []protocol.Location{target.Span.ToLocation(uri)}, nil
}
