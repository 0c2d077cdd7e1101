package lsp

import protocol "github.com/gluax-lang/lsp"

func (h *Handler) DidOpen(p *protocol.DidOpenTextDocumentParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	path, err := pathOf(p.TextDocument.URI)
	if err != nil {
		return nil
	}
	h.fileCache[path] = p.TextDocument.Text
	return nil
}

func (h *Handler) DidChange(p *protocol.DidChangeTextDocumentParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	path, err := pathOf(p.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(p.ContentChanges) == 0 {
		return nil
	}
	// Full sync: the last change carries the whole document.
	h.fileCache[path] = p.ContentChanges[len(p.ContentChanges)-1].Text
	return nil
}

func (h *Handler) DidClose(p *protocol.DidCloseTextDocumentParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	path, err := pathOf(p.TextDocument.URI)
	if err != nil {
		return nil
	}
	delete(h.fileCache, path)
	return nil
}

func (h *Handler) DidSave(p *protocol.DidSaveTextDocumentParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	path, err := pathOf(p.TextDocument.URI)
	if err != nil {
		return nil
	}
	if p.Text != nil {
		h.fileCache[path] = *p.Text
	}
	return nil
}
