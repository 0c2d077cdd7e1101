package resolver

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexnav/lexnav/analysis"
	"github.com/lexnav/lexnav/common"
)

// recorder is a scripted external collaborator.
type recorder struct {
	calls  int
	symbol string
	path   string
	from   string
	target *Target
	err    error
}

func (r *recorder) resolve(_ context.Context, symbol, importPath, fromDocument string) (*Target, error) {
	r.calls++
	r.symbol, r.path, r.from = symbol, importPath, fromDocument
	return r.target, r.err
}

// hollowAnalyzer binds no local definitions but reports every symbol as
// imported from path.
type hollowAnalyzer struct{ path string }

func (h *hollowAnalyzer) Extract(string) []analysis.Definition { return nil }
func (h *hollowAnalyzer) SymbolAt(text string, line, column uint32) string {
	return analysis.SymbolAtPosition(text, line, column)
}
func (h *hollowAnalyzer) ImportPath(string, string) string { return h.path }

func tsImportSource() string {
	return strings.Join([]string{
		"import { format } from './utils'",
		"",
		"format()",
	}, "\n")
}

func tsImportRequest() Request {
	return Request{
		Text:     tsImportSource(),
		Language: analysis.LangTypeScript,
		Line:     3,
		Column:   1,
		Document: "/ws/app.ts",
	}
}

func importLineEnd(t *testing.T, text string) uint32 {
	t.Helper()
	return uint32(len(strings.Split(text, "\n")[0])) + 1
}

func TestResolveDefinition_LocalDefinitionWins(t *testing.T) {
	rec := &recorder{target: &Target{Document: "/ws/lib.py"}}
	svc := New(analysis.NewRegistry(), Options{ResolveExternal: rec.resolve})
	src := strings.Join([]string{
		"from lib import fetch",
		"",
		"def fetch():",
		"    pass",
	}, "\n")

	got := svc.ResolveDefinition(context.Background(), Request{
		Text: src, Language: analysis.LangPython, Line: 3, Column: 5, Document: "/ws/app.py",
	})

	require.NotNil(t, got)
	assert.Empty(t, got.Document, "local targets stay in the requested document")
	assert.Equal(t, "3:5-3:10", got.Span.String())
	assert.Zero(t, rec.calls, "a local definition never consults the collaborator")
}

func TestResolveDefinition_ImportBoundGoesExternal(t *testing.T) {
	want := &Target{Document: "/ws/utils.ts", Span: common.SpanNew(10, 17, 10, 23)}
	rec := &recorder{target: want}
	svc := New(analysis.NewRegistry(), Options{ResolveExternal: rec.resolve})

	got := svc.ResolveDefinition(context.Background(), tsImportRequest())

	assert.Same(t, want, got)
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, "format", rec.symbol)
	assert.Equal(t, "./utils", rec.path)
	assert.Equal(t, "/ws/app.ts", rec.from)
}

func TestResolveDefinition_ImportBoundWithoutCollaborator(t *testing.T) {
	svc := New(analysis.NewRegistry(), Options{})
	req := tsImportRequest()

	got := svc.ResolveDefinition(context.Background(), req)

	require.NotNil(t, got, "the import line itself is still a destination")
	assert.Empty(t, got.Document)
	assert.Equal(t, uint32(1), got.Span.StartLine)
	assert.Equal(t, uint32(1), got.Span.StartColumn)
	assert.Equal(t, importLineEnd(t, req.Text), got.Span.EndColumn)
}

func TestResolveDefinition_ExternalMissFallsBackToImportLine(t *testing.T) {
	rec := &recorder{} // returns (nil, nil)
	svc := New(analysis.NewRegistry(), Options{ResolveExternal: rec.resolve})

	got := svc.ResolveDefinition(context.Background(), tsImportRequest())

	require.NotNil(t, got)
	assert.Empty(t, got.Document)
	assert.Equal(t, uint32(1), got.Span.StartLine)
	assert.Equal(t, 1, rec.calls)
}

func TestResolveDefinition_ExternalErrorIsLoggedAndSwallowed(t *testing.T) {
	rec := &recorder{err: errors.New("socket closed")}
	var buf bytes.Buffer
	svc := New(analysis.NewRegistry(), Options{
		ResolveExternal: rec.resolve,
		Logger:          slog.New(slog.NewTextHandler(&buf, nil)),
	})

	got := svc.ResolveDefinition(context.Background(), tsImportRequest())

	require.NotNil(t, got, "collaborator failure degrades to the import line")
	assert.Equal(t, uint32(1), got.Span.StartLine)
	assert.Contains(t, buf.String(), "external resolution failed")
	assert.Contains(t, buf.String(), "socket closed")
}

func TestResolveDefinition_UnknownLanguage(t *testing.T) {
	rec := &recorder{target: &Target{Document: "/ws/x"}}
	svc := New(analysis.NewRegistry(), Options{ResolveExternal: rec.resolve})

	got := svc.ResolveDefinition(context.Background(), Request{
		Text: "let x = 1", Language: "rust", Line: 1, Column: 5,
	})

	assert.Nil(t, got)
	assert.Zero(t, rec.calls)
}

func TestResolveDefinition_NoIdentifierAtPosition(t *testing.T) {
	svc := New(analysis.NewRegistry(), Options{})

	got := svc.ResolveDefinition(context.Background(), Request{
		Text: "x = 1", Language: analysis.LangPython, Line: 1, Column: 3,
	})

	assert.Nil(t, got)
}

func TestResolveDefinition_UnboundSymbolResolvesNowhere(t *testing.T) {
	rec := &recorder{target: &Target{Document: "/ws/x"}}
	svc := New(analysis.NewRegistry(), Options{ResolveExternal: rec.resolve})

	got := svc.ResolveDefinition(context.Background(), Request{
		Text: "x = computeThing()", Language: analysis.LangPython, Line: 1, Column: 5,
	})

	assert.Nil(t, got)
	assert.Zero(t, rec.calls, "no import path, no external hop")
}

func TestResolveDefinition_CustomAnalyzerGoesStraightExternal(t *testing.T) {
	rec := &recorder{target: &Target{Document: "/ws/vendor/libx.go"}}
	svc := New(analysis.NewRegistry(), Options{ResolveExternal: rec.resolve})
	svc.Registry().Register("hollow", &hollowAnalyzer{path: "libx"})

	got := svc.ResolveDefinition(context.Background(), Request{
		Text: "callThing()", Language: "hollow", Line: 1, Column: 1, Document: "/ws/main",
	})

	assert.Same(t, rec.target, got)
	assert.Equal(t, "callThing", rec.symbol)
	assert.Equal(t, "libx", rec.path)
}

func TestResolveDefinition_CanceledBeforeExternalPhase(t *testing.T) {
	rec := &recorder{target: &Target{Document: "/ws/utils.ts"}}
	svc := New(analysis.NewRegistry(), Options{ResolveExternal: rec.resolve})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := svc.ResolveDefinition(ctx, tsImportRequest())

	assert.Zero(t, rec.calls, "cancellation suppresses the external phase")
	require.NotNil(t, got, "the already-computed import line is still returned")
	assert.Empty(t, got.Document)
	assert.Equal(t, uint32(1), got.Span.StartLine)
}

func TestResolveDefinition_CancellationDuringExternalDiscardsResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	external := func(context.Context, string, string, string) (*Target, error) {
		cancel()
		return &Target{Document: "/ws/utils.ts"}, nil
	}
	svc := New(analysis.NewRegistry(), Options{ResolveExternal: external})

	got := svc.ResolveDefinition(ctx, tsImportRequest())

	require.NotNil(t, got)
	assert.Empty(t, got.Document, "a late external result is discarded")
	assert.Equal(t, uint32(1), got.Span.StartLine)
}

func TestService_CloseDropsLanguages(t *testing.T) {
	svc := New(analysis.NewRegistry(), Options{})
	svc.Close()

	got := svc.ResolveDefinition(context.Background(), Request{
		Text: "def f():\n    pass", Language: analysis.LangPython, Line: 1, Column: 5,
	})

	assert.Nil(t, got)
}

func TestService_CarriesOptions(t *testing.T) {
	svc := New(analysis.NewRegistry(), Options{IncludeBuiltins: true})
	assert.True(t, svc.IncludeBuiltins())
	assert.NotNil(t, svc.Registry())
}
