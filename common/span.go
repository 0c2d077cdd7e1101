package common

import (
	"fmt"

	protocol "github.com/gluax-lang/lsp"
)

// Span represents a range in a source document. Lines and columns are
// 1-based and count runes; EndColumn points one past the last character,
// so a span over `foo` starting at column 5 ends at column 8.
type Span struct {
	StartLine   uint32
	StartColumn uint32
	EndLine     uint32
	EndColumn   uint32
}

func SpanNew(startLine, startColumn, endLine, endColumn uint32) Span {
	return Span{
		StartLine:   startLine,
		StartColumn: startColumn,
		EndLine:     endLine,
		EndColumn:   endColumn,
	}
}

// LineSpan returns a span confined to a single line.
func LineSpan(line, startColumn, endColumn uint32) Span {
	return SpanNew(line, startColumn, line, endColumn)
}

// ToRange converts the span to an LSP range, which counts lines and
// characters from zero.
func (s Span) ToRange() protocol.Range {
	return protocol.Range{
		Start: protocol.Position{
			Line:      s.StartLine - 1,
			Character: s.StartColumn - 1,
		},
		End: protocol.Position{
			Line:      s.EndLine - 1,
			Character: s.EndColumn - 1,
		},
	}
}

func (s Span) ToLocation(uri string) protocol.Location {
	return protocol.Location{
		URI:   uri,
		Range: s.ToRange(),
	}
}

// Contains reports whether other lies entirely inside s.
func (s Span) Contains(other Span) bool {
	if other.StartLine < s.StartLine || other.EndLine > s.EndLine {
		return false
	}
	if other.StartLine == s.StartLine && other.StartColumn < s.StartColumn {
		return false
	}
	if other.EndLine == s.EndLine && other.EndColumn > s.EndColumn {
		return false
	}
	return true
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartColumn, s.EndLine, s.EndColumn)
}
