package analysis

import (
	"strings"
	"unicode/utf8"

	"github.com/lexnav/lexnav/common"
)

// Variable bindings indented deeper than this are treated as block
// locals and skipped; four characters covers the top level plus one
// standard indent step.
const maxVariableIndent = 4

// indentName keys variable deduplication: one definition per name per
// nesting depth.
type indentName struct {
	indent int
	name   string
}

// spanAt converts the byte range [start, end) to a 1-based span.
func spanAt(ix *common.LineIndex, start, end int) common.Span {
	sl, sc := ix.PositionAt(start)
	el, ec := ix.PositionAt(end)
	return common.SpanNew(sl, sc, el, ec)
}

// lineSpanAt returns a span covering the whole line containing offset.
func lineSpanAt(ix *common.LineIndex, offset int) common.Span {
	line, _ := ix.PositionAt(offset)
	ln, _ := ix.Line(line)
	return common.LineSpan(line, 1, uint32(utf8.RuneCountInString(ln))+1)
}

// restOfLine returns text from offset to the end of its line.
func restOfLine(text string, offset int) string {
	if i := strings.IndexByte(text[offset:], '\n'); i >= 0 {
		return text[offset : offset+i]
	}
	return text[offset:]
}

// eachListItem calls fn for every non-empty comma-separated item of
// text[start:end), passing absolute byte ranges with surrounding
// whitespace trimmed.
func eachListItem(text string, start, end int, fn func(itemStart, itemEnd int)) {
	for start < end {
		stop := end
		if rel := strings.IndexByte(text[start:end], ','); rel >= 0 {
			stop = start + rel
		}
		if s, e := trimRange(text, start, stop); s < e {
			fn(s, e)
		}
		start = stop + 1
	}
}

// trimRange shrinks [start, end) past leading and trailing whitespace.
func trimRange(text string, start, end int) (int, int) {
	for start < end && isSpace(text[start]) {
		start++
	}
	for end > start && isSpace(text[end-1]) {
		end--
	}
	return start, end
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' }

// leadingIdent returns the end offset of the identifier starting at
// start, or ok=false when text[start:end) does not begin with one.
func leadingIdent(text string, start, end int) (int, bool) {
	if start >= end || !isIdentStart(rune(text[start])) {
		return 0, false
	}
	i := start + 1
	for i < end && isIdentContinue(rune(text[i])) {
		i++
	}
	return i, true
}
