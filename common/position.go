package common

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// LineIndex records the byte offset of every line start in a document so
// byte offsets can be mapped to positions without rescanning the text.
type LineIndex struct {
	text   string
	starts []int
}

func NewLineIndex(text string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{text: text, starts: starts}
}

// LineCount returns the number of lines in the document. The empty
// document has one (empty) line.
func (ix *LineIndex) LineCount() int { return len(ix.starts) }

// Line returns the 1-based line's text without its newline or a trailing
// carriage return. ok is false when line is out of range.
func (ix *LineIndex) Line(line uint32) (string, bool) {
	if line < 1 || int(line) > len(ix.starts) {
		return "", false
	}
	start := ix.starts[line-1]
	end := len(ix.text)
	if int(line) < len(ix.starts) {
		end = ix.starts[line] - 1
	}
	return strings.TrimSuffix(ix.text[start:end], "\r"), true
}

// PositionAt maps a byte offset to a 1-based line/column pair. Columns
// count runes, not bytes. Offsets outside the text clamp to its bounds.
func (ix *LineIndex) PositionAt(offset int) (line, column uint32) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(ix.text) {
		offset = len(ix.text)
	}
	i := sort.Search(len(ix.starts), func(i int) bool { return ix.starts[i] > offset }) - 1
	return uint32(i + 1), uint32(utf8.RuneCountInString(ix.text[ix.starts[i]:offset]) + 1)
}

// PositionAt is the one-shot form of LineIndex.PositionAt.
func PositionAt(text string, offset int) (line, column uint32) {
	return NewLineIndex(text).PositionAt(offset)
}

// OffsetOf is the inverse of PositionAt: it maps a 1-based line/column
// pair back to a byte offset. Columns past the end of a line clamp to the
// line end, lines past the end of the document to the text length.
func OffsetOf(text string, line, column uint32) int {
	ix := NewLineIndex(text)
	if line < 1 {
		return 0
	}
	if int(line) > len(ix.starts) {
		return len(text)
	}
	off := ix.starts[line-1]
	end := len(text)
	if int(line) < len(ix.starts) {
		end = ix.starts[line] - 1
	}
	for col := uint32(1); col < column && off < end; col++ {
		_, n := utf8.DecodeRuneInString(text[off:end])
		off += n
	}
	return off
}
