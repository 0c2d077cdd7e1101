package analysis

import "github.com/lexnav/lexnav/common"

// Identifier character classes. These stay ASCII-only to agree with the
// declaration patterns, which match [A-Za-z_][A-Za-z0-9_]*.

func isIdentStart(r rune) bool {
	if ('A' <= r && r <= 'Z') || ('a' <= r && r <= 'z') {
		return true
	}
	return r == '_'
}

func isIdentContinue(r rune) bool {
	// Digits are allowed after the first rune.
	if '0' <= r && r <= '9' {
		return true
	}
	return isIdentStart(r)
}

// IsValidIdent reports whether s is a well-formed identifier.
func IsValidIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !isIdentStart(r) {
				return false
			}
		} else if !isIdentContinue(r) {
			return false
		}
	}
	return true
}

// SymbolAtPosition returns the identifier touching the 1-based position
// in text, or "". The position may sit on any character of the
// identifier or directly after its last character, so a caret at the end
// of a word still resolves that word.
func SymbolAtPosition(text string, line, column uint32) string {
	ln, ok := common.NewLineIndex(text).Line(line)
	if !ok {
		return ""
	}
	runes := []rune(ln)
	if column < 1 || int(column) > len(runes)+1 {
		return ""
	}
	idx := int(column) - 1
	start := idx
	for start > 0 && isIdentContinue(runes[start-1]) {
		start--
	}
	end := idx
	for end < len(runes) && isIdentContinue(runes[end]) {
		end++
	}
	if start == end {
		return ""
	}
	word := string(runes[start:end])
	if !IsValidIdent(word) {
		// A maximal run can still be malformed, e.g. one starting
		// with a digit.
		return ""
	}
	return word
}

// Occurrences returns a span for every whole-word appearance of name in
// text. Word boundaries follow the identifier rules, so "count" does not
// match inside "counter".
func Occurrences(text, name string) []common.Span {
	if !IsValidIdent(name) {
		return nil
	}
	var spans []common.Span
	ix := common.NewLineIndex(text)
	for n := uint32(1); int(n) <= ix.LineCount(); n++ {
		ln, _ := ix.Line(n)
		runes := []rune(ln)
		for i := 0; i < len(runes); {
			if !isIdentContinue(runes[i]) {
				i++
				continue
			}
			j := i + 1
			for j < len(runes) && isIdentContinue(runes[j]) {
				j++
			}
			if isIdentStart(runes[i]) && string(runes[i:j]) == name {
				spans = append(spans, common.LineSpan(n, uint32(i)+1, uint32(j)+1))
			}
			i = j
		}
	}
	return spans
}
