package analysis

import (
	"regexp"
	"strings"

	"github.com/lexnav/lexnav/common"
)

// pythonAnalyzer recognizes Python declaration shapes with line-anchored
// patterns. Only single-line forms are seen: a def header broken across
// lines still contributes its name, but not its parameters, and
// parenthesized multi-line imports contribute nothing.
type pythonAnalyzer struct{}

// NewPythonAnalyzer returns the built-in Python analyzer.
func NewPythonAnalyzer() Analyzer { return &pythonAnalyzer{} }

var (
	pyDefRe    = regexp.MustCompile(`(?m)^([ \t]*)(?:async[ \t]+)?def[ \t]+([A-Za-z_][A-Za-z0-9_]*)[ \t]*\(`)
	pyParamsRe = regexp.MustCompile(`(?m)^[ \t]*(?:async[ \t]+)?def[ \t]+[A-Za-z_][A-Za-z0-9_]*[ \t]*\(([^)\n]*)\)`)
	pyClassRe  = regexp.MustCompile(`(?m)^([ \t]*)class[ \t]+([A-Za-z_][A-Za-z0-9_]*)[ \t]*[:(]`)
	pyAssignRe = regexp.MustCompile(`(?m)^([ \t]*)([A-Za-z_][A-Za-z0-9_]*)[ \t]*(?::[^=\n]+)?=`)
	pyFromRe   = regexp.MustCompile(`(?m)^[ \t]*from[ \t]+(\.*[A-Za-z_][A-Za-z0-9_.]*|\.+)[ \t]+import[ \t]+([^\n]+)$`)
	pyImportRe = regexp.MustCompile(`(?m)^[ \t]*import[ \t]+([^\n]+)$`)

	// One item of an import clause: a dotted path with an optional alias.
	pyItemRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*)(?:[ \t]+as[ \t]+([A-Za-z_][A-Za-z0-9_]*))?`)
)

func (*pythonAnalyzer) Extract(text string) []Definition {
	ix := common.NewLineIndex(text)
	var defs []Definition
	defs = append(defs, scanPythonFunctions(text, ix)...)
	defs = append(defs, scanPythonParameters(text, ix)...)
	defs = append(defs, scanPythonClasses(text, ix)...)
	defs = append(defs, scanPythonVariables(text, ix)...)
	defs = append(defs, scanPythonImports(text, ix)...)
	return defs
}

func (*pythonAnalyzer) SymbolAt(text string, line, column uint32) string {
	return SymbolAtPosition(text, line, column)
}

// ImportPath checks the binding shapes in a fixed order: from-imports
// first, aliased plain imports second, direct module imports last. The
// first shape that binds name anywhere in the text wins.
func (*pythonAnalyzer) ImportPath(text, name string) string {
	for _, m := range pyFromRe.FindAllStringSubmatchIndex(text, -1) {
		cs, ce := clipComment(text, m[4], m[5])
		cs, ce = stripParens(text, cs, ce)
		if pyClauseBinds(text, cs, ce, name) {
			return text[m[2]:m[3]]
		}
	}
	if path := pyPlainImport(text, name, true); path != "" {
		return path
	}
	return pyPlainImport(text, name, false)
}

func scanPythonFunctions(text string, ix *common.LineIndex) []Definition {
	var defs []Definition
	for _, m := range pyDefRe.FindAllStringSubmatchIndex(text, -1) {
		defs = append(defs, Definition{
			Name: text[m[4]:m[5]],
			Kind: KindFunction,
			Span: spanAt(ix, m[4], m[5]),
		})
	}
	return defs
}

func scanPythonParameters(text string, ix *common.LineIndex) []Definition {
	var defs []Definition
	for _, m := range pyParamsRe.FindAllStringSubmatchIndex(text, -1) {
		pos := 0
		eachListItem(text, m[2], m[3], func(s, e int) {
			pos++
			for s < e && text[s] == '*' {
				s++ // *args / **kwargs bind the bare name
			}
			idEnd, ok := leadingIdent(text, s, e)
			if !ok {
				return
			}
			name := text[s:idEnd]
			if pos == 1 && (name == "self" || name == "cls") {
				return
			}
			defs = append(defs, Definition{
				Name: name,
				Kind: KindParameter,
				Span: spanAt(ix, s, idEnd),
			})
		})
	}
	return defs
}

func scanPythonClasses(text string, ix *common.LineIndex) []Definition {
	var defs []Definition
	for _, m := range pyClassRe.FindAllStringSubmatchIndex(text, -1) {
		defs = append(defs, Definition{
			Name: text[m[4]:m[5]],
			Kind: KindClass,
			Span: spanAt(ix, m[4], m[5]),
		})
	}
	return defs
}

func scanPythonVariables(text string, ix *common.LineIndex) []Definition {
	var defs []Definition
	seen := map[indentName]bool{}
	for _, m := range pyAssignRe.FindAllStringSubmatchIndex(text, -1) {
		if m[1] < len(text) && text[m[1]] == '=' {
			continue // == comparison, not an assignment
		}
		if m[3]-m[2] > maxVariableIndent {
			continue
		}
		name := text[m[4]:m[5]]
		if strings.HasPrefix(name, "_") && name != "_" {
			// Private-by-convention names are suppressed; the bare
			// underscore stays because it is assigned deliberately.
			continue
		}
		key := indentName{m[3] - m[2], name}
		if seen[key] {
			continue
		}
		seen[key] = true
		defs = append(defs, Definition{
			Name: name,
			Kind: KindVariable,
			Span: spanAt(ix, m[4], m[5]),
		})
	}
	return defs
}

func scanPythonImports(text string, ix *common.LineIndex) []Definition {
	var defs []Definition
	for _, m := range pyFromRe.FindAllStringSubmatchIndex(text, -1) {
		span := lineSpanAt(ix, m[0])
		cs, ce := clipComment(text, m[4], m[5])
		cs, ce = stripParens(text, cs, ce)
		eachListItem(text, cs, ce, func(s, e int) {
			if name, ok := pyBoundName(text, s, e); ok {
				defs = append(defs, Definition{Name: name, Kind: KindImport, Span: span})
			}
		})
	}
	for _, m := range pyImportRe.FindAllStringSubmatchIndex(text, -1) {
		span := lineSpanAt(ix, m[0])
		cs, ce := clipComment(text, m[2], m[3])
		eachListItem(text, cs, ce, func(s, e int) {
			if name, ok := pyBoundName(text, s, e); ok {
				defs = append(defs, Definition{Name: name, Kind: KindImport, Span: span})
			}
		})
	}
	return defs
}

// pyBoundName yields the local name an import item binds: the alias when
// present, otherwise the last dotted segment of the path.
func pyBoundName(text string, s, e int) (string, bool) {
	m := pyItemRe.FindStringSubmatchIndex(text[s:e])
	if m == nil {
		return "", false
	}
	if m[4] >= 0 {
		return text[s+m[4] : s+m[5]], true
	}
	path := text[s+m[2] : s+m[3]]
	return path[strings.LastIndexByte(path, '.')+1:], true
}

// pyClauseBinds reports whether any item of a from-import clause binds
// name, through its alias or through the imported identifier itself.
func pyClauseBinds(text string, start, end int, name string) bool {
	found := false
	eachListItem(text, start, end, func(s, e int) {
		if found {
			return
		}
		m := pyItemRe.FindStringSubmatchIndex(text[s:e])
		if m == nil {
			return
		}
		if m[4] >= 0 {
			found = text[s+m[4]:s+m[5]] == name
			return
		}
		found = text[s+m[2]:s+m[3]] == name
	})
	return found
}

// pyPlainImport searches `import a.b.c` lines. With aliased set it only
// accepts items whose alias equals name; otherwise it only accepts
// unaliased items whose last segment equals name. Returns the full
// dotted path of the winning item.
func pyPlainImport(text, name string, aliased bool) string {
	for _, m := range pyImportRe.FindAllStringSubmatchIndex(text, -1) {
		cs, ce := clipComment(text, m[2], m[3])
		found := ""
		eachListItem(text, cs, ce, func(s, e int) {
			if found != "" {
				return
			}
			im := pyItemRe.FindStringSubmatchIndex(text[s:e])
			if im == nil {
				return
			}
			path := text[s+im[2] : s+im[3]]
			hasAlias := im[4] >= 0
			if aliased {
				if hasAlias && text[s+im[4]:s+im[5]] == name {
					found = path
				}
				return
			}
			if !hasAlias && path[strings.LastIndexByte(path, '.')+1:] == name {
				found = path
			}
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// clipComment shortens a clause region at the first '#', so trailing
// comments on an import line are ignored.
func clipComment(text string, start, end int) (int, int) {
	if i := strings.IndexByte(text[start:end], '#'); i >= 0 {
		end = start + i
	}
	return start, end
}

// stripParens removes one level of parentheses wrapped around a clause
// region, as in `from pkg import (a, b)`.
func stripParens(text string, start, end int) (int, int) {
	start, end = trimRange(text, start, end)
	if start < end && text[start] == '(' {
		start++
	}
	if start < end && text[end-1] == ')' {
		end--
	}
	return start, end
}
