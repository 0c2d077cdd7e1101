package analysis

import (
	"regexp"
	"strings"

	"github.com/lexnav/lexnav/common"
)

// typescriptAnalyzer recognizes TypeScript and JavaScript declaration
// shapes. The two dialects share one analyzer; TypeScript-only forms
// (interface, type alias) simply never match in JavaScript sources.
// Identifiers are ASCII, so `$`-names common in some JS codebases are
// not recognized.
type typescriptAnalyzer struct{}

// NewTypeScriptAnalyzer returns the analyzer shared by the typescript
// and javascript registrations.
func NewTypeScriptAnalyzer() Analyzer { return &typescriptAnalyzer{} }

var (
	tsFuncRe      = regexp.MustCompile(`(?m)^([ \t]*)(?:export[ \t]+)?(?:default[ \t]+)?(?:async[ \t]+)?function[ \t]+([A-Za-z_][A-Za-z0-9_]*)(?:<[^>\n]*>)?[ \t]*\(`)
	tsClassRe     = regexp.MustCompile(`(?m)^([ \t]*)(?:export[ \t]+)?(?:default[ \t]+)?(?:abstract[ \t]+)?class[ \t]+([A-Za-z_][A-Za-z0-9_]*)`)
	tsInterfaceRe = regexp.MustCompile(`(?m)^([ \t]*)(?:export[ \t]+)?interface[ \t]+([A-Za-z_][A-Za-z0-9_]*)`)
	tsTypeRe      = regexp.MustCompile(`(?m)^([ \t]*)(?:export[ \t]+)?type[ \t]+([A-Za-z_][A-Za-z0-9_]*)(?:<[^>\n]*>)?[ \t]*=`)
	tsBindRe      = regexp.MustCompile(`(?m)^([ \t]*)(?:export[ \t]+)?(?:const|let|var)[ \t]+([A-Za-z_][A-Za-z0-9_]*)[ \t]*(?::[^=\n]+)?=`)

	tsNamedImportRe     = regexp.MustCompile(`(?m)^[ \t]*import[ \t]+(?:type[ \t]+)?\{([^}\n]*)\}[ \t]*from[ \t]*['"]([^'"\n]+)['"]`)
	tsDefaultImportRe   = regexp.MustCompile(`(?m)^[ \t]*import[ \t]+(?:type[ \t]+)?([A-Za-z_][A-Za-z0-9_]*)[ \t]+from[ \t]*['"]([^'"\n]+)['"]`)
	tsNamespaceImportRe = regexp.MustCompile(`(?m)^[ \t]*import[ \t]*\*[ \t]*as[ \t]+([A-Za-z_][A-Za-z0-9_]*)[ \t]+from[ \t]*['"]([^'"\n]+)['"]`)

	// One item of a named-import clause, with optional alias and inline
	// `type` modifier.
	tsItemRe = regexp.MustCompile(`^(?:type[ \t]+)?([A-Za-z_][A-Za-z0-9_]*)(?:[ \t]+as[ \t]+([A-Za-z_][A-Za-z0-9_]*))?`)
)

func (*typescriptAnalyzer) Extract(text string) []Definition {
	ix := common.NewLineIndex(text)
	var defs []Definition
	defs = append(defs, scanScriptFunctions(text, ix)...)
	defs = append(defs, scanScriptTypes(text, ix)...)
	defs = append(defs, scanScriptBindings(text, ix)...)
	defs = append(defs, scanScriptImports(text, ix)...)
	return defs
}

func (*typescriptAnalyzer) SymbolAt(text string, line, column uint32) string {
	return SymbolAtPosition(text, line, column)
}

// ImportPath checks the binding shapes in a fixed order: named imports
// first, default imports second, namespace imports last. The first shape
// that binds name anywhere in the text wins.
func (*typescriptAnalyzer) ImportPath(text, name string) string {
	for _, m := range tsNamedImportRe.FindAllStringSubmatchIndex(text, -1) {
		if tsClauseBinds(text, m[2], m[3], name) {
			return text[m[4]:m[5]]
		}
	}
	for _, m := range tsDefaultImportRe.FindAllStringSubmatchIndex(text, -1) {
		if text[m[2]:m[3]] == name {
			return text[m[4]:m[5]]
		}
	}
	for _, m := range tsNamespaceImportRe.FindAllStringSubmatchIndex(text, -1) {
		if text[m[2]:m[3]] == name {
			return text[m[4]:m[5]]
		}
	}
	return ""
}

func scanScriptFunctions(text string, ix *common.LineIndex) []Definition {
	var defs []Definition
	for _, m := range tsFuncRe.FindAllStringSubmatchIndex(text, -1) {
		defs = append(defs, Definition{
			Name: text[m[4]:m[5]],
			Kind: KindFunction,
			Span: spanAt(ix, m[4], m[5]),
		})
	}
	return defs
}

// scanScriptTypes covers classes, interfaces and type aliases. The
// latter two are reported as classes: for navigation purposes they are
// all named type declarations.
func scanScriptTypes(text string, ix *common.LineIndex) []Definition {
	var defs []Definition
	for _, re := range []*regexp.Regexp{tsClassRe, tsInterfaceRe, tsTypeRe} {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			defs = append(defs, Definition{
				Name: text[m[4]:m[5]],
				Kind: KindClass,
				Span: spanAt(ix, m[4], m[5]),
			})
		}
	}
	return defs
}

// scanScriptBindings covers const/let/var declarations. A binding whose
// initializer line contains an `=>` is an arrow function and reported as
// one; everything else is a plain variable. Destructuring patterns have
// no single name and are skipped by construction.
func scanScriptBindings(text string, ix *common.LineIndex) []Definition {
	var defs []Definition
	seen := map[indentName]bool{}
	for _, m := range tsBindRe.FindAllStringSubmatchIndex(text, -1) {
		indent := m[3] - m[2]
		if indent > maxVariableIndent {
			continue
		}
		name := text[m[4]:m[5]]
		key := indentName{indent, name}
		if seen[key] {
			continue
		}
		seen[key] = true
		kind := KindVariable
		if strings.Contains(restOfLine(text, m[1]), "=>") {
			kind = KindFunction
		}
		defs = append(defs, Definition{
			Name: name,
			Kind: kind,
			Span: spanAt(ix, m[4], m[5]),
		})
	}
	return defs
}

func scanScriptImports(text string, ix *common.LineIndex) []Definition {
	var defs []Definition
	for _, m := range tsNamedImportRe.FindAllStringSubmatchIndex(text, -1) {
		span := lineSpanAt(ix, m[0])
		eachListItem(text, m[2], m[3], func(s, e int) {
			im := tsItemRe.FindStringSubmatchIndex(text[s:e])
			if im == nil {
				return
			}
			name := text[s+im[2] : s+im[3]]
			if im[4] >= 0 {
				name = text[s+im[4] : s+im[5]]
			}
			defs = append(defs, Definition{Name: name, Kind: KindImport, Span: span})
		})
	}
	for _, m := range tsDefaultImportRe.FindAllStringSubmatchIndex(text, -1) {
		defs = append(defs, Definition{
			Name: text[m[2]:m[3]],
			Kind: KindImport,
			Span: lineSpanAt(ix, m[0]),
		})
	}
	for _, m := range tsNamespaceImportRe.FindAllStringSubmatchIndex(text, -1) {
		defs = append(defs, Definition{
			Name: text[m[2]:m[3]],
			Kind: KindImport,
			Span: lineSpanAt(ix, m[0]),
		})
	}
	return defs
}

// tsClauseBinds reports whether any item of a named-import clause binds
// name, through its alias or through the imported identifier itself.
func tsClauseBinds(text string, start, end int, name string) bool {
	found := false
	eachListItem(text, start, end, func(s, e int) {
		if found {
			return
		}
		m := tsItemRe.FindStringSubmatchIndex(text[s:e])
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
