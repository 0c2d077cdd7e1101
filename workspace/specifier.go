package workspace

import (
	"path/filepath"
	"strings"

	"github.com/lexnav/lexnav/analysis"
	"github.com/lexnav/lexnav/common"
)

var scriptExts = []string{".ts", ".tsx", ".js", ".jsx"}

// scriptCandidates resolves a TS/JS specifier the way a bundler would,
// minus package lookups: only relative specifiers name workspace files.
// An extension-less specifier tries each script extension, then the
// index files of a same-named directory.
func scriptCandidates(importPath, from string) []string {
	if !strings.HasPrefix(importPath, "./") && !strings.HasPrefix(importPath, "../") {
		return nil
	}
	joined := common.FilePathClean(filepath.Join(filepath.Dir(from), importPath))
	for _, ext := range scriptExts {
		if strings.HasSuffix(joined, ext) {
			return []string{joined}
		}
	}
	out := make([]string, 0, 2*len(scriptExts))
	for _, ext := range scriptExts {
		out = append(out, joined+ext)
	}
	for _, ext := range scriptExts {
		out = append(out, joined+"/index"+ext)
	}
	return out
}

// pythonCandidates resolves a dotted module path. Leading dots walk up
// from the importing file's directory, one directory per dot after the
// first; the remaining segments map to a path. Each candidate is
// satisfied by a module file or a package __init__. Absolute module
// paths are tried next to the importing file first, then against the
// workspace root.
func pythonCandidates(root, importPath, from string) []string {
	dots := 0
	for dots < len(importPath) && importPath[dots] == '.' {
		dots++
	}
	rest := importPath[dots:]
	if rest == "" && dots == 0 {
		return nil
	}
	if rest != "" && !validModulePath(rest) {
		return nil
	}
	if dots > 0 {
		base := filepath.Dir(from)
		for i := 1; i < dots; i++ {
			base = filepath.Dir(base)
		}
		if rest == "" {
			// `from . import x`: the specifier names the package itself.
			return []string{common.FilePathClean(filepath.Join(base, "__init__.py"))}
		}
		return moduleCandidates(filepath.Join(base, moduleRel(rest)))
	}
	out := moduleCandidates(filepath.Join(filepath.Dir(from), moduleRel(rest)))
	if filepath.Dir(from) != root {
		out = append(out, moduleCandidates(filepath.Join(root, moduleRel(rest)))...)
	}
	return out
}

func moduleRel(rest string) string {
	return filepath.Join(strings.Split(rest, ".")...)
}

func moduleCandidates(p string) []string {
	p = common.FilePathClean(p)
	return []string{p + ".py", p + "/__init__.py"}
}

func validModulePath(rest string) bool {
	for _, seg := range strings.Split(rest, ".") {
		if !analysis.IsValidIdent(seg) {
			return false
		}
	}
	return true
}
