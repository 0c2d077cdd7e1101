package analysis

import (
	"path/filepath"
	"strings"
)

// DefaultExtensions maps the file extensions the built-in analyzers
// conventionally serve to their language identifiers.
func DefaultExtensions() map[string]string {
	return map[string]string{
		".py":  LangPython,
		".ts":  LangTypeScript,
		".tsx": LangTypeScript,
		".js":  LangJavaScript,
		".jsx": LangJavaScript,
	}
}

// LanguageForPath returns the built-in language identifier for path's
// extension, or "" when no built-in analyzer serves it.
func LanguageForPath(path string) string {
	return DefaultExtensions()[strings.ToLower(filepath.Ext(path))]
}
