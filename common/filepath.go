package common

import (
	"net/url"
	"path/filepath"
	"strings"
)

// FilePathClean is a combination of filepath.Clean and filepath.ToSlash
//
// Example:
//	C:\H\ -> C:/H
func FilePathClean(p string) string {
	// First do the normal OS-based cleanup
	cleaned := filepath.Clean(p)
	// Then normalize all separators to forward slash
	return filepath.ToSlash(cleaned)
}

// FilePathToURI renders an absolute path as a file:// URI, escaping each
// segment but keeping the separators. Windows drive paths gain the extra
// leading slash file URIs require: C:/x -> file:///C:/x
func FilePathToURI(path string) string {
	p := FilePathClean(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}
