package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pySource() string {
	return strings.Join([]string{
		"import os",
		"from collections import OrderedDict as OD, defaultdict",
		"",
		"MAX_RETRIES = 3",
		"def fetch(url, timeout=5):",
		"    return url",
		"",
		"class Client:",
		"    def __init__(self, base):",
		"        self.base = base",
		"",
		"async def poll(cursor):",
		"    pass",
	}, "\n")
}

func TestPythonExtract_Functions(t *testing.T) {
	defs := NewPythonAnalyzer().Extract(pySource())

	fetch := findDef(defs, "fetch", KindFunction)
	require.NotNil(t, fetch)
	assert.Equal(t, "5:5-5:10", fetch.Span.String())

	poll := findDef(defs, "poll", KindFunction)
	require.NotNil(t, poll)
	assert.Equal(t, "12:11-12:15", poll.Span.String())

	assert.NotNil(t, findDef(defs, "__init__", KindFunction), "methods surface as functions")
}

func TestPythonExtract_Parameters(t *testing.T) {
	src := pySource()
	defs := NewPythonAnalyzer().Extract(src)

	url := findDef(defs, "url", KindParameter)
	require.NotNil(t, url)
	assert.Equal(t, "5:11-5:14", url.Span.String())

	require.NotNil(t, findDef(defs, "timeout", KindParameter))
	require.NotNil(t, findDef(defs, "base", KindParameter))
	require.NotNil(t, findDef(defs, "cursor", KindParameter))

	assert.Nil(t, findDef(defs, "self", KindParameter), "first-position self is skipped")

	for _, d := range defs {
		if d.Kind == KindParameter {
			assert.Equal(t, d.Name, spanText(src, d.Span))
		}
	}
}

func TestPythonExtract_ClassesAndVariables(t *testing.T) {
	defs := NewPythonAnalyzer().Extract(pySource())

	client := findDef(defs, "Client", KindClass)
	require.NotNil(t, client)
	assert.Equal(t, "8:7-8:13", client.Span.String())

	retries := findDef(defs, "MAX_RETRIES", KindVariable)
	require.NotNil(t, retries)
	assert.Equal(t, "4:1-4:12", retries.Span.String())

	assert.Nil(t, findDef(defs, "self", KindVariable), "attribute assignment is not a binding")
}

func TestPythonExtract_Imports(t *testing.T) {
	src := pySource()
	defs := NewPythonAnalyzer().Extract(src)

	osImp := findDef(defs, "os", KindImport)
	require.NotNil(t, osImp)
	assert.Equal(t, "1:1-1:10", osImp.Span.String(), "imports span the whole line")

	od := findDef(defs, "OD", KindImport)
	require.NotNil(t, od)
	line2 := strings.Split(src, "\n")[1]
	assert.Equal(t, uint32(1), od.Span.StartColumn)
	assert.Equal(t, uint32(len(line2))+1, od.Span.EndColumn)

	require.NotNil(t, findDef(defs, "defaultdict", KindImport))
	assert.Zero(t, countNamed(defs, "OrderedDict"), "alias takes over the binding")
}

func TestPythonExtract_SpanSubstringProperty(t *testing.T) {
	src := pySource()
	for _, d := range NewPythonAnalyzer().Extract(src) {
		if d.IsImport() {
			continue
		}
		assert.Equal(t, d.Name, spanText(src, d.Span), "span of %s %q", d.Kind, d.Name)
	}
}

func TestPythonExtract_Idempotent(t *testing.T) {
	az := NewPythonAnalyzer()
	src := pySource()
	assert.Equal(t, az.Extract(src), az.Extract(src))
}

func TestPythonVariables_Heuristics(t *testing.T) {
	src := strings.Join([]string{
		"count = 0",
		"count = count + 1",
		"if flag:",
		"    count = 2",
		"        deep = 3",
		"_hidden = 4",
		"_ = discard()",
		"limit: int = 10",
		"x == 3",
		"classes = []",
	}, "\n")
	defs := NewPythonAnalyzer().Extract(src)

	assert.Equal(t, 2, countDefs(defs, "count", KindVariable),
		"deduplicated per indent level, distinct across levels")
	assert.Zero(t, countNamed(defs, "deep"), "deep indentation is local")
	assert.Zero(t, countNamed(defs, "_hidden"))
	assert.NotNil(t, findDef(defs, "_", KindVariable), "bare underscore is kept")
	assert.NotNil(t, findDef(defs, "limit", KindVariable), "annotated assignment")
	assert.Zero(t, countNamed(defs, "x"), "== is a comparison, not a binding")
	assert.NotNil(t, findDef(defs, "classes", KindVariable))
}

func TestPythonParameters_Varargs(t *testing.T) {
	src := "def move(start, *args, **kwargs):\n    pass"
	defs := NewPythonAnalyzer().Extract(src)

	require.NotNil(t, findDef(defs, "start", KindParameter))
	args := findDef(defs, "args", KindParameter)
	require.NotNil(t, args)
	assert.Equal(t, "args", spanText(src, args.Span), "star markers are outside the span")
	require.NotNil(t, findDef(defs, "kwargs", KindParameter))
}

func TestPythonParameters_SelfOnlySkippedInFirstPosition(t *testing.T) {
	src := strings.Join([]string{
		"def pair(self, other):",
		"def compare(left, self):",
	}, "\n")
	defs := NewPythonAnalyzer().Extract(src)

	self := findDef(defs, "self", KindParameter)
	require.NotNil(t, self)
	assert.Equal(t, uint32(2), self.Span.StartLine)
	assert.Equal(t, 1, countDefs(defs, "self", KindParameter))
}

func TestPythonMultilineDefHeader_NameOnly(t *testing.T) {
	src := strings.Join([]string{
		"def multi(",
		"    first,",
		"    second,",
		"):",
		"    pass",
	}, "\n")
	defs := NewPythonAnalyzer().Extract(src)

	assert.NotNil(t, findDef(defs, "multi", KindFunction))
	assert.Nil(t, findDef(defs, "first", KindParameter),
		"parameters require a single-line header")
	assert.Nil(t, findDef(defs, "second", KindParameter))
}

func TestPythonImportPath_Shapes(t *testing.T) {
	src := strings.Join([]string{
		"import json",
		"import os.path as osp",
		"from pkg.mod import helper as halp, direct",
		"from . import sibling",
		"import numpy as np",
	}, "\n")
	az := NewPythonAnalyzer()

	assert.Equal(t, "pkg.mod", az.ImportPath(src, "halp"))
	assert.Equal(t, "pkg.mod", az.ImportPath(src, "direct"))
	assert.Equal(t, "os.path", az.ImportPath(src, "osp"))
	assert.Equal(t, "json", az.ImportPath(src, "json"))
	assert.Equal(t, "numpy", az.ImportPath(src, "np"))
	assert.Equal(t, ".", az.ImportPath(src, "sibling"))

	assert.Equal(t, "", az.ImportPath(src, "path"), "aliased import binds only the alias")
	assert.Equal(t, "", az.ImportPath(src, "missing"))
}

func TestPythonImportPath_FromImportWinsOverPlain(t *testing.T) {
	src := "import helper\nfrom mod import helper"
	assert.Equal(t, "mod", NewPythonAnalyzer().ImportPath(src, "helper"))
}

func TestPythonHelloFunction(t *testing.T) {
	src := "def hello():\n    pass"
	az := NewPythonAnalyzer()

	assert.Equal(t, "hello", az.SymbolAt(src, 1, 5))

	d := findDef(az.Extract(src), "hello", KindFunction)
	require.NotNil(t, d)
	assert.Equal(t, "1:5-1:10", d.Span.String())
}
