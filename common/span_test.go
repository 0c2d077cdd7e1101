package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpanToRange_ConvertsToZeroBased(t *testing.T) {
	r := SpanNew(3, 5, 3, 10).ToRange()
	assert.Equal(t, uint32(2), r.Start.Line)
	assert.Equal(t, uint32(4), r.Start.Character)
	assert.Equal(t, uint32(2), r.End.Line)
	assert.Equal(t, uint32(9), r.End.Character)
}

func TestSpanToLocation_CarriesURI(t *testing.T) {
	loc := LineSpan(7, 1, 4).ToLocation("file:///tmp/app.py")
	assert.Equal(t, "file:///tmp/app.py", loc.URI)
	assert.Equal(t, uint32(6), loc.Range.Start.Line)
}

func TestSpanString(t *testing.T) {
	assert.Equal(t, "2:4-2:9", LineSpan(2, 4, 9).String())
}

func TestSpanContains(t *testing.T) {
	line := LineSpan(3, 1, 20)
	assert.True(t, line.Contains(LineSpan(3, 5, 10)))
	assert.True(t, line.Contains(line))
	assert.False(t, line.Contains(LineSpan(3, 5, 21)))
	assert.False(t, line.Contains(LineSpan(2, 5, 10)))
	assert.False(t, line.Contains(SpanNew(3, 5, 4, 2)))
}

func TestFilePathClean(t *testing.T) {
	assert.Equal(t, "/a/b", FilePathClean("/a/./c/../b/"))
}

func TestFilePathToURI(t *testing.T) {
	assert.Equal(t, "file:///tmp/a%20b.py", FilePathToURI("/tmp/a b.py"))
	assert.Equal(t, "file:///tmp/src/util.ts", FilePathToURI("/tmp/src/util.ts"))
}
