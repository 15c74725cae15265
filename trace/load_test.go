package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTrace = `{
  "traceEvents": [
    {"ph": "M", "name": "process_name", "args": {"name": "clang"}},
    {"ph": "X", "name": "Source", "cat": "file", "ts": 0, "dur": 1000, "args": {"detail": "/a/b.cpp"}},
    {"ph": "X", "name": "InstantiateFunction", "cat": "template", "ts": 100, "dur": 200, "args": {"detail": "ns::Widget<int>::Widget()"}},
    {"ph": "X", "name": "ParseClass", "cat": "template", "ts": 400, "dur": 100, "args": {"detail": "ns::Widget"}}
  ]
}`

func TestLoadBytesBuildsForest(t *testing.T) {
	tr, err := LoadBytes([]byte(sampleTrace))
	require.NoError(t, err)
	assert.Equal(t, "clang", tr.ProcessName)

	var roots []ActivityTrace
	for at := range tr.RootActivities() {
		roots = append(roots, at)
	}
	require.Len(t, roots, 1)
	assert.Equal(t, "Source", roots[0].Kind())

	var children []ActivityTrace
	for at := range roots[0].DirectChildren() {
		children = append(children, at)
	}
	require.Len(t, children, 2)
	assert.Equal(t, "InstantiateFunction", children[0].Kind())

	handle, ok := children[0].Detail()
	require.True(t, ok)
	assert.NotEqual(t, -1, int(handle))
}

func TestLoadBytesEmptyTraceErrors(t *testing.T) {
	_, err := LoadBytes([]byte(`{"traceEvents": []}`))
	require.Error(t, err)
	loadErr, ok := err.(*LoadError)
	require.True(t, ok)
	assert.Equal(t, LoadErrorEmptyTrace, loadErr.Kind)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load("/nonexistent/path/trace.json")
	require.Error(t, err)
	loadErr, ok := err.(*LoadError)
	require.True(t, ok)
	assert.Equal(t, LoadErrorFileNotFound, loadErr.Kind)
}

func TestUnparseableDetailDegradesToRawString(t *testing.T) {
	tr, err := LoadBytes([]byte(`{"traceEvents": [
		{"ph": "X", "name": "Foo", "ts": 0, "dur": 10, "args": {"detail": "$$$not valid$$$"}}
	]}`))
	require.NoError(t, err)

	var root ActivityTrace
	for at := range tr.RootActivities() {
		root = at
	}
	_, ok := root.Detail()
	assert.False(t, ok)
	assert.Equal(t, "$$$not valid$$$", root.RawDetail())
}

func TestStackFramesResolveParentChain(t *testing.T) {
	tr, err := LoadBytes([]byte(`{
		"stackFrames": {
			"1": {"category": "libc", "name": "main", "parent": "0"},
			"0": {"category": "libc", "name": "_start"}
		},
		"traceEvents": [
			{"ph": "X", "name": "Foo", "ts": 0, "dur": 10, "sf": 1, "esf": 0}
		]
	}`))
	require.NoError(t, err)

	var root ActivityTrace
	for at := range tr.RootActivities() {
		root = at
	}

	stack := root.StackTrace()
	require.Len(t, stack, 2)
	assert.Equal(t, "main", stack[0].Name)
	assert.Equal(t, "_start", stack[1].Name)

	endStack := root.EndStackTrace()
	require.Len(t, endStack, 1)
	assert.Equal(t, "_start", endStack[0].Name)
}

func TestStackFramesAbsentWhenEventHasNoFrameFields(t *testing.T) {
	tr, err := LoadBytes([]byte(sampleTrace))
	require.NoError(t, err)

	var root ActivityTrace
	for at := range tr.RootActivities() {
		root = at
	}
	assert.Empty(t, root.StackTrace())
	assert.Empty(t, root.EndStackTrace())
}

func TestFlatProfileSortsDescendingByMetric(t *testing.T) {
	tr, err := LoadBytes([]byte(sampleTrace))
	require.NoError(t, err)

	rows := FlatProfile(tr, func(at ActivityTrace) int64 {
		return at.Duration().Microseconds()
	}, FlatProfileOptions{Unit: "us"})

	require.NotEmpty(t, rows)
	for i := 1; i < len(rows); i++ {
		assert.LessOrEqual(t, rows[i].Value, rows[i-1].Value)
	}
}
