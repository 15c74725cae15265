package builddb

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCompileCommands(t *testing.T, dir string, entries []Entry) {
	t.Helper()
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "compile_commands.json"), data, 0644))
}

func TestLoadMissingReturnsErrNotFound(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEntryOutputParsesShellQuotedCommand(t *testing.T) {
	e := Entry{
		Directory: "/build",
		Command:   `clang++ -c "src file.cpp" -o "out file.o"`,
		File:      "src file.cpp",
	}
	out, ok := e.Output()
	require.True(t, ok)
	assert.Equal(t, "/build/out file.o", out)
}

func TestEntryOutputMissingFlag(t *testing.T) {
	e := Entry{Directory: "/build", Command: "clang++ -c a.cpp", File: "a.cpp"}
	_, ok := e.Output()
	assert.False(t, ok)
}

func TestOutputFreshnessOutdated(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "a.cpp")
	output := filepath.Join(dir, "a.o")
	require.NoError(t, os.WriteFile(output, []byte("old"), 0644))
	require.NoError(t, os.Chtimes(output, time.Now().Add(-time.Hour), time.Now().Add(-time.Hour)))
	require.NoError(t, os.WriteFile(input, []byte("new"), 0644))

	writeCompileCommands(t, dir, []Entry{{
		Directory: dir,
		Command:   "clang++ -c a.cpp -o a.o",
		File:      "a.cpp",
	}})

	db, err := Load(dir)
	require.NoError(t, err)

	fresh, err := db.OutputFreshness(0)
	require.NoError(t, err)
	assert.Equal(t, FreshnessOutdated, fresh.Kind)
}

func TestOutputFreshnessNonexistent(t *testing.T) {
	dir := t.TempDir()
	writeCompileCommands(t, dir, []Entry{{
		Directory: dir,
		Command:   "clang++ -c a.cpp -o missing.o",
		File:      "a.cpp",
	}})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.cpp"), []byte("x"), 0644))

	db, err := Load(dir)
	require.NoError(t, err)

	fresh, err := db.OutputFreshness(0)
	require.NoError(t, err)
	assert.Equal(t, FreshnessNonexistent, fresh.Kind)
}
