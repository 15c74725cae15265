// Package builddb parses compile_commands.json compilation databases
// and answers freshness questions about the build products they
// describe.
package builddb

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/shlex"
)

// ErrNotFound is returned by Load when dir contains no
// compile_commands.json.
var ErrNotFound = errors.New("builddb: compile_commands.json not found")

// ErrNotACompileCommand is returned by Database.OutputFreshness when
// the entry's command has no `-o <path>` argument (Entry.Output itself
// reports that case as ok=false).
var ErrNotACompileCommand = errors.New("builddb: no -o output in command")

// Entry is one compile_commands.json record.
type Entry struct {
	Directory string `json:"directory"`
	Command   string `json:"command"`
	File      string `json:"file"`
}

// Database is an ordered list of compile_commands.json entries.
type Database struct {
	path    string
	entries []Entry
}

// Load looks for compile_commands.json in dir and parses it.
func Load(dir string) (*Database, error) {
	path := filepath.Join(dir, "compile_commands.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("builddb: reading %s: %w", path, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("builddb: parsing %s: %w", path, err)
	}

	return &Database{path: path, entries: entries}, nil
}

// Entries returns every record in the database, in file order.
func (d *Database) Entries() []Entry {
	return d.entries
}

// CurrentDir returns the entry's build directory.
func (e Entry) CurrentDir() string {
	return e.Directory
}

// Input returns the entry's source file, resolved against its build
// directory if it isn't already absolute.
func (e Entry) Input() string {
	if filepath.IsAbs(e.File) {
		return e.File
	}
	return filepath.Join(e.Directory, e.File)
}

// Output parses the `-o <path>` argument out of the entry's
// shell-quoted command field and resolves it against the build
// directory, exactly as the compiler itself would.
func (e Entry) Output() (string, bool) {
	words, err := shlex.Split(e.Command)
	if err != nil {
		return "", false
	}
	for i, w := range words {
		if w == "-o" && i+1 < len(words) {
			out := words[i+1]
			if !filepath.IsAbs(out) {
				out = filepath.Join(e.Directory, out)
			}
			return out, true
		}
	}
	return "", false
}

// FreshnessKind enumerates the three states a build product can be in
// relative to its inputs.
type FreshnessKind int

const (
	FreshnessNonexistent FreshnessKind = iota
	FreshnessOutdated
	FreshnessMaybeOutdated
)

// Freshness is the result of comparing a build product's mtime against
// its input(s). Age is only meaningful for FreshnessMaybeOutdated: how
// much newer the product is than its newest input, always >= 0.
type Freshness struct {
	Kind FreshnessKind
	Age  time.Duration
}

func statMTime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// freshnessOf compares productPath's mtime against the newest of
// inputPaths. A missing product is Nonexistent; a product older than
// any input is Outdated; otherwise it is MaybeOutdated with the age
// gap recorded (MaybeOutdated rather than Fresh because mtimes alone
// can't prove a product reflects its input's current content, only
// that it isn't stale by the obvious test).
func freshnessOf(productPath string, inputPaths []string) (Freshness, error) {
	productTime, ok := statMTime(productPath)
	if !ok {
		return Freshness{Kind: FreshnessNonexistent}, nil
	}

	var newestInput time.Time
	for _, input := range inputPaths {
		t, ok := statMTime(input)
		if !ok {
			continue
		}
		if t.After(newestInput) {
			newestInput = t
		}
	}

	if newestInput.After(productTime) {
		return Freshness{Kind: FreshnessOutdated}, nil
	}
	return Freshness{Kind: FreshnessMaybeOutdated, Age: productTime.Sub(newestInput)}, nil
}

// ProfileFreshness reports the freshness of a whole-build profile file
// (e.g. a clang -ftime-trace aggregate) relative to every entry's
// input plus the database file itself, since either changing would
// invalidate a profile taken before the change.
func (d *Database) ProfileFreshness(path string) (Freshness, error) {
	inputs := make([]string, 0, len(d.entries)+1)
	inputs = append(inputs, d.path)
	for _, e := range d.entries {
		inputs = append(inputs, e.Input())
	}
	return freshnessOf(path, inputs)
}

// OutputFreshness reports the freshness of entry i's build product
// relative to its own input.
func (d *Database) OutputFreshness(i int) (Freshness, error) {
	if i < 0 || i >= len(d.entries) {
		return Freshness{}, fmt.Errorf("builddb: entry index %d out of range", i)
	}
	entry := d.entries[i]
	output, ok := entry.Output()
	if !ok {
		return Freshness{}, ErrNotACompileCommand
	}
	return freshnessOf(output, []string{entry.Input()})
}
