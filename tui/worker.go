// Package tui implements the interactive clang -ftime-trace viewer: a
// background worker goroutine owns the loaded trace and its interner,
// and a Bubble Tea front end talks to it over channels.
package tui

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stephenswat/crofiler"
	"github.com/stephenswat/crofiler/trace"
)

// ActivityInfo is a cheap summary of one activity, sent back over a
// request's reply channel instead of the full trace.ActivityTrace so the UI
// goroutine never touches the interner directly.
type ActivityInfo struct {
	ID       trace.ActivityID
	Kind     string
	Duration time.Duration
	Self     time.Duration
	HasKids  bool
}

// Metadata is published once, at load time, behind the worker's mutex.
type Metadata struct {
	ProcessName string
	Stats       trace.GlobalStats
}

type instructionKind int

const (
	instrGetRoots instructionKind = iota
	instrGetChildren
	instrDescribe
)

// instruction is one request sent worker-ward. Which payload fields
// are meaningful depends on kind: id for instrGetChildren, ids and
// maxCols for instrDescribe, none for instrGetRoots.
type instruction struct {
	kind    instructionKind
	id      trace.ActivityID
	ids     []trace.ActivityID
	maxCols int
	reply   chan any
}

// Worker owns a *trace.ClangTrace on a single background goroutine,
// matching the core parser's single-threaded-interner contract: the
// trace and its interner are never touched from any other goroutine
// once NewWorker returns.
type Worker struct {
	instructions chan instruction

	metaMu       sync.Mutex
	meta         Metadata
	metaErr      error
	metaReady    chan struct{}
	metaExtracted bool
}

// NewWorker spawns the worker goroutine and blocks until the trace at
// path is loaded (or fails to load), exactly as the reference
// ProcessingThread::new blocks on its metadata mutex before returning.
func NewWorker(path string) *Worker {
	w := &Worker{
		instructions: make(chan instruction),
		metaReady:    make(chan struct{}),
	}
	go w.run(path)
	<-w.metaReady
	return w
}

func (w *Worker) run(path string) {
	t, err := trace.Load(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to load trace")
		w.metaMu.Lock()
		w.metaErr = err
		w.metaMu.Unlock()
		close(w.metaReady)
		for range w.instructions {
			// Drain until the UI closes us; every request would fail anyway.
		}
		return
	}

	w.metaMu.Lock()
	w.meta = Metadata{ProcessName: t.ProcessName, Stats: t.GlobalStats()}
	w.metaMu.Unlock()
	close(w.metaReady)

	log.Info().Str("path", path).Msg("trace loaded")

	for instr := range w.instructions {
		switch instr.kind {
		case instrGetRoots:
			instr.reply <- activityInfos(t, collectSeq(t.RootActivities()))
		case instrGetChildren:
			at := t.Activity(instr.id)
			instr.reply <- activityInfos(t, collectSeq(at.DirectChildren()))
		case instrDescribe:
			instr.reply <- describeActivities(t, instr.ids, instr.maxCols)
		}
	}
}

func collectSeq(seq func(func(trace.ActivityTrace) bool)) []trace.ActivityTrace {
	var out []trace.ActivityTrace
	seq(func(at trace.ActivityTrace) bool {
		out = append(out, at)
		return true
	})
	return out
}

func activityInfos(t *trace.ClangTrace, ats []trace.ActivityTrace) []ActivityInfo {
	infos := make([]ActivityInfo, len(ats))
	for i, at := range ats {
		hasKids := false
		at.DirectChildren()(func(trace.ActivityTrace) bool {
			hasKids = true
			return false
		})
		infos[i] = ActivityInfo{
			ID:       at.ID(),
			Kind:     at.Kind(),
			Duration: at.Duration(),
			Self:     at.SelfDuration(),
			HasKids:  hasKids,
		}
	}
	return infos
}

func describeActivities(t *trace.ClangTrace, ids []trace.ActivityID, maxCols int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		at := t.Activity(id)
		text := at.RawDetail()
		if handle, ok := at.Detail(); ok {
			ref := crofiler.LookupEntity(t.Interner, handle)
			if rendered, err := ref.BoundedDisplay(maxCols); err == nil {
				text = rendered
			} else {
				text = "…"
			}
		}
		if text == "" {
			text = at.Kind()
		}
		out[i] = text
	}
	return out
}

// Metadata returns the trace's one-shot metadata. Calling it a second
// time after a previous call already extracted it is a programmer
// error: it panics, matching the reference contract for a resource
// that is meant to be claimed exactly once by the UI at startup.
func (w *Worker) Metadata() (Metadata, error) {
	w.metaMu.Lock()
	defer w.metaMu.Unlock()
	if w.metaExtracted {
		panic("tui: Metadata called twice")
	}
	w.metaExtracted = true
	return w.meta, w.metaErr
}

func (w *Worker) ask(instr instruction) any {
	instr.reply = make(chan any, 1)
	w.instructions <- instr
	return <-instr.reply
}

// RootActivities returns summaries of every top-level activity.
func (w *Worker) RootActivities() []ActivityInfo {
	return w.ask(instruction{kind: instrGetRoots}).([]ActivityInfo)
}

// DirectChildren returns summaries of id's immediate children.
func (w *Worker) DirectChildren(id trace.ActivityID) []ActivityInfo {
	return w.ask(instruction{kind: instrGetChildren, id: id}).([]ActivityInfo)
}

// DescribeActivities renders each id's entity name bounded to maxCols
// columns. A too-narrow budget degrades to "…" per activity rather
// than propagating an error, matching the reference's fallback.
func (w *Worker) DescribeActivities(ids []trace.ActivityID, maxCols int) []string {
	return w.ask(instruction{kind: instrDescribe, ids: ids, maxCols: maxCols}).([]string)
}

// Close closes the instruction channel; the worker goroutine exits
// once it has drained any in-flight requests.
func (w *Worker) Close() {
	close(w.instructions)
}

func fmtDuration(d time.Duration) string {
	return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
}
