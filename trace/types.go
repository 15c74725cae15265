package trace

import (
	"time"

	"github.com/stephenswat/crofiler"
)

// StackFrameID indexes the stackFrames map clang emits alongside the
// event array (the `sf`/`esf` fields on an event reference frames by
// this id).
type StackFrameID string

// StackFrame is one decoded entry from the trace's `stackFrames` map.
type StackFrame struct {
	Category string
	Name     string
	Parent   StackFrameID // "" if this is a root frame
}

// RawEvent is one decoded Chrome Trace Event. Only the fields this
// program cares about are kept; everything else in the source JSON
// object is discarded during decoding.
type RawEvent struct {
	Phase         byte // 'X' (complete) or 'M' (metadata)
	Name          string
	Category      string
	Ts            int64 // microseconds
	Dur           int64 // microseconds, complete events only
	Pid           int
	Tid           int
	Detail        string       // args.detail, "" if absent
	StackFrame    StackFrameID // "sf", "" if absent
	EndStackFrame StackFrameID // "esf", "" if absent
}

// ActivityID identifies one node in a ClangTrace's activity forest.
type ActivityID int

// NoActivity marks an absent parent (a root activity).
const NoActivity ActivityID = -1

// Activity is one node in the trace's time-nested call tree, built
// from a single complete ("X") event.
type Activity struct {
	Kind          string
	Detail        crofiler.EntityHandle // NoHandle if Detail couldn't be parsed
	RawDetail     string                // the original args.detail text, always kept
	Ts            int64
	Dur           int64
	stackFrame    StackFrameID // "sf", "" if absent
	endStackFrame StackFrameID // "esf", "" if absent
	parent        ActivityID   // NoActivity (-1) for roots
	children      []ActivityID
}

// ActivityTrace is a handle-like accessor bundling an activity with
// the trace that owns it, so duration/traversal methods don't need
// the trace threaded through every call site.
type ActivityTrace struct {
	t  *ClangTrace
	id ActivityID
}

// GlobalStats summarizes a loaded trace: total wall time and an
// activity count broken down by Activity.Kind.
type GlobalStats struct {
	TotalDuration time.Duration
	CountByKind   map[string]int
}

// ClangTrace is the root object returned by Load/LoadBytes: a forest
// of activities plus the interner that owns every entity name parsed
// out of the trace's args.detail fields.
type ClangTrace struct {
	ProcessName string
	Interner    *crofiler.Interner
	activities  []Activity
	roots       []ActivityID
	stats       GlobalStats
	frames      map[StackFrameID]StackFrame
}
