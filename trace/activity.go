package trace

import (
	"iter"
	"time"

	"github.com/stephenswat/crofiler"
)

// Activity returns the accessor for id. Infallible for any id obtained
// from t via RootActivities/AllActivities/DirectChildren.
func (t *ClangTrace) Activity(id ActivityID) ActivityTrace {
	return ActivityTrace{t: t, id: id}
}

// RootActivities iterates the top-level activities, in the order they
// were encountered while building the forest.
func (t *ClangTrace) RootActivities() iter.Seq[ActivityTrace] {
	return func(yield func(ActivityTrace) bool) {
		for _, id := range t.roots {
			if !yield(t.Activity(id)) {
				return
			}
		}
	}
}

// AllActivities iterates every activity in the trace, regardless of
// tree position, in arena order.
func (t *ClangTrace) AllActivities() iter.Seq[ActivityTrace] {
	return func(yield func(ActivityTrace) bool) {
		for i := range t.activities {
			if !yield(t.Activity(ActivityID(i))) {
				return
			}
		}
	}
}

// GlobalStats returns totals and per-kind counts computed at load time.
func (t *ClangTrace) GlobalStats() GlobalStats {
	return t.stats
}

func (a ActivityTrace) ID() ActivityID { return a.id }

func (a ActivityTrace) raw() Activity { return a.t.activities[a.id] }

func (a ActivityTrace) Kind() string { return a.raw().Kind }

// Detail returns the parsed entity handle for this activity's
// args.detail, and whether parsing succeeded - a detail that failed
// to parse still has its RawDetail text available for display.
func (a ActivityTrace) Detail() (crofiler.EntityHandle, bool) {
	raw := a.raw()
	if int(raw.Detail) == crofiler.NoHandle {
		return raw.Detail, false
	}
	return raw.Detail, true
}

// RawDetail returns the unparsed args.detail text, "" if absent.
func (a ActivityTrace) RawDetail() string { return a.raw().RawDetail }

// Duration returns the activity's wall time including its children:
// the clang event's own `dur` field, which already spans its nested
// children by construction.
func (a ActivityTrace) Duration() time.Duration {
	return time.Duration(a.raw().Dur) * time.Microsecond
}

// SelfDuration returns wall time excluding children: this activity's
// duration minus the sum of its direct children's durations.
func (a ActivityTrace) SelfDuration() time.Duration {
	raw := a.raw()
	self := raw.Dur
	for _, c := range raw.children {
		self -= a.t.activities[c].Dur
	}
	if self < 0 {
		self = 0
	}
	return time.Duration(self) * time.Microsecond
}

// DirectChildren iterates this activity's immediate children.
func (a ActivityTrace) DirectChildren() iter.Seq[ActivityTrace] {
	return func(yield func(ActivityTrace) bool) {
		for _, c := range a.raw().children {
			if !yield(a.t.Activity(c)) {
				return
			}
		}
	}
}

// Parent returns the activity's parent and whether it has one.
func (a ActivityTrace) Parent() (ActivityTrace, bool) {
	p := a.raw().parent
	if p == NoActivity {
		return ActivityTrace{}, false
	}
	return a.t.Activity(p), true
}

// StackTrace resolves the native call stack captured when this
// activity began (clang's `sf` field), innermost frame first, by
// walking the stackFrames parent chain. Empty if the event carried no
// `sf` or the id isn't present in the trace's stackFrames map.
func (a ActivityTrace) StackTrace() []StackFrame {
	return a.t.resolveStack(a.raw().stackFrame)
}

// EndStackTrace resolves the native call stack captured when this
// activity ended (clang's `esf` field), innermost frame first.
func (a ActivityTrace) EndStackTrace() []StackFrame {
	return a.t.resolveStack(a.raw().endStackFrame)
}

// resolveStack walks the stackFrames map from id up through each
// frame's Parent until it hits a frame with no parent or an id absent
// from the map, returning the chain innermost-first.
func (t *ClangTrace) resolveStack(id StackFrameID) []StackFrame {
	var chain []StackFrame
	for id != "" {
		frame, ok := t.frames[id]
		if !ok {
			break
		}
		chain = append(chain, frame)
		id = frame.Parent
	}
	return chain
}
