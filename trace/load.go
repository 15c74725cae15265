package trace

import (
	"os"
	"sort"
	"strconv"

	"github.com/buger/jsonparser"
	"github.com/stephenswat/crofiler"
)

// Load reads and decodes a clang -ftime-trace JSON file at path.
func Load(path string) (*ClangTrace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Kind: LoadErrorFileNotFound, Path: path, Err: err}
		}
		return nil, &LoadError{Kind: LoadErrorMalformedJSON, Path: path, Err: err}
	}
	return LoadBytes(data)
}

// LoadBytes decodes an in-memory clang -ftime-trace buffer. It is used
// directly by tests and by the TUI's background worker, which reads
// the file itself before handing bytes across the worker boundary.
func LoadBytes(data []byte) (*ClangTrace, error) {
	in := crofiler.NewInterner()

	frames, err := decodeStackFrames(data)
	if err != nil {
		return nil, err
	}

	var events []RawEvent
	processName := ""

	_, err = jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, iterErr error) {
		if iterErr != nil || dataType != jsonparser.Object {
			return
		}
		ev, ok := decodeEvent(value, in)
		if !ok {
			return
		}
		if ev.Phase == 'M' && ev.Name == "process_name" {
			if name, perr := jsonparser.GetString(value, "args", "name"); perr == nil {
				processName = name
			}
		}
		if ev.Phase == 'X' {
			events = append(events, ev)
		}
	}, "traceEvents")
	if err != nil {
		return nil, &LoadError{Kind: LoadErrorMalformedJSON, Err: err}
	}

	if len(events) == 0 {
		return nil, &LoadError{Kind: LoadErrorEmptyTrace}
	}

	t := &ClangTrace{
		ProcessName: processName,
		Interner:    in,
		frames:      frames,
	}
	buildActivityForest(t, events)
	computeGlobalStats(t)
	return t, nil
}

// decodeStackFrames decodes the top-level `stackFrames` map, if
// present and an object; otherwise it returns an empty map. Events
// refer into it through their `sf` and `esf` ids (see decodeEvent);
// inline `stack`/`estack` arrays on events are not read.
func decodeStackFrames(data []byte) (map[StackFrameID]StackFrame, error) {
	frames := map[StackFrameID]StackFrame{}
	raw, dataType, _, err := jsonparser.Get(data, "stackFrames")
	if err == jsonparser.KeyPathNotFoundError {
		return frames, nil
	}
	if err != nil || dataType != jsonparser.Object {
		return frames, nil
	}
	_ = jsonparser.ObjectEach(raw, func(key []byte, value []byte, dataType jsonparser.ValueType, offset int) error {
		name, _ := jsonparser.GetString(value, "name")
		category, _ := jsonparser.GetString(value, "category")
		parent, _ := jsonparser.GetString(value, "parent")
		frames[StackFrameID(key)] = StackFrame{
			Category: category,
			Name:     name,
			Parent:   StackFrameID(parent),
		}
		return nil
	})
	return frames, nil
}

// decodeEvent pulls the fields this program cares about out of one
// trace-event JSON object. Unrecognized or unparseable fields are
// simply left at their zero value rather than aborting the decode.
func decodeEvent(value []byte, in *crofiler.Interner) (RawEvent, bool) {
	phStr, err := jsonparser.GetString(value, "ph")
	if err != nil || len(phStr) == 0 {
		return RawEvent{}, false
	}
	ev := RawEvent{Phase: phStr[0]}

	ev.Name, _ = jsonparser.GetString(value, "name")
	ev.Category, _ = jsonparser.GetString(value, "cat")
	if ts, perr := jsonparser.GetInt(value, "ts"); perr == nil {
		ev.Ts = ts
	}
	if dur, perr := jsonparser.GetInt(value, "dur"); perr == nil {
		ev.Dur = dur
	}
	if pid, perr := jsonparser.GetInt(value, "pid"); perr == nil {
		ev.Pid = int(pid)
	}
	if tid, perr := jsonparser.GetInt(value, "tid"); perr == nil {
		ev.Tid = int(tid)
	}
	if detail, perr := jsonparser.GetString(value, "args", "detail"); perr == nil {
		ev.Detail = detail
	}
	if sf, perr := jsonparser.GetInt(value, "sf"); perr == nil {
		ev.StackFrame = StackFrameID(strconv.FormatInt(sf, 10))
	}
	if esf, perr := jsonparser.GetInt(value, "esf"); perr == nil {
		ev.EndStackFrame = StackFrameID(strconv.FormatInt(esf, 10))
	}

	return ev, true
}

// buildActivityForest nests complete events in time: an event B is a
// child of the innermost still-open event A that contains B's
// [ts, ts+dur) interval. Events are sorted by start timestamp (ties
// broken by descending duration, so an outer event that starts at the
// same instant as its first child is processed first) and walked in a
// single forward pass with a stack of currently-open activities.
func buildActivityForest(t *ClangTrace, events []RawEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Ts != events[j].Ts {
			return events[i].Ts < events[j].Ts
		}
		return events[i].Dur > events[j].Dur
	})

	var openStack []ActivityID

	for _, ev := range events {
		detail := crofiler.EntityHandle(crofiler.NoHandle)
		if ev.Detail != "" {
			if h, err := crofiler.ParseEntity(t.Interner, ev.Detail); err == nil {
				detail = h
			}
		}

		id := ActivityID(len(t.activities))
		t.activities = append(t.activities, Activity{
			Kind:          ev.Name,
			Detail:        detail,
			RawDetail:     ev.Detail,
			Ts:            ev.Ts,
			Dur:           ev.Dur,
			stackFrame:    ev.StackFrame,
			endStackFrame: ev.EndStackFrame,
			parent:        NoActivity,
		})

		end := ev.Ts + ev.Dur
		for len(openStack) > 0 {
			top := openStack[len(openStack)-1]
			topEnd := t.activities[top].Ts + t.activities[top].Dur
			if topEnd >= end {
				break
			}
			openStack = openStack[:len(openStack)-1]
		}

		if len(openStack) == 0 {
			t.roots = append(t.roots, id)
		} else {
			parent := openStack[len(openStack)-1]
			t.activities[id].parent = parent
			t.activities[parent].children = append(t.activities[parent].children, id)
		}
		openStack = append(openStack, id)
	}
}

func computeGlobalStats(t *ClangTrace) {
	stats := GlobalStats{CountByKind: map[string]int{}}
	for _, root := range t.roots {
		at := t.Activity(root)
		stats.TotalDuration += at.Duration()
	}
	for _, a := range t.activities {
		stats.CountByKind[a.Kind]++
	}
	t.stats = stats
}
