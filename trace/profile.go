package trace

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/stephenswat/crofiler"
)

// Metric is the constraint on FlatProfile's ranking value: anything
// ordered, so both a duration (int64 nanoseconds) and a plain child
// count (int) work as the metric without a wrapper type.
type Metric interface {
	~int | ~int64 | ~float64
}

// FlatProfileOptions configures FlatProfile's unit label and the
// share-of-total cutoff below which a row is dropped.
type FlatProfileOptions struct {
	Unit      string
	Threshold float32
}

// ProfileRow is one ranked entry in a flat profile.
type ProfileRow struct {
	Activity ActivityTrace
	Value    float64
	Share    float32 // value / sum(values), in [0, 1]
	Unit     string
}

// String renders "name (value unit, pct%)" using BoundedDisplay for
// the activity's entity name, budgeted to maxCols columns total minus
// the fixed-width suffix.
func (r ProfileRow) String(maxCols int) string {
	suffix := fmt.Sprintf(" (%.0f%s, %.1f%%)", r.Value, r.Unit, r.Share*100)
	nameCols := maxCols - len(suffix)
	if nameCols < 1 {
		nameCols = 1
	}

	name := r.Activity.RawDetail()
	if handle, ok := r.Activity.Detail(); ok {
		ref := crofiler.LookupEntity(r.Activity.t.Interner, handle)
		if text, err := ref.BoundedDisplay(nameCols); err == nil {
			name = text
		}
	}
	if name == "" {
		name = r.Activity.Kind()
	}
	return name + suffix
}

// FlatProfile ranks every activity in t by metric, descending, drops
// rows below opts.Threshold share of the metric sum, and breaks ties
// by activity ID for deterministic output.
func FlatProfile[M Metric](t *ClangTrace, metric func(ActivityTrace) M, opts FlatProfileOptions) []ProfileRow {
	type scored struct {
		at    ActivityTrace
		value M
	}

	var all []scored
	var sum float64
	for at := range t.AllActivities() {
		v := metric(at)
		all = append(all, scored{at: at, value: v})
		sum += float64(v)
	}

	slices.SortFunc(all, func(a, b scored) int {
		if c := cmp.Compare(b.value, a.value); c != 0 {
			return c
		}
		return cmp.Compare(a.at.ID(), b.at.ID())
	})

	var rows []ProfileRow
	for _, s := range all {
		share := float32(0)
		if sum > 0 {
			share = float32(float64(s.value) / sum)
		}
		if share < opts.Threshold {
			continue
		}
		rows = append(rows, ProfileRow{
			Activity: s.at,
			Value:    float64(s.value),
			Share:    share,
			Unit:     opts.Unit,
		})
	}
	return rows
}
