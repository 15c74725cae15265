package crofiler

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DisplayWidth returns the number of terminal columns s occupies,
// using East-Asian-Width-aware, zero-width-combining-mark-aware
// column accounting rather than a byte or rune count.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

func entityDisplayWidth(in *Interner, e Entity) int {
	return DisplayWidth(renderEntity(in, e, elision{}))
}

// elisionLevels is tried in order; the first level whose rendering
// fits maxCols wins. It implements §4.7's truncation priority:
// template-parameter lists, then function-signature parameters, then
// inner scope names, then the unqualified-id itself.
var elisionLevels = []elision{
	{},
	{templates: true},
	{templates: true, sigParams: true},
	{templates: true, sigParams: true, scopeStage: 1},
	{templates: true, sigParams: true, scopeStage: 2},
	{all: true},
}

// boundedEntityDisplay renders e inside maxCols columns, falling back
// through elisionLevels until one fits. The last level always fits
// any budget of at least one column, since it renders a single `…`.
func boundedEntityDisplay(in *Interner, e Entity, maxCols int) (string, error) {
	if maxCols < 1 {
		return "", &DisplayError{MaxCols: maxCols}
	}
	for _, el := range elisionLevels {
		text := renderEntity(in, e, el)
		if DisplayWidth(text) <= maxCols {
			return text, nil
		}
	}
	// Unreachable in practice: the `all` level always renders "…"
	// (width 1), and maxCols >= 1 was checked above.
	return "…", nil
}

// graphemeClusters splits s into its grapheme clusters, so truncation
// never splits a multi-rune cluster (e.g. a combining-mark sequence or
// emoji ZWJ sequence) across the ellipsis boundary.
func graphemeClusters(s string) []string {
	var clusters []string
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(s, state)
		clusters = append(clusters, cluster)
		s = rest
		state = newState
	}
	return clusters
}

// TruncateMiddle implements §4.7's policy for raw strings and
// filesystem paths: if s already fits, return it unchanged; otherwise
// remove middle grapheme clusters and insert a single `…`, splitting
// the budget so the trailer gets (maxCols-1)/2 columns and the header
// the rest.
func TruncateMiddle(s string, maxCols int) (string, error) {
	if DisplayWidth(s) <= maxCols {
		return s, nil
	}
	if maxCols < 1 {
		return "", &DisplayError{MaxCols: maxCols}
	}

	clusters := graphemeClusters(s)
	trailerBudget := (maxCols - 1) / 2
	headerBudget := maxCols - 1 - trailerBudget

	var header string
	headerWidth := 0
	i := 0
	for ; i < len(clusters); i++ {
		w := DisplayWidth(clusters[i])
		if headerWidth+w > headerBudget {
			break
		}
		header += clusters[i]
		headerWidth += w
	}

	var trailer string
	trailerWidth := 0
	for j := len(clusters) - 1; j > i; j-- {
		w := DisplayWidth(clusters[j])
		if trailerWidth+w > trailerBudget {
			break
		}
		trailer = clusters[j] + trailer
		trailerWidth += w
	}

	return header + "…" + trailer, nil
}
