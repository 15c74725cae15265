package crofiler

import "fmt"

// Pos is a byte offset into the string that was handed to ParseEntity.
type Pos int

// Span is a half-open [Start, End) byte range inside the parsed entity
// string. Spans exist purely for error reporting: parsed entities never
// retain them, since two equal substrings intern to the same handle
// regardless of where they appeared in the source.
type Span struct {
	Start Pos
	End   Pos
}

func NewSpan(start, end Pos) Span {
	return Span{Start: start, End: end}
}

func (s Span) String() string {
	if s.Start == s.End {
		return fmt.Sprintf("%d", s.Start)
	}
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}
