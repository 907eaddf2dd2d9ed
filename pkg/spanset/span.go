// Package spanset provides a compact range-based representation of sets of
// commit ids.
//
// A SpanSet stores a set of non-negative integer ids as a sorted sequence of
// disjoint, non-adjacent inclusive ranges (spans). Sets derived from graph
// algorithms (ancestors, descendants, ranges) tend to cover long contiguous
// id runs, so a set spanning millions of commits usually needs only a
// handful of spans. The binary set operations (union, intersection,
// difference) run in time linear in the number of spans, not the number of
// ids - that is the entire point of this representation.
package spanset

import (
	"fmt"
	"strings"
)

// Id is a dense non-negative integer identifier assigned to a vertex by an
// id map. Ids are assigned so that integer order approximates a topological
// order of the graph: every parent has a smaller id than its children.
type Id uint64

// Span is an inclusive integer range [Low, High] with Low <= High.
type Span struct {
	Low  Id
	High Id
}

// NewSpan creates a span covering [low, high]. The arguments may be given
// in either order.
func NewSpan(low, high Id) Span {
	if low > high {
		low, high = high, low
	}
	return Span{Low: low, High: high}
}

// Single creates a span covering exactly one id.
func Single(id Id) Span {
	return Span{Low: id, High: id}
}

// Count returns the number of ids covered by the span.
func (s Span) Count() uint64 {
	return uint64(s.High-s.Low) + 1
}

// Contains reports whether id falls within the span.
func (s Span) Contains(id Id) bool {
	return s.Low <= id && id <= s.High
}

// String renders the span compactly: a single id as "3", a pair as "3 4",
// and longer runs as "3..7" (inclusive).
func (s Span) String() string {
	switch s.Count() {
	case 1:
		return fmt.Sprintf("%d", s.Low)
	case 2:
		return fmt.Sprintf("%d %d", s.Low, s.High)
	default:
		return fmt.Sprintf("%d..%d", s.Low, s.High)
	}
}

// joinSpans renders spans separated by spaces, e.g. "0 1 4..6".
func joinSpans(spans []Span) string {
	parts := make([]string, len(spans))
	for i, sp := range spans {
		parts[i] = sp.String()
	}
	return strings.Join(parts, " ")
}
