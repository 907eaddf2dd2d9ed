package spanset

import (
	"slices"
	"sort"
)

// SpanSet is a set of ids stored as sorted, disjoint, non-adjacent inclusive
// ranges. Spans are kept in ascending order of Low; no two spans overlap or
// touch (adjacent spans are merged on construction).
//
// The zero value is the empty set. SpanSet values are immutable - all
// operations return new sets and never modify their operands, so a SpanSet
// may be shared freely between goroutines.
type SpanSet struct {
	spans []Span // ascending by Low, normalized
}

// FromSpans builds a normalized SpanSet from arbitrary spans.
// Overlapping and adjacent input spans are merged.
func FromSpans(spans ...Span) SpanSet {
	if len(spans) == 0 {
		return SpanSet{}
	}
	sorted := slices.Clone(spans)
	slices.SortFunc(sorted, func(a, b Span) int {
		if a.Low != b.Low {
			if a.Low < b.Low {
				return -1
			}
			return 1
		}
		if a.High < b.High {
			return -1
		}
		if a.High > b.High {
			return 1
		}
		return 0
	})

	out := make([]Span, 0, len(sorted))
	cur := sorted[0]
	for _, sp := range sorted[1:] {
		if sp.Low <= cur.High || sp.Low == cur.High+1 {
			if sp.High > cur.High {
				cur.High = sp.High
			}
			continue
		}
		out = append(out, cur)
		cur = sp
	}
	out = append(out, cur)
	return SpanSet{spans: out}
}

// FromIds builds a SpanSet from individual ids. Duplicates are allowed;
// consecutive ids collapse into a single span.
func FromIds(ids ...Id) SpanSet {
	spans := make([]Span, len(ids))
	for i, id := range ids {
		spans[i] = Single(id)
	}
	return FromSpans(spans...)
}

// Empty returns the empty set.
func Empty() SpanSet {
	return SpanSet{}
}

// Count returns the number of ids in the set.
func (s SpanSet) Count() uint64 {
	var n uint64
	for _, sp := range s.spans {
		n += sp.Count()
	}
	return n
}

// IsEmpty reports whether the set contains no ids.
func (s SpanSet) IsEmpty() bool {
	return len(s.spans) == 0
}

// SpanCount returns the number of spans backing the set.
func (s SpanSet) SpanCount() int {
	return len(s.spans)
}

// Spans returns a copy of the normalized spans in ascending order.
func (s SpanSet) Spans() []Span {
	return slices.Clone(s.spans)
}

// Min returns the smallest id in the set, or false if the set is empty.
func (s SpanSet) Min() (Id, bool) {
	if len(s.spans) == 0 {
		return 0, false
	}
	return s.spans[0].Low, true
}

// Max returns the largest id in the set, or false if the set is empty.
func (s SpanSet) Max() (Id, bool) {
	if len(s.spans) == 0 {
		return 0, false
	}
	return s.spans[len(s.spans)-1].High, true
}

// Contains reports whether id is in the set.
// Runs in O(log n) in the number of spans.
func (s SpanSet) Contains(id Id) bool {
	// First span with High >= id; id is present iff that span covers it.
	i := sort.Search(len(s.spans), func(i int) bool {
		return s.spans[i].High >= id
	})
	return i < len(s.spans) && s.spans[i].Contains(id)
}

// Equal reports whether two sets contain exactly the same ids.
// Normalization makes this a structural comparison of spans.
func (s SpanSet) Equal(other SpanSet) bool {
	return slices.Equal(s.spans, other.spans)
}

// String renders the set's spans in ascending order, e.g. "0 1 4..6".
// The empty set renders as "".
func (s SpanSet) String() string {
	return joinSpans(s.spans)
}

// Union returns the set of ids present in either set.
func (s SpanSet) Union(other SpanSet) SpanSet {
	if s.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return s
	}

	out := make([]Span, 0, len(s.spans)+len(other.spans))
	i, j := 0, 0
	var cur Span
	started := false
	push := func(sp Span) {
		if !started {
			cur, started = sp, true
			return
		}
		if sp.Low <= cur.High || sp.Low == cur.High+1 {
			if sp.High > cur.High {
				cur.High = sp.High
			}
			return
		}
		out = append(out, cur)
		cur = sp
	}
	for i < len(s.spans) || j < len(other.spans) {
		switch {
		case j >= len(other.spans) || (i < len(s.spans) && s.spans[i].Low <= other.spans[j].Low):
			push(s.spans[i])
			i++
		default:
			push(other.spans[j])
			j++
		}
	}
	out = append(out, cur)
	return SpanSet{spans: out}
}

// Intersection returns the set of ids present in both sets.
func (s SpanSet) Intersection(other SpanSet) SpanSet {
	var out []Span
	i, j := 0, 0
	for i < len(s.spans) && j < len(other.spans) {
		a, b := s.spans[i], other.spans[j]
		low, high := a.Low, a.High
		if b.Low > low {
			low = b.Low
		}
		if b.High < high {
			high = b.High
		}
		if low <= high {
			out = append(out, Span{Low: low, High: high})
		}
		// Advance whichever span ends first; the other may still overlap
		// the next span on this side.
		if a.High < b.High {
			i++
		} else {
			j++
		}
	}
	return SpanSet{spans: out}
}

// Difference returns the set of ids present in s but not in other.
func (s SpanSet) Difference(other SpanSet) SpanSet {
	if s.IsEmpty() || other.IsEmpty() {
		return s
	}

	var out []Span
	j := 0
	for _, a := range s.spans {
		low := a.Low
		covered := false
		for j < len(other.spans) && other.spans[j].High < low {
			j++
		}
		for k := j; k < len(other.spans) && other.spans[k].Low <= a.High; k++ {
			b := other.spans[k]
			if b.Low > low {
				out = append(out, Span{Low: low, High: b.Low - 1})
			}
			if b.High >= a.High {
				covered = true
				break
			}
			low = b.High + 1
		}
		if !covered {
			out = append(out, Span{Low: low, High: a.High})
		}
	}
	return SpanSet{spans: out}
}
