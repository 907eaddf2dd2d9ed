package spanset

import (
	"slices"
	"testing"
)

func ids(s SpanSet) []Id {
	var out []Id
	it := s.IterAsc()
	for id, ok := it.Next(); ok; id, ok = it.Next() {
		out = append(out, id)
	}
	return out
}

func TestFromSpansNormalization(t *testing.T) {
	tests := []struct {
		name  string
		input []Span
		want  string
	}{
		{"Empty", nil, ""},
		{"Single", []Span{Single(3)}, "3"},
		{"Unsorted", []Span{Single(5), Single(1)}, "1 5"},
		{"Adjacent", []Span{NewSpan(0, 2), NewSpan(3, 5)}, "0..5"},
		{"Overlapping", []Span{NewSpan(0, 4), NewSpan(2, 6)}, "0..6"},
		{"ContainedSpan", []Span{NewSpan(0, 9), NewSpan(3, 4)}, "0..9"},
		{"Duplicates", []Span{Single(7), Single(7), Single(7)}, "7"},
		{"Disjoint", []Span{NewSpan(0, 1), NewSpan(4, 6)}, "0 1 4..6"},
		{"AdjacentSingles", []Span{Single(2), Single(3)}, "2 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromSpans(tt.input...)
			if got.String() != tt.want {
				t.Errorf("FromSpans() = %q, want %q", got.String(), tt.want)
			}
			// Normalization invariant: spans strictly increasing, never touching.
			spans := got.Spans()
			for i := 1; i < len(spans); i++ {
				if spans[i].Low <= spans[i-1].High+1 {
					t.Errorf("spans %v and %v overlap or touch", spans[i-1], spans[i])
				}
			}
		})
	}
}

func TestFromIds(t *testing.T) {
	s := FromIds(6, 0, 1, 5, 4)
	if got := s.String(); got != "0 1 4..6" {
		t.Errorf("FromIds = %q, want %q", got, "0 1 4..6")
	}
	if got := s.Count(); got != 5 {
		t.Errorf("Count = %d, want 5", got)
	}
}

func TestQueries(t *testing.T) {
	s := FromSpans(NewSpan(0, 3), NewSpan(10, 10), NewSpan(20, 29))

	if got := s.Count(); got != 15 {
		t.Errorf("Count = %d, want 15", got)
	}
	if s.IsEmpty() {
		t.Error("IsEmpty = true for non-empty set")
	}
	if min, ok := s.Min(); !ok || min != 0 {
		t.Errorf("Min = %d, %v; want 0, true", min, ok)
	}
	if max, ok := s.Max(); !ok || max != 29 {
		t.Errorf("Max = %d, %v; want 29, true", max, ok)
	}

	for _, id := range []Id{0, 3, 10, 20, 29} {
		if !s.Contains(id) {
			t.Errorf("Contains(%d) = false, want true", id)
		}
	}
	for _, id := range []Id{4, 9, 11, 19, 30, 100} {
		if s.Contains(id) {
			t.Errorf("Contains(%d) = true, want false", id)
		}
	}

	empty := Empty()
	if !empty.IsEmpty() {
		t.Error("Empty().IsEmpty() = false")
	}
	if _, ok := empty.Min(); ok {
		t.Error("Empty().Min() returned a value")
	}
	if _, ok := empty.Max(); ok {
		t.Error("Empty().Max() returned a value")
	}
}

func TestUnion(t *testing.T) {
	tests := []struct {
		name string
		a, b SpanSet
		want string
	}{
		{"Disjoint", FromSpans(NewSpan(0, 1)), FromSpans(NewSpan(4, 5)), "0 1 4 5"},
		{"Touching", FromSpans(NewSpan(0, 2)), FromSpans(NewSpan(3, 5)), "0..5"},
		{"Overlapping", FromSpans(NewSpan(0, 4)), FromSpans(NewSpan(2, 8)), "0..8"},
		{"Nested", FromSpans(NewSpan(0, 9)), FromSpans(NewSpan(3, 4)), "0..9"},
		{"EmptyRight", FromSpans(NewSpan(1, 2)), Empty(), "1 2"},
		{"EmptyLeft", Empty(), FromSpans(NewSpan(1, 2)), "1 2"},
		{"BothEmpty", Empty(), Empty(), ""},
		{
			"Interleaved",
			FromSpans(NewSpan(0, 1), NewSpan(10, 11)),
			FromSpans(NewSpan(4, 5), NewSpan(20, 21)),
			"0 1 4 5 10 11 20 21",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Union(tt.b)
			if got.String() != tt.want {
				t.Errorf("Union = %q, want %q", got.String(), tt.want)
			}
			// Union is commutative.
			if rev := tt.b.Union(tt.a); !rev.Equal(got) {
				t.Errorf("Union not commutative: %q vs %q", got.String(), rev.String())
			}
		})
	}
}

func TestIntersection(t *testing.T) {
	tests := []struct {
		name string
		a, b SpanSet
		want string
	}{
		{"Disjoint", FromSpans(NewSpan(0, 1)), FromSpans(NewSpan(4, 5)), ""},
		{"Overlapping", FromSpans(NewSpan(0, 4)), FromSpans(NewSpan(2, 8)), "2..4"},
		{"Nested", FromSpans(NewSpan(0, 9)), FromSpans(NewSpan(3, 4)), "3 4"},
		{"Identical", FromSpans(NewSpan(2, 6)), FromSpans(NewSpan(2, 6)), "2..6"},
		{"EmptyRight", FromSpans(NewSpan(1, 2)), Empty(), ""},
		{
			"MultiOverlap",
			FromSpans(NewSpan(0, 10)),
			FromSpans(NewSpan(1, 2), NewSpan(5, 6), NewSpan(9, 14)),
			"1 2 5 6 9 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Intersection(tt.b)
			if got.String() != tt.want {
				t.Errorf("Intersection = %q, want %q", got.String(), tt.want)
			}
			if rev := tt.b.Intersection(tt.a); !rev.Equal(got) {
				t.Errorf("Intersection not commutative: %q vs %q", got.String(), rev.String())
			}
		})
	}
}

func TestDifference(t *testing.T) {
	tests := []struct {
		name string
		a, b SpanSet
		want string
	}{
		{"Disjoint", FromSpans(NewSpan(0, 1)), FromSpans(NewSpan(4, 5)), "0 1"},
		{"SplitMiddle", FromSpans(NewSpan(0, 9)), FromSpans(NewSpan(3, 4)), "0..2 5..9"},
		{"TrimLow", FromSpans(NewSpan(0, 9)), FromSpans(NewSpan(0, 4)), "5..9"},
		{"TrimHigh", FromSpans(NewSpan(0, 9)), FromSpans(NewSpan(5, 20)), "0..4"},
		{"FullyCovered", FromSpans(NewSpan(3, 4)), FromSpans(NewSpan(0, 9)), ""},
		{"Self", FromSpans(NewSpan(2, 6)), FromSpans(NewSpan(2, 6)), ""},
		{"EmptyRight", FromSpans(NewSpan(1, 2)), Empty(), "1 2"},
		{"EmptyLeft", Empty(), FromSpans(NewSpan(1, 2)), ""},
		{
			"ManyHoles",
			FromSpans(NewSpan(0, 20)),
			FromSpans(Single(0), NewSpan(5, 6), Single(20)),
			"1..4 7..19",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Difference(tt.b)
			if got.String() != tt.want {
				t.Errorf("Difference = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestInclusionExclusion(t *testing.T) {
	a := FromSpans(NewSpan(0, 3), NewSpan(8, 12))
	b := FromSpans(NewSpan(2, 9), NewSpan(20, 20))

	union := a.Union(b).Count()
	inter := a.Intersection(b).Count()
	if union != a.Count()+b.Count()-inter {
		t.Errorf("|A∪B| = %d, want |A|+|B|-|A∩B| = %d", union, a.Count()+b.Count()-inter)
	}
}

func TestIterBothDirections(t *testing.T) {
	s := FromSpans(NewSpan(0, 1), NewSpan(4, 6))

	asc := ids(s)
	wantAsc := []Id{0, 1, 4, 5, 6}
	if !slices.Equal(asc, wantAsc) {
		t.Errorf("IterAsc yielded %v, want %v", asc, wantAsc)
	}

	var desc []Id
	it := s.IterDesc()
	for id, ok := it.Next(); ok; id, ok = it.Next() {
		desc = append(desc, id)
	}
	slices.Reverse(desc)
	if !slices.Equal(desc, wantAsc) {
		t.Errorf("IterDesc is not the mirror of IterAsc: %v", desc)
	}

	// Fresh cursors restart from the beginning.
	it2 := s.IterDesc()
	if id, ok := it2.Next(); !ok || id != 6 {
		t.Errorf("fresh IterDesc first id = %d, %v; want 6, true", id, ok)
	}

	// Empty set cursors are immediately exhausted.
	if _, ok := Empty().IterDesc().Next(); ok {
		t.Error("IterDesc on empty set yielded an id")
	}
	if _, ok := Empty().IterAsc().Next(); ok {
		t.Error("IterAsc on empty set yielded an id")
	}
}

func TestIterCountAgreement(t *testing.T) {
	s := FromSpans(NewSpan(3, 3), NewSpan(7, 15), NewSpan(100, 102))
	if got := uint64(len(ids(s))); got != s.Count() {
		t.Errorf("iterated %d ids, Count() = %d", got, s.Count())
	}
}
