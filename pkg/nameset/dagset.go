package nameset

import (
	"fmt"

	"github.com/mhollstein/revset/pkg/idmap"
	"github.com/mhollstein/revset/pkg/spanset"
	"github.com/mhollstein/revset/pkg/vertex"
)

// DagSet is a set backed by a SpanSet of ids plus a shared IdMap.
// This is the efficient representation for sets produced by graph
// algorithms: count, extremes, and membership delegate straight to the span
// set, and iteration resolves one id at a time through the map.
//
// Invariant: every id in the span set must be resolvable through the map.
// No validation happens at construction - a mismatched map surfaces lazily
// as LOOKUP_FAILURE errors during iteration or membership tests.
type DagSet struct {
	spans spanset.SpanSet
	m     *idmap.IdMap
}

// NewDagSet creates a set from a span set and the id map that produced it.
// The map is shared, not copied; the caller must treat it as read-only.
func NewDagSet(spans spanset.SpanSet, m *idmap.IdMap) *DagSet {
	return &DagSet{spans: spans, m: m}
}

// Spans returns the backing span set.
func (s *DagSet) Spans() spanset.SpanSet {
	return s.spans
}

// Map returns the shared id map handle. Two DagSets are eligible for
// range-algebra combination iff their Map pointers are identical.
func (s *DagSet) Map() *idmap.IdMap {
	return s.m
}

// dagIter resolves span-set ids to names one step at a time.
type dagIter struct {
	ids *spanset.Iter
	m   *idmap.IdMap
}

func (it *dagIter) Next() (vertex.Name, bool, error) {
	id, ok := it.ids.Next()
	if !ok {
		return vertex.Name{}, false, nil
	}
	name, err := it.m.VertexName(id)
	if err != nil {
		return vertex.Name{}, false, err
	}
	return name, true, nil
}

// Iter yields names in descending id order: most recent first.
func (s *DagSet) Iter() Iter {
	return &dagIter{ids: s.spans.IterDesc(), m: s.m}
}

// IterRev yields names in ascending id order, mirroring Iter exactly.
func (s *DagSet) IterRev() Iter {
	return &dagIter{ids: s.spans.IterAsc(), m: s.m}
}

// Count returns the number of ids in the span set.
func (s *DagSet) Count() (uint64, error) {
	return s.spans.Count(), nil
}

// First returns the name of the maximum id: the first name Iter yields.
func (s *DagSet) First() (vertex.Name, bool, error) {
	id, ok := s.spans.Max()
	if !ok {
		return vertex.Name{}, false, nil
	}
	name, err := s.m.VertexName(id)
	if err != nil {
		return vertex.Name{}, false, err
	}
	return name, true, nil
}

// Last returns the name of the minimum id: the last name Iter yields.
func (s *DagSet) Last() (vertex.Name, bool, error) {
	id, ok := s.spans.Min()
	if !ok {
		return vertex.Name{}, false, nil
	}
	name, err := s.m.VertexName(id)
	if err != nil {
		return vertex.Name{}, false, err
	}
	return name, true, nil
}

// IsEmpty reports whether the span set is empty.
func (s *DagSet) IsEmpty() (bool, error) {
	return s.spans.IsEmpty(), nil
}

// Contains resolves name to an id and tests span membership.
// An unassigned name is simply not a member; it is not an error.
func (s *DagSet) Contains(name vertex.Name) (bool, error) {
	id, ok, err := s.m.FindIdByName(name)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return s.spans.Contains(id), nil
}

// IsTopoSorted always reports true: span sets are sorted by construction.
func (s *DagSet) IsTopoSorted() bool {
	return true
}

// String renders the set compactly by its spans, e.g. "<dag [0 1 4..6]>".
func (s *DagSet) String() string {
	return fmt.Sprintf("<dag [%s]>", s.spans)
}

var _ Set = (*DagSet)(nil)
