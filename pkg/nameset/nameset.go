// Package nameset implements lazy, composable set algebra over commit-graph
// vertices.
//
// A Set is an immutable value describing a set of vertex names. Concrete
// representations differ in how they answer queries:
//
//   - DagSet: a span set of integer ids plus a shared id map. This is the
//     fast, common case for sets produced by graph algorithms.
//   - StaticSet: an explicit list of names, e.g. command-line arguments.
//   - combination nodes: lazily evaluated results of Union, Intersection,
//     and Difference over operands that do not share an id space.
//
// The top-level Union, Intersection, and Difference functions inspect their
// operands: when both are DagSets sharing the identical id map instance the
// operation is rewritten into pure range algebra on the span sets; otherwise
// a generic combination node iterates and compares vertex names. Callers
// observe identical elements either way - only the cost differs.
//
// Sets are value objects: operations never mutate their operands, results
// may share backing structure (the id map) with their inputs, and any set
// may be queried from multiple goroutines concurrently.
package nameset

import (
	"github.com/mhollstein/revset/pkg/vertex"
)

// Set is the query capability implemented by every vertex-set
// representation.
//
// All failures are reported as errors, never panics. A lookup failure
// (an id with no name) signals id map corruption or a span set paired with
// the wrong map; storage failures propagate from persistent id map
// backends. Callers decide whether partial results are usable.
type Set interface {
	// Iter returns a fresh cursor over the set. For topologically sorted
	// representations the order is most recent first: the vertex with the
	// maximum id is yielded before its ancestors. Calling Iter again
	// returns an independent cursor starting from the beginning.
	Iter() Iter

	// IterRev returns a fresh cursor yielding the exact reverse of Iter's
	// order. The two cursors never disagree on the relative order of two
	// elements present in both.
	IterRev() Iter

	// Count returns the exact cardinality; it always equals the number of
	// names a full Iter traversal would yield.
	Count() (uint64, error)

	// First returns the first name Iter would yield.
	// The boolean is false iff the set is empty.
	First() (vertex.Name, bool, error)

	// Last returns the last name Iter would yield (the first of IterRev).
	// The boolean is false iff the set is empty.
	Last() (vertex.Name, bool, error)

	// IsEmpty reports whether the set has no elements.
	IsEmpty() (bool, error)

	// Contains reports whether name is an element of the set. It is always
	// consistent with membership as observed by Iter.
	Contains(name vertex.Name) (bool, error)

	// IsTopoSorted reports whether Iter yields names in an order
	// consistent with the originating graph's topological order. This is
	// a declared property of the representation, not recomputed per call;
	// pure range-backed sets always report true.
	IsTopoSorted() bool

	// String returns the debug rendering used by diagnostics and tests.
	// Range-backed sets render compactly (their spans); combination nodes
	// render the operator and both operand renderings. Tests rely on this
	// to confirm which code path built a result.
	String() string
}

// Iter is a pull-based cursor over vertex names.
//
// Next returns the next name with ok=true, or ok=false when the sequence is
// exhausted. A non-nil error aborts the sequence: every implementation in
// this package stops at the first lookup failure rather than skipping the
// failed element. Abandoning a cursor early has no side effects.
type Iter interface {
	Next() (name vertex.Name, ok bool, err error)
}

// Names drains a fresh forward cursor and returns all names in order.
func Names(s Set) ([]vertex.Name, error) {
	var out []vertex.Name
	it := s.Iter()
	for {
		name, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, name)
	}
}
