package nameset

import (
	"fmt"

	"github.com/mhollstein/revset/pkg/vertex"
)

// setOp tags a combination node with the operator that produced it.
type setOp int

const (
	opAnd setOp = iota
	opOr
	opDifference
)

func (op setOp) String() string {
	switch op {
	case opAnd:
		return "and"
	case opOr:
		return "or"
	default:
		return "difference"
	}
}

// metaSet is a lazily evaluated combination of two sets. It stores only the
// operator and the operand sets; elements are computed on demand by
// iterating one operand and probing the other by name. This is the
// representation-agnostic slow path used when the operands do not share an
// id space.
type metaSet struct {
	op       setOp
	lhs, rhs Set
}

// filterIter yields names from inner for which keep(rhs.Contains(name))
// holds. It aborts on the first lookup error from either side.
type filterIter struct {
	inner Iter
	rhs   Set
	keep  bool // yield when Contains == keep
}

func (it *filterIter) Next() (vertex.Name, bool, error) {
	for {
		name, ok, err := it.inner.Next()
		if err != nil || !ok {
			return vertex.Name{}, false, err
		}
		member, err := it.rhs.Contains(name)
		if err != nil {
			return vertex.Name{}, false, err
		}
		if member == it.keep {
			return name, true, nil
		}
	}
}

// chainIter yields everything from head, then everything from tail.
type chainIter struct {
	head, tail Iter
	onTail     bool
}

func (it *chainIter) Next() (vertex.Name, bool, error) {
	if !it.onTail {
		name, ok, err := it.head.Next()
		if err != nil {
			return vertex.Name{}, false, err
		}
		if ok {
			return name, true, nil
		}
		it.onTail = true
	}
	return it.tail.Next()
}

// Iter enumerates the combination lazily:
//
//	and:        lhs elements also present in rhs
//	difference: lhs elements absent from rhs
//	or:         all lhs elements, then rhs elements absent from lhs
func (s *metaSet) Iter() Iter {
	switch s.op {
	case opAnd:
		return &filterIter{inner: s.lhs.Iter(), rhs: s.rhs, keep: true}
	case opDifference:
		return &filterIter{inner: s.lhs.Iter(), rhs: s.rhs, keep: false}
	default: // opOr
		return &chainIter{
			head: s.lhs.Iter(),
			tail: &filterIter{inner: s.rhs.Iter(), rhs: s.lhs, keep: false},
		}
	}
}

// IterRev is the exact mirror of Iter. For the or-set the mirrored order is
// the reversed rhs-extras followed by the reversed lhs.
func (s *metaSet) IterRev() Iter {
	switch s.op {
	case opAnd:
		return &filterIter{inner: s.lhs.IterRev(), rhs: s.rhs, keep: true}
	case opDifference:
		return &filterIter{inner: s.lhs.IterRev(), rhs: s.rhs, keep: false}
	default: // opOr
		return &chainIter{
			head: &filterIter{inner: s.rhs.IterRev(), rhs: s.lhs, keep: false},
			tail: s.lhs.IterRev(),
		}
	}
}

// Count iterates and counts; combination nodes have no cheaper cardinality.
func (s *metaSet) Count() (uint64, error) {
	var n uint64
	it := s.Iter()
	for {
		_, ok, err := it.Next()
		if err != nil {
			return 0, err
		}
		if !ok {
			return n, nil
		}
		n++
	}
}

// First returns the first element Iter would yield.
func (s *metaSet) First() (vertex.Name, bool, error) {
	return s.Iter().Next()
}

// Last returns the first element of IterRev.
func (s *metaSet) Last() (vertex.Name, bool, error) {
	return s.IterRev().Next()
}

// IsEmpty probes for a first element.
func (s *metaSet) IsEmpty() (bool, error) {
	_, ok, err := s.First()
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// Contains combines the operands' membership tests.
func (s *metaSet) Contains(name vertex.Name) (bool, error) {
	inLhs, err := s.lhs.Contains(name)
	if err != nil {
		return false, err
	}
	switch s.op {
	case opAnd:
		if !inLhs {
			return false, nil
		}
		return s.rhs.Contains(name)
	case opDifference:
		if !inLhs {
			return false, nil
		}
		inRhs, err := s.rhs.Contains(name)
		if err != nil {
			return false, err
		}
		return !inRhs, nil
	default: // opOr
		if inLhs {
			return true, nil
		}
		return s.rhs.Contains(name)
	}
}

// IsTopoSorted: and/difference preserve the lhs enumeration order, so they
// inherit its claim. The or-set appends rhs extras after all of lhs and
// makes no global ordering claim.
func (s *metaSet) IsTopoSorted() bool {
	switch s.op {
	case opAnd, opDifference:
		return s.lhs.IsTopoSorted()
	default:
		return false
	}
}

// String renders the operator and both operand renderings,
// e.g. "<and <dag [0..3]> <dag [0 1 4..6]>>".
func (s *metaSet) String() string {
	return fmt.Sprintf("<%s %s %s>", s.op, s.lhs, s.rhs)
}

var _ Set = (*metaSet)(nil)
