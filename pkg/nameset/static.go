package nameset

import (
	"strings"

	"github.com/mhollstein/revset/pkg/vertex"
)

// StaticSet is a set backed by an explicit list of names in a caller-chosen
// order, e.g. revisions named on a command line. It makes no topological
// ordering claim.
type StaticSet struct {
	names   []vertex.Name
	members map[string]struct{}
}

// NewStaticSet creates a set preserving the order of names.
// Duplicates are dropped; the first occurrence wins.
func NewStaticSet(names ...vertex.Name) *StaticSet {
	s := &StaticSet{members: make(map[string]struct{}, len(names))}
	for _, n := range names {
		if _, dup := s.members[n.Key()]; dup {
			continue
		}
		s.members[n.Key()] = struct{}{}
		s.names = append(s.names, n)
	}
	return s
}

type staticIter struct {
	names []vertex.Name
	i     int
	step  int
}

func (it *staticIter) Next() (vertex.Name, bool, error) {
	if it.i < 0 || it.i >= len(it.names) {
		return vertex.Name{}, false, nil
	}
	name := it.names[it.i]
	it.i += it.step
	return name, true, nil
}

// Iter yields names in insertion order.
func (s *StaticSet) Iter() Iter {
	return &staticIter{names: s.names, i: 0, step: 1}
}

// IterRev yields names in reverse insertion order.
func (s *StaticSet) IterRev() Iter {
	return &staticIter{names: s.names, i: len(s.names) - 1, step: -1}
}

// Count returns the number of distinct names.
func (s *StaticSet) Count() (uint64, error) {
	return uint64(len(s.names)), nil
}

// First returns the first inserted name.
func (s *StaticSet) First() (vertex.Name, bool, error) {
	if len(s.names) == 0 {
		return vertex.Name{}, false, nil
	}
	return s.names[0], true, nil
}

// Last returns the last inserted name.
func (s *StaticSet) Last() (vertex.Name, bool, error) {
	if len(s.names) == 0 {
		return vertex.Name{}, false, nil
	}
	return s.names[len(s.names)-1], true, nil
}

// IsEmpty reports whether the set has no names.
func (s *StaticSet) IsEmpty() (bool, error) {
	return len(s.names) == 0, nil
}

// Contains tests membership by exact name.
func (s *StaticSet) Contains(name vertex.Name) (bool, error) {
	_, ok := s.members[name.Key()]
	return ok, nil
}

// IsTopoSorted reports false: insertion order carries no graph meaning.
func (s *StaticSet) IsTopoSorted() bool {
	return false
}

// String renders the names in order, e.g. "<static [A B C]>".
func (s *StaticSet) String() string {
	parts := make([]string, len(s.names))
	for i, n := range s.names {
		parts[i] = n.String()
	}
	return "<static [" + strings.Join(parts, " ") + "]>"
}

var _ Set = (*StaticSet)(nil)
