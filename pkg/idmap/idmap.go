// Package idmap maintains the bidirectional mapping between vertex names
// and dense integer ids.
//
// The map is append-only: ids are assigned starting from 0 and are never
// reassigned or removed. The graph-building subsystem assigns ids so that
// every parent receives a smaller id than its children, which is what makes
// ancestry-related sets contiguous enough for the range representation in
// package spanset to pay off.
//
// An IdMap is mutated only while a graph is being built. Once shared it must
// be treated as read-only; concurrent readers then need no coordination.
// Sets backed by the same map instance can be combined with pure range
// algebra - that eligibility check is pointer identity on *IdMap, never a
// structural comparison, because two maps with equal contents built
// independently do not share an id space.
package idmap

import (
	"github.com/mhollstein/revset/pkg/errors"
	"github.com/mhollstein/revset/pkg/spanset"
	"github.com/mhollstein/revset/pkg/vertex"
)

// IdMap is an append-only bidirectional name <-> id mapping.
//
// The zero value is not usable - use New.
type IdMap struct {
	names []vertex.Name          // id -> name; index is the id
	ids   map[string]spanset.Id  // name -> id
}

// New creates an empty IdMap.
func New() *IdMap {
	return &IdMap{ids: make(map[string]spanset.Id)}
}

// Len returns the number of assigned ids.
func (m *IdMap) Len() int {
	return len(m.names)
}

// NextFreeId returns the id the next Assign call would hand out.
func (m *IdMap) NextFreeId() spanset.Id {
	return spanset.Id(len(m.names))
}

// Assign maps name to the next free id and returns it.
// Assigning a name that already has an id returns the existing id - the
// mapping is injective in both directions and never changes once made.
func (m *IdMap) Assign(name vertex.Name) (spanset.Id, error) {
	if name.IsZero() {
		return 0, errors.New(errors.ErrCodeInvalidName, "cannot assign an id to the empty vertex name")
	}
	if id, ok := m.ids[name.Key()]; ok {
		return id, nil
	}
	id := spanset.Id(len(m.names))
	m.names = append(m.names, name)
	m.ids[name.Key()] = id
	return id, nil
}

// VertexName resolves an id to its vertex name.
// Returns a LOOKUP_FAILURE error if the id was never assigned.
func (m *IdMap) VertexName(id spanset.Id) (vertex.Name, error) {
	if uint64(id) >= uint64(len(m.names)) {
		return vertex.Name{}, errors.New(errors.ErrCodeLookup, "id %d has no vertex name", id)
	}
	return m.names[id], nil
}

// FindIdByName resolves a vertex name to its id.
// The second return value is false if the name was never assigned an id;
// that is not an error. The error return is reserved for storage failures
// in map implementations backed by persistent storage.
func (m *IdMap) FindIdByName(name vertex.Name) (spanset.Id, bool, error) {
	id, ok := m.ids[name.Key()]
	return id, ok, nil
}
