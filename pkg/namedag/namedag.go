// Package namedag builds commit graphs and derives vertex sets from them.
//
// A NameDag owns the id map for one build of a graph: ids are assigned
// parents-first, so every ancestry-related query collapses into a compact
// span set. All query methods return range-backed sets sharing the graph's
// id map, which makes any combination of two results from the same NameDag
// eligible for the range-algebra fast path in package nameset.
//
// NameDag is immutable once built and safe for concurrent readers. Two
// NameDags built from identical input still have distinct id maps; sets
// from different builds compose through the generic slow path by design.
package namedag

import (
	"github.com/mhollstein/revset/pkg/errors"
	"github.com/mhollstein/revset/pkg/idmap"
	"github.com/mhollstein/revset/pkg/nameset"
	"github.com/mhollstein/revset/pkg/spanset"
	"github.com/mhollstein/revset/pkg/vertex"
)

// NameDag is a built commit graph with an assigned id space.
type NameDag struct {
	m        *idmap.IdMap
	parents  [][]spanset.Id // id -> parent ids
	children [][]spanset.Id // id -> child ids
}

// Map returns the graph's shared id map handle.
func (d *NameDag) Map() *idmap.IdMap {
	return d.m
}

// VertexCount returns the number of vertices in the graph.
func (d *NameDag) VertexCount() int {
	return d.m.Len()
}

// EdgeCount returns the number of parent links in the graph.
func (d *NameDag) EdgeCount() int {
	n := 0
	for _, ps := range d.parents {
		n += len(ps)
	}
	return n
}

// Contains reports whether name is a vertex of this graph.
func (d *NameDag) Contains(name vertex.Name) bool {
	_, ok, _ := d.m.FindIdByName(name)
	return ok
}

// Parents returns the parent names of a vertex in insertion order.
func (d *NameDag) Parents(name vertex.Name) ([]vertex.Name, error) {
	id, err := d.resolve(name)
	if err != nil {
		return nil, err
	}
	out := make([]vertex.Name, 0, len(d.parents[id]))
	for _, pid := range d.parents[id] {
		p, err := d.m.VertexName(pid)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// All returns the set of every vertex in the graph.
func (d *NameDag) All() *nameset.DagSet {
	if d.m.Len() == 0 {
		return nameset.NewDagSet(spanset.Empty(), d.m)
	}
	return nameset.NewDagSet(spanset.FromSpans(spanset.NewSpan(0, d.m.NextFreeId()-1)), d.m)
}

// Ancestors returns the set of the given vertices and all their ancestors.
func (d *NameDag) Ancestors(names ...vertex.Name) (*nameset.DagSet, error) {
	return d.reachable(d.parents, names)
}

// Descendants returns the set of the given vertices and all their
// descendants.
func (d *NameDag) Descendants(names ...vertex.Name) (*nameset.DagSet, error) {
	return d.reachable(d.children, names)
}

// Range returns the vertices reachable from roots (descendant direction)
// that can also reach heads (ancestor direction): the closed range
// "roots::heads".
func (d *NameDag) Range(roots, heads []vertex.Name) (*nameset.DagSet, error) {
	desc, err := d.Descendants(roots...)
	if err != nil {
		return nil, err
	}
	anc, err := d.Ancestors(heads...)
	if err != nil {
		return nil, err
	}
	// Both sets share d.m, so this is pure span algebra.
	return nameset.NewDagSet(desc.Spans().Intersection(anc.Spans()), d.m), nil
}

// Heads returns the vertices with no children.
func (d *NameDag) Heads() *nameset.DagSet {
	return d.withoutNeighbors(d.children)
}

// Roots returns the vertices with no parents.
func (d *NameDag) Roots() *nameset.DagSet {
	return d.withoutNeighbors(d.parents)
}

func (d *NameDag) withoutNeighbors(links [][]spanset.Id) *nameset.DagSet {
	var ids []spanset.Id
	for id, neighbors := range links {
		if len(neighbors) == 0 {
			ids = append(ids, spanset.Id(id))
		}
	}
	return nameset.NewDagSet(spanset.FromIds(ids...), d.m)
}

// reachable walks links breadth-first from the given names and returns the
// visited set.
func (d *NameDag) reachable(links [][]spanset.Id, names []vertex.Name) (*nameset.DagSet, error) {
	visited := make(map[spanset.Id]struct{})
	var queue []spanset.Id
	for _, name := range names {
		id, err := d.resolve(name)
		if err != nil {
			return nil, err
		}
		if _, seen := visited[id]; !seen {
			visited[id] = struct{}{}
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, next := range links[id] {
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			queue = append(queue, next)
		}
	}

	ids := make([]spanset.Id, 0, len(visited))
	for id := range visited {
		ids = append(ids, id)
	}
	return nameset.NewDagSet(spanset.FromIds(ids...), d.m), nil
}

func (d *NameDag) resolve(name vertex.Name) (spanset.Id, error) {
	id, ok, err := d.m.FindIdByName(name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.New(errors.ErrCodeVertexNotFound, "vertex %s is not in the graph", name)
	}
	return id, nil
}
