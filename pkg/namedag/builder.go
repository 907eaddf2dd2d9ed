package namedag

import (
	"errors"

	"github.com/mhollstein/revset/pkg/idmap"
	"github.com/mhollstein/revset/pkg/spanset"
	"github.com/mhollstein/revset/pkg/vertex"
)

var (
	// ErrDuplicateVertex is returned by [Builder.Add] when a vertex was
	// already added. Vertex names are unique within a graph.
	ErrDuplicateVertex = errors.New("duplicate vertex")

	// ErrUnknownParent is returned by [Builder.Build] when a vertex lists
	// a parent that was never added.
	ErrUnknownParent = errors.New("unknown parent vertex")

	// ErrGraphHasCycle is returned by [Builder.Build] when the parent
	// relation is cyclic. Commit graphs must be acyclic.
	ErrGraphHasCycle = errors.New("graph contains a cycle")

	// ErrEmptyVertexName is returned by [Builder.Add] for a zero name.
	ErrEmptyVertexName = errors.New("vertex name must not be empty")
)

// Builder accumulates parent relationships by name and assigns the id
// space. Ids are handed out parents-first: by the time a vertex receives
// its id, all of its ancestors already have smaller ids. That ordering is
// what lets ancestry sets collapse into few spans.
type Builder struct {
	order   []vertex.Name            // insertion order
	parents map[string][]vertex.Name // name -> parent names
}

// NewBuilder creates an empty graph builder.
func NewBuilder() *Builder {
	return &Builder{parents: make(map[string][]vertex.Name)}
}

// Add records a vertex and its parents. Parents may be added before or
// after their children; Build resolves the order. Returns
// ErrDuplicateVertex if name was already added.
func (b *Builder) Add(name vertex.Name, parents ...vertex.Name) error {
	if name.IsZero() {
		return ErrEmptyVertexName
	}
	if _, dup := b.parents[name.Key()]; dup {
		return ErrDuplicateVertex
	}
	b.parents[name.Key()] = parents
	b.order = append(b.order, name)
	return nil
}

// Build assigns ids and returns the immutable graph. The id map it creates
// is owned by the returned NameDag and shared read-only with every set the
// graph produces.
func (b *Builder) Build() (*NameDag, error) {
	m := idmap.New()

	// DFS coloring doubles as cycle detection, as in a standard
	// white/gray/black traversal.
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(b.order))

	var assign func(name vertex.Name) error
	assign = func(name vertex.Name) error {
		switch color[name.Key()] {
		case black:
			return nil
		case gray:
			return ErrGraphHasCycle
		}
		color[name.Key()] = gray
		ps, known := b.parents[name.Key()]
		if !known {
			return ErrUnknownParent
		}
		for _, p := range ps {
			if err := assign(p); err != nil {
				return err
			}
		}
		color[name.Key()] = black
		_, err := m.Assign(name)
		return err
	}

	for _, name := range b.order {
		if err := assign(name); err != nil {
			return nil, err
		}
	}

	dag := &NameDag{
		m:        m,
		parents:  make([][]spanset.Id, m.Len()),
		children: make([][]spanset.Id, m.Len()),
	}
	for _, name := range b.order {
		id, _, err := m.FindIdByName(name)
		if err != nil {
			return nil, err
		}
		for _, p := range b.parents[name.Key()] {
			pid, _, err := m.FindIdByName(p)
			if err != nil {
				return nil, err
			}
			dag.parents[id] = append(dag.parents[id], pid)
			dag.children[pid] = append(dag.children[pid], id)
		}
	}
	return dag, nil
}
