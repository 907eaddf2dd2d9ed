package graph

import (
	"github.com/mhollstein/revset/pkg/errors"
	"github.com/mhollstein/revset/pkg/namedag"
	"github.com/mhollstein/revset/pkg/nameset"
	"github.com/mhollstein/revset/pkg/vertex"
)

// =============================================================================
// Graph - Commit Graph Serialization
// =============================================================================

// Graph is the canonical serialization format for commit graphs.
// Used for API payloads, storage, caching, and interchange with other tools.
//
// The format is human-readable and designed for round-trip fidelity:
// import, query, export, re-import produces an equivalent graph. Vertices
// are listed parents-first so a decoder can build the graph in one pass.
type Graph struct {
	Name     string   `json:"name,omitempty" bson:"name,omitempty"`
	Vertices []Vertex `json:"vertices" bson:"vertices"`
}

// Vertex is one commit with its direct parents.
type Vertex struct {
	Name    string   `json:"name" bson:"name"`
	Parents []string `json:"parents,omitempty" bson:"parents,omitempty"`
}

// IsRoot returns true if this vertex has no parents.
func (v *Vertex) IsRoot() bool { return len(v.Parents) == 0 }

// =============================================================================
// NameDag ↔ Graph Conversion
// =============================================================================

// FromDag converts a built graph to its serialization format. Vertices are
// emitted in id order, so parents always precede their children and output
// is deterministic for a given build.
func FromDag(d *namedag.NameDag) (Graph, error) {
	out := Graph{Vertices: make([]Vertex, 0, d.VertexCount())}

	it := d.All().IterRev() // ascending id order
	for {
		name, ok, err := it.Next()
		if err != nil {
			return Graph{}, err
		}
		if !ok {
			break
		}
		parents, err := d.Parents(name)
		if err != nil {
			return Graph{}, err
		}
		v := Vertex{Name: name.Key()}
		for _, p := range parents {
			v.Parents = append(v.Parents, p.Key())
		}
		out.Vertices = append(out.Vertices, v)
	}
	return out, nil
}

// ToDag builds a queryable graph from its serialization format.
// Returns an error if the structure is not a valid commit graph.
func ToDag(g Graph) (*namedag.NameDag, error) {
	b := namedag.NewBuilder()
	for _, v := range g.Vertices {
		parents := make([]vertex.Name, len(v.Parents))
		for i, p := range v.Parents {
			parents[i] = vertex.NameFromString(p)
		}
		if err := b.Add(vertex.NameFromString(v.Name), parents...); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "add vertex %q", v.Name)
		}
	}
	d, err := b.Build()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "build graph")
	}
	return d, nil
}

// FromSet flattens a vertex set into the subgraph it induces: every listed
// vertex keeps only the parents that are themselves members. Useful for
// exporting query results as a standalone graph.
func FromSet(d *namedag.NameDag, s nameset.Set) (Graph, error) {
	out := Graph{}

	it := s.IterRev()
	for {
		name, ok, err := it.Next()
		if err != nil {
			return Graph{}, err
		}
		if !ok {
			break
		}
		parents, err := d.Parents(name)
		if err != nil {
			return Graph{}, err
		}
		v := Vertex{Name: name.Key()}
		for _, p := range parents {
			member, err := s.Contains(p)
			if err != nil {
				return Graph{}, err
			}
			if member {
				v.Parents = append(v.Parents, p.Key())
			}
		}
		out.Vertices = append(out.Vertices, v)
	}
	return out, nil
}
