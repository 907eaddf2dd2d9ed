package graph

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-test/deep"
	"github.com/mhollstein/revset/pkg/errors"
	"github.com/mhollstein/revset/pkg/vertex"
)

func testGraph() Graph {
	return Graph{
		Name: "demo",
		Vertices: []Vertex{
			{Name: "A"},
			{Name: "B", Parents: []string{"A"}},
			{Name: "C", Parents: []string{"B"}},
			{Name: "D", Parents: []string{"C"}},
			{Name: "E", Parents: []string{"B"}},
			{Name: "F", Parents: []string{"E"}},
			{Name: "G", Parents: []string{"F"}},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	d, err := ToDag(testGraph())
	if err != nil {
		t.Fatalf("ToDag: %v", err)
	}

	data, err := Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	d2, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	g1, err := FromDag(d)
	if err != nil {
		t.Fatal(err)
	}
	g2, err := FromDag(d2)
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(g1, g2); diff != nil {
		t.Errorf("round trip changed the graph:\n%s", strings.Join(diff, "\n"))
	}
}

func TestFromDagParentsFirst(t *testing.T) {
	d, err := ToDag(testGraph())
	if err != nil {
		t.Fatal(err)
	}
	g, err := FromDag(d)
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[string]bool)
	for _, v := range g.Vertices {
		for _, p := range v.Parents {
			if !seen[p] {
				t.Errorf("vertex %s listed before its parent %s", v.Name, p)
			}
		}
		seen[v.Name] = true
	}
}

func TestMarshalDeterministic(t *testing.T) {
	d, err := ToDag(testGraph())
	if err != nil {
		t.Fatal(err)
	}
	a, err := Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("two marshals of the same graph differ")
	}
}

func TestToDagRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		g    Graph
	}{
		{"DuplicateVertex", Graph{Vertices: []Vertex{{Name: "A"}, {Name: "A"}}}},
		{"UnknownParent", Graph{Vertices: []Vertex{{Name: "B", Parents: []string{"A"}}}}},
		{"Cycle", Graph{Vertices: []Vertex{
			{Name: "A", Parents: []string{"B"}},
			{Name: "B", Parents: []string{"A"}},
		}}},
		{"EmptyName", Graph{Vertices: []Vertex{{Name: ""}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToDag(tt.g)
			if err == nil {
				t.Fatal("ToDag accepted an invalid graph")
			}
			if errors.GetCode(err) != errors.ErrCodeInvalidGraph {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidGraph)
			}
		})
	}
}

func TestReadRejectsMalformedJSON(t *testing.T) {
	if _, err := Read(strings.NewReader(`{"vertices": [`)); err == nil {
		t.Error("Read accepted truncated JSON")
	}
}

func TestFromSetInducedSubgraph(t *testing.T) {
	d, err := ToDag(testGraph())
	if err != nil {
		t.Fatal(err)
	}
	anc, err := d.Ancestors(vertex.NameFromString("D"))
	if err != nil {
		t.Fatal(err)
	}

	g, err := FromSet(d, anc)
	if err != nil {
		t.Fatalf("FromSet: %v", err)
	}

	// {A,B,C,D} with only in-set parent links.
	want := []Vertex{
		{Name: "A"},
		{Name: "B", Parents: []string{"A"}},
		{Name: "C", Parents: []string{"B"}},
		{Name: "D", Parents: []string{"C"}},
	}
	if diff := deep.Equal(g.Vertices, want); diff != nil {
		t.Errorf("induced subgraph mismatch:\n%s", strings.Join(diff, "\n"))
	}

	// The subgraph must itself rebuild cleanly.
	if _, err := ToDag(g); err != nil {
		t.Errorf("induced subgraph does not rebuild: %v", err)
	}
}

func TestUnmarshalRaw(t *testing.T) {
	g, err := Unmarshal([]byte(`{"name":"x","vertices":[{"name":"A"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if g.Name != "x" || len(g.Vertices) != 1 || !g.Vertices[0].IsRoot() {
		t.Errorf("unexpected graph: %+v", g)
	}
}
