package nameset

import (
	"slices"
	"strings"
	"testing"

	"github.com/mhollstein/revset/pkg/vertex"
)

func static(names ...string) *StaticSet {
	vs := make([]vertex.Name, len(names))
	for i, s := range names {
		vs[i] = vertex.NameFromString(s)
	}
	return NewStaticSet(vs...)
}

func TestStaticSetInvariants(t *testing.T) {
	tests := []struct {
		name string
		set  *StaticSet
		want []string
	}{
		{"Empty", static(), nil},
		{"Ordered", static("X", "Y", "Z"), []string{"X", "Y", "Z"}},
		{"Deduplicated", static("X", "Y", "X", "Z", "Y"), []string{"X", "Y", "Z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkInvariants(t, tt.set)
			var gotKeys []string
			for _, n := range got {
				gotKeys = append(gotKeys, n.Key())
			}
			if !slices.Equal(gotKeys, tt.want) {
				t.Errorf("Iter = %v, want %v", gotKeys, tt.want)
			}
			if tt.set.IsTopoSorted() {
				t.Error("IsTopoSorted = true for a static set")
			}
		})
	}
}

func TestStaticSetRendering(t *testing.T) {
	if got := static("A", "B").String(); got != "<static [A B]>" {
		t.Errorf("String = %s", got)
	}
}

func TestMixedRepresentationsTakeGenericPath(t *testing.T) {
	m := testMap(t)
	dag := ancestorsOfD(m)
	listed := static("B", "D", "Q")

	inter := Intersection(dag, listed)
	if !strings.HasPrefix(inter.String(), "<and ") {
		t.Errorf("mixed intersection rendering = %s, want generic node", inter)
	}
	checkInvariants(t, inter)
	if got := namesOf(t, inter); !slices.Equal(got, []string{"D", "B"}) {
		t.Errorf("intersection = %v, want [D B]", got)
	}

	union := Union(listed, dag)
	checkInvariants(t, union)
	// lhs order first, then rhs extras in rhs order.
	if got := namesOf(t, union); !slices.Equal(got, []string{"B", "D", "Q", "C", "A"}) {
		t.Errorf("union = %v", got)
	}

	diff := Difference(dag, listed)
	checkInvariants(t, diff)
	if got := namesOf(t, diff); !slices.Equal(got, []string{"C", "A"}) {
		t.Errorf("difference = %v, want [C A]", got)
	}
}

func TestMetaSetNesting(t *testing.T) {
	m := testMap(t)
	// ((ancestors(D) ∩ ancestors(G)) ∪ {Q}) − {A}
	inner := Intersection(ancestorsOfD(m), ancestorsOfG(m))
	withQ := Union(inner, static("Q"))
	result := Difference(withQ, static("A"))

	checkInvariants(t, result)
	if got := namesOf(t, result); !slices.Equal(got, []string{"B", "Q"}) {
		t.Errorf("nested result = %v, want [B Q]", got)
	}

	// Rendering shows the full tree with the range-backed leaf intact.
	want := "<difference <or <dag [0 1]> <static [Q]>> <static [A]>>"
	if got := result.String(); got != want {
		t.Errorf("rendering = %s, want %s", got, want)
	}
}
