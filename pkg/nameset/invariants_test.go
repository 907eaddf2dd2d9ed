package nameset

import (
	"slices"
	"testing"

	"github.com/mhollstein/revset/pkg/vertex"
)

// checkInvariants verifies the Set contract an implementation must honor:
// Count matches iteration, IterRev mirrors Iter, First/Last agree with both
// cursors, Contains agrees with enumeration, and IsEmpty is consistent.
func checkInvariants(t *testing.T, s Set) []vertex.Name {
	t.Helper()

	names, err := Names(s)
	if err != nil {
		t.Fatalf("%s: Iter failed: %v", s, err)
	}

	count, err := s.Count()
	if err != nil {
		t.Fatalf("%s: Count failed: %v", s, err)
	}
	if count != uint64(len(names)) {
		t.Errorf("%s: Count = %d, Iter yielded %d", s, count, len(names))
	}

	var rev []vertex.Name
	it := s.IterRev()
	for {
		name, ok, err := it.Next()
		if err != nil {
			t.Fatalf("%s: IterRev failed: %v", s, err)
		}
		if !ok {
			break
		}
		rev = append(rev, name)
	}
	slices.Reverse(rev)
	if !slices.EqualFunc(names, rev, vertex.Name.Equal) {
		t.Errorf("%s: IterRev is not the mirror of Iter:\n fwd %v\n rev %v", s, names, rev)
	}

	first, ok, err := s.First()
	if err != nil {
		t.Fatalf("%s: First failed: %v", s, err)
	}
	if ok != (len(names) > 0) {
		t.Errorf("%s: First ok = %v with %d elements", s, ok, len(names))
	}
	if ok && !first.Equal(names[0]) {
		t.Errorf("%s: First = %s, Iter starts with %s", s, first, names[0])
	}

	last, ok, err := s.Last()
	if err != nil {
		t.Fatalf("%s: Last failed: %v", s, err)
	}
	if ok && !last.Equal(names[len(names)-1]) {
		t.Errorf("%s: Last = %s, Iter ends with %s", s, last, names[len(names)-1])
	}

	empty, err := s.IsEmpty()
	if err != nil {
		t.Fatalf("%s: IsEmpty failed: %v", s, err)
	}
	if empty != (len(names) == 0) {
		t.Errorf("%s: IsEmpty = %v with %d elements", s, empty, len(names))
	}

	for _, name := range names {
		member, err := s.Contains(name)
		if err != nil {
			t.Fatalf("%s: Contains(%s) failed: %v", s, name, err)
		}
		if !member {
			t.Errorf("%s: Contains(%s) = false for an iterated element", s, name)
		}
	}
	if member, err := s.Contains(vertex.NameFromString("not-a-vertex")); err != nil || member {
		t.Errorf("%s: Contains(not-a-vertex) = %v, %v; want false, nil", s, member, err)
	}

	return names
}

// keys converts names to comparable strings for order-insensitive checks.
func keys(names []vertex.Name) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n.Key()
	}
	slices.Sort(out)
	return out
}
