package query

import (
	"slices"
	"testing"

	"github.com/mhollstein/revset/pkg/errors"
	"github.com/mhollstein/revset/pkg/namedag"
	"github.com/mhollstein/revset/pkg/nameset"
	"github.com/mhollstein/revset/pkg/vertex"
)

// testDag builds
//
//	A--B--C--D
//	    \--E--F--G
//
// with ids A=0 B=1 C=2 D=3 E=4 F=5 G=6.
func testDag(t *testing.T) *namedag.NameDag {
	t.Helper()
	b := namedag.NewBuilder()
	add := func(v string, parents ...string) {
		var ps []vertex.Name
		for _, p := range parents {
			ps = append(ps, vertex.NameFromString(p))
		}
		if err := b.Add(vertex.NameFromString(v), ps...); err != nil {
			t.Fatalf("Add(%s): %v", v, err)
		}
	}
	add("A")
	add("B", "A")
	add("C", "B")
	add("D", "C")
	add("E", "B")
	add("F", "E")
	add("G", "F")
	d, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return d
}

func TestParseCanonicalForm(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"BareName", "  main ", "main"},
		{"QuotedName", `"release branch"`, `"release branch"`},
		{"QuotedStaysBareWhenSafe", `"main"`, "main"},
		{"Escapes", `"a\"b\\c"`, `"a\"b\\c"`},
		{"Union", "a|b", "a | b"},
		{"PrecedenceTight", "a | b & c", "a | b & c"},
		{"ParensKept", "(a | b) & c", "(a | b) & c"},
		{"ParensDropped", "(a & b) | c", "a & b | c"},
		{"LeftAssocDifference", "a - b - c", "a - b - c"},
		{"RightParens", "a - (b - c)", "a - (b - c)"},
		{"Call", "ancestors( D )", "ancestors(D)"},
		{"NestedCall", "ancestors(heads())", "ancestors(heads())"},
		{"TwoArgs", "range( a ,b )", "range(a, b)"},
		{"MixedOps", "all() - ancestors(x) & y", "all() - ancestors(x) & y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.src, err)
			}
			if got := expr.String(); got != tt.want {
				t.Errorf("canonical form = %q, want %q", got, tt.want)
			}
			// Canonical forms reparse to themselves.
			again, err := Parse(expr.String())
			if err != nil {
				t.Fatalf("reparse %q: %v", expr.String(), err)
			}
			if again.String() != tt.want {
				t.Errorf("canonical form is not a fixed point: %q -> %q", tt.want, again.String())
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"Empty", "   "},
		{"UnknownFunction", "parents(x)"},
		{"TooFewArgs", "range(a)"},
		{"TooManyArgs", "heads(x)"},
		{"DanglingOperator", "a |"},
		{"TrailingGarbage", "a b"},
		{"UnbalancedParen", "(a | b"},
		{"UnterminatedQuote", `"abc`},
		{"TrailingBackslash", "\"ab\\"},
		{"BadEscape", `"a\n"`},
		{"BadCharacter", "a @ b"},
		{"ControlCharName", "\"a\x01b\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded", tt.src)
			}
			if errors.GetCode(err) != errors.ErrCodeInvalidQuery {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidQuery)
			}
		})
	}
}

func TestEval(t *testing.T) {
	d := testDag(t)

	tests := []struct {
		name string
		src  string
		want []string // most recent first
	}{
		{"Ancestors", "ancestors(D)", []string{"D", "C", "B", "A"}},
		{"Heads", "heads()", []string{"G", "D"}},
		{"Roots", "roots()", []string{"A"}},
		{"All", "all()", []string{"G", "F", "E", "D", "C", "B", "A"}},
		{"Intersection", "ancestors(D) & ancestors(G)", []string{"B", "A"}},
		{"Union", "ancestors(D) | ancestors(G)", []string{"G", "F", "E", "D", "C", "B", "A"}},
		{"Difference", "all() - ancestors(G)", []string{"D", "C"}},
		{"Range", "range(B, D)", []string{"D", "C", "B"}},
		{"NestedCall", "ancestors(heads())", []string{"G", "F", "E", "D", "C", "B", "A"}},
		{"SingleVertex", "E", []string{"E"}},
		{"MixedStaticAndDag", "ancestors(D) - C", []string{"D", "B", "A"}},
		{"Parens", "(ancestors(D) | ancestors(G)) - ancestors(B)", []string{"G", "F", "E", "D", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Eval(d, tt.src)
			if err != nil {
				t.Fatalf("Eval(%q): %v", tt.src, err)
			}
			names, err := nameset.Names(s)
			if err != nil {
				t.Fatalf("Names(%s): %v", s, err)
			}
			var got []string
			for _, n := range names {
				got = append(got, n.Key())
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Eval(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestEvalUsesRangeAlgebraForSharedGraph(t *testing.T) {
	nameset.EnableCrossCheck(true)
	defer nameset.EnableCrossCheck(false)

	d := testDag(t)
	s, err := Eval(d, "ancestors(D) & ancestors(G)")
	if err != nil {
		t.Fatal(err)
	}
	// Both operands share the graph's id map, so the result must be a
	// range-backed set rather than a lazy combination node.
	if got := s.String(); got != "<dag [0 1]>" {
		t.Errorf("rendering = %s, want <dag [0 1]>", got)
	}
}

func TestEvalUnknownVertex(t *testing.T) {
	d := testDag(t)
	for _, src := range []string{"Z", "ancestors(Z)", "range(Z, D)"} {
		if _, err := Eval(d, src); errors.GetCode(err) != errors.ErrCodeVertexNotFound {
			t.Errorf("Eval(%q) error code = %v, want %v", src, errors.GetCode(err), errors.ErrCodeVertexNotFound)
		}
	}
}

func TestEvalIsLazy(t *testing.T) {
	d := testDag(t)
	// Evaluation of a combination over distinct representations succeeds
	// without forcing iteration; errors surface on use instead.
	s, err := Eval(d, "ancestors(G) - D")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := nameset.Names(s); err != nil {
		t.Fatalf("iterating lazy result: %v", err)
	}
}
