package gnfa_test

import (
	"testing"

	"github.com/byteglush/rex/ast"
	"github.com/byteglush/rex/dfa"
	"github.com/byteglush/rex/gnfa"
	"github.com/byteglush/rex/position"
)

// buildDFA numbers, positions, and determinizes the tree rooted at root
// (root must not itself include the EOP leaf — it is appended here),
// returning the resulting DFA.
func buildDFA(t *testing.T, arena *ast.Arena, root *ast.Expr) *dfa.DFA {
	t.Helper()
	full := arena.Concat(root, arena.Leaf(ast.KEOP))
	if err := position.FillPosition(full); err != nil {
		t.Fatalf("FillPosition: %v", err)
	}
	position.FillTransition(full)
	table := position.Numbering(full)
	if err := position.Validate(table); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	d, err := dfa.Build(table, full.First, 1, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return d
}

func literal(arena *ast.Arena, b byte) *ast.Expr {
	e := arena.Leaf(ast.KLiteral)
	e.Byte = b
	return e
}

// fullMatchStrings runs FullMatch over a small set of candidate inputs and
// returns which ones matched, for comparing two DFAs' accepted languages.
func fullMatchStrings(d *dfa.DFA, candidates []string) map[string]bool {
	got := make(map[string]bool)
	for _, s := range candidates {
		if dfa.FullMatch(d, []byte(s)) {
			got[s] = true
		}
	}
	return got
}

// TestDecompileRoundTrip checks that building a DFA for "ab", decompiling
// it back to an AST, and rebuilding a DFA from that AST accepts exactly
// the same language as the original.
func TestDecompileRoundTrip(t *testing.T) {
	arena := ast.NewArena()
	root := arena.Concat(literal(arena, 'a'), literal(arena, 'b'))
	d1 := buildDFA(t, arena, root)

	out := ast.NewArena()
	decompiled := gnfa.Decompile(d1, out)
	d2 := buildDFA(t, out, decompiled)

	candidates := []string{"", "a", "b", "ab", "ba", "abc", "aab"}
	want := fullMatchStrings(d1, candidates)
	got := fullMatchStrings(d2, candidates)

	if len(want) != len(got) {
		t.Fatalf("accepted-set size mismatch: want %v, got %v", want, got)
	}
	for s := range want {
		if !got[s] {
			t.Errorf("decompiled DFA rejects %q, original accepts it", s)
		}
	}
	for s := range got {
		if !want[s] {
			t.Errorf("decompiled DFA accepts %q, original rejects it", s)
		}
	}
}

// TestDecompileStarRoundTrip exercises a self-loop during elimination
// (a+): the DFA has a real back-edge a state must fold into a Star.
func TestDecompileStarRoundTrip(t *testing.T) {
	arena := ast.NewArena()
	root := arena.Plus(literal(arena, 'a'))
	d1 := buildDFA(t, arena, root)

	out := ast.NewArena()
	decompiled := gnfa.Decompile(d1, out)
	d2 := buildDFA(t, out, decompiled)

	candidates := []string{"", "a", "aa", "aaa", "aab", "b"}
	want := fullMatchStrings(d1, candidates)
	got := fullMatchStrings(d2, candidates)
	for s := range want {
		if !got[s] {
			t.Errorf("decompiled DFA rejects %q, original accepts it", s)
		}
	}
	for s := range got {
		if !want[s] {
			t.Errorf("decompiled DFA accepts %q, original rejects it", s)
		}
	}
}

// TestDecompileUnionRoundTrip exercises a branch (a|b)c that merges back
// together, requiring Union during edge combination.
func TestDecompileUnionRoundTrip(t *testing.T) {
	arena := ast.NewArena()
	branch := arena.Union(literal(arena, 'a'), literal(arena, 'b'))
	root := arena.Concat(branch, literal(arena, 'c'))
	d1 := buildDFA(t, arena, root)

	out := ast.NewArena()
	decompiled := gnfa.Decompile(d1, out)
	d2 := buildDFA(t, out, decompiled)

	candidates := []string{"ac", "bc", "cc", "abc", ""}
	want := fullMatchStrings(d1, candidates)
	got := fullMatchStrings(d2, candidates)
	for s := range want {
		if !got[s] {
			t.Errorf("decompiled DFA rejects %q, original accepts it", s)
		}
	}
	for s := range got {
		if !want[s] {
			t.Errorf("decompiled DFA accepts %q, original rejects it", s)
		}
	}
}

// TestDecompileNoneRoundTrip checks the unsatisfiable-pattern edge case:
// a DFA with no reachable accepting state decompiles to KNone.
func TestDecompileNoneRoundTrip(t *testing.T) {
	arena := ast.NewArena()
	root := arena.Leaf(ast.KNone)
	d1 := buildDFA(t, arena, root)

	out := ast.NewArena()
	decompiled := gnfa.Decompile(d1, out)
	if decompiled.Kind != ast.KNone {
		t.Fatalf("expected KNone, got %s", decompiled.Kind)
	}
}
