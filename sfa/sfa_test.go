package sfa_test

import (
	"math/rand"
	"testing"

	"github.com/byteglush/rex/ast"
	"github.com/byteglush/rex/dfa"
	"github.com/byteglush/rex/position"
	"github.com/byteglush/rex/sfa"
)

// buildABStarDFA compiles "(ab)*" by hand, without the syntax package, to
// keep this test independent of it.
func buildABStarDFA(t *testing.T) *dfa.DFA {
	t.Helper()
	arena := ast.NewArena()
	a := arena.Leaf(ast.KLiteral)
	a.Byte = 'a'
	b := arena.Leaf(ast.KLiteral)
	b.Byte = 'b'
	ab := arena.Concat(a, b)
	star := arena.Star(ab, false)
	full := arena.Concat(star, arena.Leaf(ast.KEOP))

	if err := position.FillPosition(full); err != nil {
		t.Fatalf("FillPosition: %v", err)
	}
	position.FillTransition(full)
	table := position.Numbering(full)

	d, err := dfa.Build(table, full.First, 1, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return d
}

func TestParallelMatchAgreesWithFullMatch(t *testing.T) {
	d := buildABStarDFA(t)
	s, err := sfa.Build(d, 0)
	if err != nil {
		t.Fatalf("sfa.Build: %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	alphabet := []byte{'a', 'b', 'c'}
	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(40)
		input := make([]byte, n)
		for i := range input {
			input[i] = alphabet[rng.Intn(len(alphabet))]
		}
		want := dfa.FullMatch(d, input)
		for _, workers := range []int{1, 2, 3, 8} {
			got := sfa.Match(s, input, workers)
			if got != want {
				t.Fatalf("workers=%d input=%q: sfa.Match=%v, FullMatch=%v", workers, input, got, want)
			}
		}
	}
}

func TestParallelMatchEmptyInput(t *testing.T) {
	d := buildABStarDFA(t)
	s, err := sfa.Build(d, 0)
	if err != nil {
		t.Fatalf("sfa.Build: %v", err)
	}
	if !sfa.Match(s, nil, 4) {
		t.Error("expected (ab)* to accept the empty input")
	}
}
