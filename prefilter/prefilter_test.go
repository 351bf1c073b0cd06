package prefilter_test

import (
	"testing"

	"github.com/byteglush/rex/ast"
	"github.com/byteglush/rex/prefilter"
)

func literal(arena *ast.Arena, s string) *ast.Expr {
	var e *ast.Expr
	for i := 0; i < len(s); i++ {
		l := arena.Leaf(ast.KLiteral)
		l.Byte = s[i]
		if e == nil {
			e = l
		} else {
			e = arena.Concat(e, l)
		}
	}
	return e
}

func TestExtractConcatRun(t *testing.T) {
	arena := ast.NewArena()
	root := literal(arena, "hello")

	set, ok := prefilter.Extract(root, 3)
	if !ok {
		t.Fatal("expected a qualifying run")
	}
	if set.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", set.Len())
	}
	if string(set.Literals()[0]) != "hello" {
		t.Errorf("Literals()[0] = %q, want %q", set.Literals()[0], "hello")
	}
}

func TestExtractBreaksAtStar(t *testing.T) {
	arena := ast.NewArena()
	hello := literal(arena, "hello")
	dot := arena.Leaf(ast.KDot)
	star := arena.Star(dot, false)
	world := literal(arena, "world")
	root := arena.Concat(hello, arena.Concat(star, world))

	set, ok := prefilter.Extract(root, 3)
	if !ok {
		t.Fatal("expected qualifying runs")
	}
	if set.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", set.Len())
	}
}

func TestExtractBelowMinLenIsDropped(t *testing.T) {
	arena := ast.NewArena()
	root := literal(arena, "ab")

	if _, ok := prefilter.Extract(root, 3); ok {
		t.Fatal("expected no qualifying run below MinPrefilterLen")
	}
}

func TestPossibleMatch(t *testing.T) {
	arena := ast.NewArena()
	hello := literal(arena, "hello")
	dot := arena.Leaf(ast.KDot)
	star := arena.Star(dot, false)
	world := literal(arena, "world")
	root := arena.Concat(hello, arena.Concat(star, world))

	set, ok := prefilter.Extract(root, 3)
	if !ok {
		t.Fatal("expected qualifying runs")
	}

	tests := []struct {
		haystack string
		want     bool
	}{
		{"hello there world", true},
		{"say hello", true},
		{"nothing relevant", false},
	}
	for _, tt := range tests {
		if got := set.PossibleMatch([]byte(tt.haystack)); got != tt.want {
			t.Errorf("PossibleMatch(%q) = %v, want %v", tt.haystack, got, tt.want)
		}
	}
}
