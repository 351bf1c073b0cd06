// Package position implements the three visitor-style passes that turn a
// parsed expression tree into a Glushkov position automaton: FillPosition
// (bottom-up min/max/nullable/first/last), FillTransition (top-down follow
// sets via Connect), and Numbering (deterministic leaf-id assignment).
//
// All three are free functions over *ast.Expr rather than methods on a
// visitor interface: each one switches on ast.Kind explicitly.
package position

import (
	"fmt"

	"github.com/byteglush/rex/ast"
)

// FillPosition computes MinLen, MaxLen, Nullable, Involved, First, and
// Last for every node of the tree rooted at root, bottom-up. It also
// verifies the structural invariants from SPEC_FULL.md section 3:
// min_length <= max_length, nullable iff min_length == 0, and every
// non-leaf has its children populated.
func FillPosition(root *ast.Expr) error {
	return fillPosition(root)
}

func fillPosition(e *ast.Expr) error {
	if e == nil {
		return fmt.Errorf("position: nil node")
	}

	if e.IsLeaf() {
		fillLeaf(e)
		return verify(e)
	}

	switch e.Kind {
	case ast.KConcat, ast.KUnion, ast.KIntersection, ast.KXOR:
		if e.LeftC == nil || e.RightC == nil {
			return fmt.Errorf("position: %s node missing a child", e.Kind)
		}
		if err := fillPosition(e.LeftC); err != nil {
			return err
		}
		if err := fillPosition(e.RightC); err != nil {
			return err
		}
		fillBinary(e)
	case ast.KQmark, ast.KStar, ast.KPlus:
		if e.Child == nil {
			return fmt.Errorf("position: %s node missing a child", e.Kind)
		}
		if err := fillPosition(e.Child); err != nil {
			return err
		}
		fillUnary(e)
	case ast.KEpsilon:
		// Zero-width and not a position: nullable, with empty first/last.
		e.MinLen, e.MaxLen, e.Nullable = 0, 0, true
		e.First, e.Last = nil, nil
	default:
		return fmt.Errorf("position: unhandled node kind %s", e.Kind)
	}
	return verify(e)
}

func fillLeaf(e *ast.Expr) {
	switch e.Kind {
	case ast.KEpsilon, ast.KEOP:
		// Zero-width markers: match the empty string, never consume a byte.
		e.MinLen, e.MaxLen = 0, 0
		e.Nullable = true
	case ast.KNone:
		// None matches no string at all, not even the empty one. It is
		// modeled as a one-width leaf whose ByteSet is empty (see
		// ast.Expr.ByteSet) so the DFA builder naturally never follows it
		// on any byte, rather than carving out a separate sentinel length.
		e.MinLen, e.MaxLen = 1, 1
		e.Nullable = false
	default: // Literal, CharClass, Dot, BegLine, EndLine
		e.MinLen, e.MaxLen = 1, 1
		e.Nullable = false
	}
	e.Involved = e.ByteSet()
	e.First = []*ast.Expr{e}
	e.Last = []*ast.Expr{e}
}

func fillBinary(e *ast.Expr) {
	a, b := e.LeftC, e.RightC
	e.Involved = a.Involved.Union(b.Involved)

	switch e.Kind {
	case ast.KConcat:
		e.MinLen = satAdd(a.MinLen, b.MinLen)
		e.MaxLen = satAdd(a.MaxLen, b.MaxLen)
		e.Nullable = a.Nullable && b.Nullable
		if a.Nullable {
			e.First = ast.UnionLeafSets(a.First, b.First)
		} else {
			e.First = a.First
		}
		if b.Nullable {
			e.Last = ast.UnionLeafSets(a.Last, b.Last)
		} else {
			e.Last = b.Last
		}
	case ast.KUnion:
		e.MinLen = min(a.MinLen, b.MinLen)
		e.MaxLen = max(a.MaxLen, b.MaxLen)
		e.Nullable = a.Nullable || b.Nullable
		e.First = ast.UnionLeafSets(a.First, b.First)
		e.Last = ast.UnionLeafSets(a.Last, b.Last)
	case ast.KIntersection:
		// Intersection/XOR nodes are ordinarily eliminated by the parser
		// before FillPosition ever sees them (they are rewritten via the
		// DFA-build-then-decompile path in package gnfa). These branches
		// exist so a tree built directly against the ast package — tests,
		// or future callers — still gets conservative, well-formed
		// metadata rather than a panic.
		e.MinLen = max(a.MinLen, b.MinLen)
		e.MaxLen = max(a.MaxLen, b.MaxLen)
		e.Nullable = a.Nullable && b.Nullable
		e.First = ast.UnionLeafSets(a.First, b.First)
		e.Last = ast.UnionLeafSets(a.Last, b.Last)
	case ast.KXOR:
		e.Nullable = a.Nullable != b.Nullable
		e.MinLen = min(a.MinLen, b.MinLen)
		if !e.Nullable && e.MinLen == 0 {
			e.MinLen = 1
		}
		e.MaxLen = max(max(a.MaxLen, b.MaxLen), e.MinLen)
		e.First = ast.UnionLeafSets(a.First, b.First)
		e.Last = ast.UnionLeafSets(a.Last, b.Last)
	}
}

func fillUnary(e *ast.Expr) {
	c := e.Child
	e.Involved = c.Involved

	switch e.Kind {
	case ast.KQmark:
		e.MinLen = 0
		e.MaxLen = c.MaxLen
		e.Nullable = true
		e.First = c.First
		e.Last = c.Last
	case ast.KStar:
		e.MinLen = 0
		e.Nullable = true
		if c.MinLen == 0 && c.MaxLen == 0 {
			e.MaxLen = 0
		} else {
			e.MaxLen = ast.MaxLen
		}
		e.First = c.First
		e.Last = c.Last
	case ast.KPlus:
		e.MinLen = c.MinLen
		e.Nullable = c.Nullable
		if c.MinLen == 0 && c.MaxLen == 0 {
			e.MaxLen = 0
		} else {
			e.MaxLen = ast.MaxLen
		}
		e.First = c.First
		e.Last = c.Last
	}
}

func verify(e *ast.Expr) error {
	if e.MinLen > e.MaxLen {
		return fmt.Errorf("position: %s has min_length %d > max_length %d", e.Kind, e.MinLen, e.MaxLen)
	}
	if e.Nullable != (e.MinLen == 0) {
		return fmt.Errorf("position: %s nullable=%v but min_length=%d", e.Kind, e.Nullable, e.MinLen)
	}
	return nil
}

func satAdd(x, y int) int {
	if x == ast.MaxLen || y == ast.MaxLen {
		return ast.MaxLen
	}
	s := x + y
	if s < 0 || s >= ast.MaxLen { // overflow or saturation
		return ast.MaxLen
	}
	return s
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
