package prefilter

import (
	"github.com/byteglush/rex/ast"
	"github.com/coregx/ahocorasick"
)

// Extract walks root's Concat spine for maximal runs of mandatory Literal
// leaves and compiles them into a Set, grounded on the teacher's
// literal.Extractor walk (extractPrefixes/extractInnerLiterals over
// syntax.OpConcat) but simplified to "required run" extraction rather than
// prefix/suffix/inner tiering: a byte-level engine this size has no
// anchoring information worth distinguishing a prefix from an inner
// literal, so every qualifying run goes in the same automaton.
//
// Descending only through Concat means a run breaks at any Union, Qmark,
// Star, Plus, Intersection, XOR, CharClass, Dot, or anchor node — those
// children are not required to appear verbatim in every match, so they are
// skipped rather than mined for partial literals (the teacher's
// MaxClassSize-gated class expansion is left for a future pass; see
// DESIGN.md).
//
// minLen is Options.MinPrefilterLen: runs shorter than it are dropped, not
// worth the automaton overhead. Extract returns (nil, false) when no run
// qualifies — the caller must not build a prefilter at all in that case,
// since an empty Set's PossibleMatch would vacuously accept everything.
func Extract(root *ast.Expr, minLen int) (*Set, bool) {
	var runs [][]byte
	var cur []byte

	flush := func() {
		if len(cur) >= minLen && len(cur) >= minRunLen {
			runs = append(runs, cur)
		}
		cur = nil
	}

	var walk func(e *ast.Expr)
	walk = func(e *ast.Expr) {
		if e == nil {
			return
		}
		switch e.Kind {
		case ast.KLiteral:
			cur = append(cur, e.Byte)
		case ast.KConcat:
			walk(e.LeftC)
			walk(e.RightC)
		default:
			flush()
		}
	}
	walk(root)
	flush()

	if len(runs) == 0 {
		return nil, false
	}

	builder := ahocorasick.NewBuilder()
	for _, r := range runs {
		builder.AddPattern(r)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, false
	}

	return &Set{literals: runs, auto: auto}, true
}
