package syntax

import "github.com/byteglush/rex/ast"

// TokenKind tags the variant a Token holds — the stream the lexer emits,
// per spec section 4.A.
type TokenKind uint8

const (
	TLiteral TokenKind = iota
	TCharClass
	TDot
	TBegLine
	TEndLine
	TUnion
	TIntersection
	TXOR
	TQmark
	TStar
	TPlus
	TRepetition
	TLpar
	TRpar
	TComplement
	TRecursive
	TNone
	TBackRef
	TEOP
)

// Token is one lexical unit. Fields irrelevant to Kind are zero.
//
// ByteRange, the sub-token spec section 4.A lists alongside these, never
// reaches this struct: it is consumed internally while the lexer scans a
// `[...]` class and folded directly into TCharClass's Class field, the same
// way Concatenated()/Quantifier() consult Kind rather than a separate flag.
type Token struct {
	Kind TokenKind
	Pos  int

	Byte  byte       // TLiteral
	Class ast.ByteSet // TCharClass

	Lo, Hi int // TRepetition; Hi == -1 denotes unbounded

	N    int  // TBackRef: 0-based index into already-closed groups
	Weak bool // TBackRef: \_N vs \N
}

// Concatenated reports whether t can begin (or continue) an implicit
// concatenation — i.e. whether it is a valid start of e4 in the grammar.
func (t Token) Concatenated() bool {
	switch t.Kind {
	case TLiteral, TCharClass, TDot, TBegLine, TEndLine, TNone, TBackRef,
		TLpar, TComplement, TRecursive:
		return true
	default:
		return false
	}
}

// Quantifier reports whether t is a postfix quantifier token (e3's suffix
// set).
func (t Token) Quantifier() bool {
	switch t.Kind {
	case TQmark, TStar, TPlus, TRepetition:
		return true
	default:
		return false
	}
}
