// Package syntax implements the lexer (component A) and recursive-descent
// parser (component B) that turn a pattern string into a numbered Glushkov
// expression tree, ready for dfa.Build.
package syntax

import (
	"github.com/byteglush/rex/ast"
	"github.com/byteglush/rex/dfa"
	"github.com/byteglush/rex/gnfa"
	"github.com/byteglush/rex/position"
	"github.com/byteglush/rex/rxopt"
)

// Parser is a recursive-descent parser over the grammar in spec section
// 4.B:
//
//	e0 := e1 ('|' e1)*
//	e1 := e2 ('&' e2 | '&&' e2)*
//	e2 := e3+
//	e3 := e4 ( '?' | '*' | '+' | '{n,m}' )*
//	e4 := ATOM | '(' e0 ')' | '!' e4
type Parser struct {
	lex   *Lexer
	cur   Token
	arena *ast.Arena
	opts  rxopt.Options

	pattern  []byte
	recDepth int

	// pendingErr is set by advance when the lexer fails; every parse*
	// entry point checks it via checkLexErr before consuming p.cur
	// further, keeping advance()'s signature simple for the common,
	// error-free case.
	pendingErr error

	// groups holds, in closing order, the subtree of every `(...)` parsed
	// so far — the table backreferences resolve against (spec: "handled at
	// parse time... against the table of already-closed groups").
	groups []*ast.Expr
}

func newParser(pattern []byte, arena *ast.Arena, opts rxopt.Options, recDepth int) *Parser {
	p := &Parser{
		lex:      NewLexer(pattern, opts),
		arena:    arena,
		opts:     opts,
		pattern:  pattern,
		recDepth: recDepth,
	}
	p.advance()
	return p
}

// Parse compiles pattern into a fully-prepared expression tree: parsed,
// wrapped in Concat(root, EOP), FillPosition/FillTransition'd, and numbered.
// It returns the owning arena, the root, and the leaf table Numbering
// produced.
func Parse(pattern []byte, opts rxopt.Options) (*ast.Arena, *ast.Expr, []*ast.Expr, error) {
	arena := ast.NewArena()
	p := newParser(pattern, arena, opts, 0)

	root, err := p.parseTop()
	if err != nil {
		return nil, nil, nil, err
	}

	full := arena.Concat(root, arena.Leaf(ast.KEOP))
	if err := position.FillPosition(full); err != nil {
		return nil, nil, nil, err
	}
	position.FillTransition(full)
	table := position.Numbering(full)
	if err := position.Validate(table); err != nil {
		return nil, nil, nil, err
	}
	return arena, full, table, nil
}

func (p *Parser) advance() {
	tok, err := p.lex.Next()
	if err != nil {
		p.pendingErr = err
		return
	}
	p.cur = tok
}

func (p *Parser) checkLexErr() error {
	if p.pendingErr != nil {
		err := p.pendingErr
		p.pendingErr = nil
		return err
	}
	return nil
}

// parseTop parses a full e0 without the outer Concat(_, EOP) wrapping —
// used both by Parse and, recursively, by (?R) expansion.
func (p *Parser) parseTop() (*ast.Expr, error) {
	e, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	if err := p.checkLexErr(); err != nil {
		return nil, err
	}
	if p.cur.Kind != TEOP {
		return nil, &ParseError{Pos: p.cur.Pos, Err: ErrUnbalancedParen}
	}
	return e, nil
}

func (p *Parser) parseUnion() (*ast.Expr, error) {
	isByteLeaf := func(e *ast.Expr) bool {
		return e.Kind == ast.KLiteral || e.Kind == ast.KCharClass || e.Kind == ast.KDot
	}
	left, err := p.parseIntersection()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == TUnion {
		p.advance()
		right, err := p.parseIntersection()
		if err != nil {
			return nil, err
		}
		if isByteLeaf(left) && isByteLeaf(right) {
			// CombineStateExpr: two byte-matching leaves fold into one leaf.
			left = p.arena.LeafFromByteSet(left.ByteSet().Union(right.ByteSet()))
		} else {
			left = p.arena.Union(left, right)
		}
	}
	return left, nil
}

func (p *Parser) parseIntersection() (*ast.Expr, error) {
	first, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	operands := []*ast.Expr{first}
	isXOR := false

	for p.cur.Kind == TIntersection || p.cur.Kind == TXOR {
		wantXOR := p.cur.Kind == TXOR
		if len(operands) == 1 {
			isXOR = wantXOR
		} else if wantXOR != isXOR {
			return nil, &ParseError{Pos: p.cur.Pos, Err: ErrExtensionDisabled}
		}
		if wantXOR && !p.opts.XORExt {
			return nil, &ParseError{Pos: p.cur.Pos, Err: ErrExtensionDisabled}
		}
		if !wantXOR && !p.opts.IntersectionExt {
			return nil, &ParseError{Pos: p.cur.Pos, Err: ErrExtensionDisabled}
		}
		p.advance()
		operand, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		operands = append(operands, operand)
	}

	if len(operands) == 1 {
		return operands[0], nil
	}
	if isXOR && len(operands) != 2 {
		return nil, &ParseError{Pos: p.cur.Pos, Err: ErrExtensionDisabled}
	}
	return p.buildViaDFA(operands, isXOR)
}

// buildViaDFA realizes intersection and XOR by building each operand's DFA
// as one branch of a union, requiring the right number of simultaneous EOP
// leaves for acceptance, then decompiling the result back to an AST — spec
// section 4.B/4.D/4.E. The original operand subtrees are left unreferenced
// in the arena (dropped, per spec: arenas never delete, so this is simply
// unreachable bump-allocated space).
func (p *Parser) buildViaDFA(operands []*ast.Expr, isXOR bool) (*ast.Expr, error) {
	root := p.arena.Concat(operands[0], p.arena.Leaf(ast.KEOP))
	for _, op := range operands[1:] {
		root = p.arena.Union(root, p.arena.Concat(op, p.arena.Leaf(ast.KEOP)))
	}
	if err := position.FillPosition(root); err != nil {
		return nil, err
	}
	position.FillTransition(root)
	table := position.Numbering(root)

	neop := len(operands)
	if isXOR {
		neop = 1
	}
	d, err := dfa.Build(table, root.First, neop, p.opts.DeterminizationLimit)
	if err != nil {
		return nil, err
	}
	return gnfa.Decompile(d, p.arena), nil
}

func (p *Parser) parseConcat() (*ast.Expr, error) {
	var parts []*ast.Expr
	for p.cur.Concatenated() {
		e, err := p.parseQuant()
		if err != nil {
			return nil, err
		}
		parts = append(parts, e)
	}
	return p.concatAll(parts), nil
}

func (p *Parser) concatAll(parts []*ast.Expr) *ast.Expr {
	if len(parts) == 0 {
		return p.arena.Leaf(ast.KEpsilon)
	}
	cur := parts[0]
	for _, part := range parts[1:] {
		cur = p.arena.Concat(cur, part)
	}
	return cur
}

// parseQuant implements e3, applying each postfix quantifier suffix in
// turn. A '?' immediately following a just-built Star or Qmark toggles that
// node's NonGreedy flag rather than wrapping it again (the common
// engine-suffix convention); following Plus or a repetition expansion,
// which carry no NonGreedy field, a trailing '?' wraps instead.
func (p *Parser) parseQuant() (*ast.Expr, error) {
	cur, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	togglable := (*ast.Expr)(nil)

	for p.cur.Quantifier() {
		switch p.cur.Kind {
		case TQmark:
			if togglable != nil && !togglable.NonGreedy {
				togglable.NonGreedy = true
				p.advance()
				continue
			}
			cur = p.arena.Qmark(cur, false)
			togglable = cur
		case TStar:
			cur = p.arena.Star(cur, false)
			togglable = cur
		case TPlus:
			cur = p.arena.Plus(cur)
			togglable = nil
		case TRepetition:
			cur = p.expandRepetition(cur, p.cur.Lo, p.cur.Hi)
			togglable = nil
		}
		p.advance()
	}
	return cur, nil
}

func (p *Parser) expandRepetition(child *ast.Expr, lo, hi int) *ast.Expr {
	if lo == 0 && hi == 0 {
		return p.arena.Leaf(ast.KEpsilon)
	}
	if lo == 0 {
		return p.arena.Qmark(p.expandRepetition(child, 1, hi), false)
	}
	var parts []*ast.Expr
	if hi == -1 {
		for i := 0; i < lo-1; i++ {
			parts = append(parts, ast.Clone(child, p.arena))
		}
		parts = append(parts, p.arena.Plus(ast.Clone(child, p.arena)))
		return p.concatAll(parts)
	}
	for i := 0; i < lo; i++ {
		parts = append(parts, ast.Clone(child, p.arena))
	}
	for i := 0; i < hi-lo; i++ {
		parts = append(parts, p.arena.Qmark(ast.Clone(child, p.arena), false))
	}
	return p.concatAll(parts)
}

// parseUnary implements e4: an atom, a parenthesized e0 (recorded as a
// backreference-able group), or a complement.
func (p *Parser) parseUnary() (*ast.Expr, error) {
	switch p.cur.Kind {
	case TComplement:
		if !p.opts.ComplementExt {
			return nil, &ParseError{Pos: p.cur.Pos, Err: ErrExtensionDisabled}
		}
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return p.buildComplement(operand)
	case TLpar:
		p.advance()
		inner, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		if err := p.checkLexErr(); err != nil {
			return nil, err
		}
		if p.cur.Kind != TRpar {
			return nil, &ParseError{Pos: p.cur.Pos, Err: ErrUnbalancedParen}
		}
		p.advance()
		p.groups = append(p.groups, inner)
		return inner, nil
	case TRecursive:
		if !p.opts.RecursionExt {
			return nil, &ParseError{Pos: p.cur.Pos, Err: ErrExtensionDisabled}
		}
		p.advance()
		return p.parseRecursive()
	default:
		return p.parseAtom()
	}
}

// parseRecursive expands one occurrence of (?R): a fresh sub-parse of the
// entire pattern from the beginning, at one greater recursion depth, bounded
// by Options.RecursiveLimit. Beyond the limit, the innermost occurrence
// lowers to None (matches nothing) instead of expanding further — grounded
// on the original engine's recursive_limit field (original_source/src/expr.h).
func (p *Parser) parseRecursive() (*ast.Expr, error) {
	if p.recDepth >= p.opts.RecursiveLimit {
		return p.arena.Leaf(ast.KNone), nil
	}
	sub := newParser(p.pattern, p.arena, p.opts, p.recDepth+1)
	return sub.parseTop()
}

func (p *Parser) buildComplement(operand *ast.Expr) (*ast.Expr, error) {
	root := p.arena.Concat(operand, p.arena.Leaf(ast.KEOP))
	if err := position.FillPosition(root); err != nil {
		return nil, err
	}
	position.FillTransition(root)
	table := position.Numbering(root)

	d, err := dfa.Build(table, root.First, 1, p.opts.DeterminizationLimit)
	if err != nil {
		return nil, err
	}
	neg := dfa.Negative(d)
	return gnfa.Decompile(neg, p.arena), nil
}

func (p *Parser) parseAtom() (*ast.Expr, error) {
	if err := p.checkLexErr(); err != nil {
		return nil, err
	}
	tok := p.cur
	switch tok.Kind {
	case TLiteral:
		e := p.arena.Leaf(ast.KLiteral)
		e.Byte = tok.Byte
		p.advance()
		return e, nil
	case TCharClass:
		p.advance()
		return p.arena.LeafFromByteSet(tok.Class), nil
	case TDot:
		p.advance()
		return p.arena.Leaf(ast.KDot), nil
	case TBegLine:
		p.advance()
		return p.arena.Leaf(ast.KBegLine), nil
	case TEndLine:
		p.advance()
		return p.arena.Leaf(ast.KEndLine), nil
	case TNone:
		p.advance()
		return p.arena.Leaf(ast.KNone), nil
	case TBackRef:
		p.advance()
		if tok.Weak && !p.opts.WeakBackRefExt {
			return nil, &ParseError{Pos: tok.Pos, Err: ErrExtensionDisabled}
		}
		if tok.N < 0 || tok.N >= len(p.groups) {
			return nil, &BackRefError{N: tok.N + 1}
		}
		return ast.Clone(p.groups[tok.N], p.arena), nil
	default:
		return nil, &ParseError{Pos: tok.Pos, Err: ErrExpectedExpr}
	}
}
