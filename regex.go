// Package pregex provides a byte-level regular expression engine built on a
// Glushkov position automaton and subset-constructed DFA, rather than
// backtracking or a Thompson NFA.
//
// Matching is total and linear: every compiled pattern runs in O(n) time in
// the input length, with no catastrophic-backtracking failure mode. The
// trade-off is the engine's scope — no capture groups, no Unicode-aware
// classes beyond raw byte tables, no lookaround — in exchange for a single,
// predictable cost model.
//
// Basic usage:
//
//	re, err := pregex.Compile(`\d+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if re.Match([]byte("order 1234")) {
//	    fmt.Println("matched!")
//	}
//
// Extended operators — intersection (&), XOR (&&), complement (!), and
// bounded recursion ((?R)) — are opt-in via rxopt.Option, since they widen
// the accepted grammar beyond a conventional regex dialect:
//
//	re, err := pregex.Compile(`.*a.*&.*b.*`, rxopt.WithIntersectionExt(true))
package pregex

import (
	"strings"
	"sync"

	"github.com/byteglush/rex/ast"
	"github.com/byteglush/rex/dfa"
	"github.com/byteglush/rex/position"
	"github.com/byteglush/rex/prefilter"
	"github.com/byteglush/rex/rxopt"
	"github.com/byteglush/rex/sfa"
	"github.com/byteglush/rex/syntax"
)

// Regex is a compiled pattern.
//
// A Regex is safe for concurrent Match, MatchContext, MatchParallel, and
// String calls, since its DFA, SFA, and prefilter are immutable after
// Compile returns (SPEC_FULL.md section 5). CompileLevel mutates the
// compiled DFA in place and must not be called concurrently with any of
// those methods.
type Regex struct {
	pattern string
	opts    rxopt.Options
	arena   *ast.Arena

	effFull  *ast.Expr
	effTable []*ast.Expr
	d        *dfa.DFA

	anchoredD   *dfa.DFA // plain P, both ends anchored: used to locate MatchContext's End
	prefixFreeD *dfa.DFA // P . .*, start anchored only: used to locate MatchContext's Begin

	pf    *prefilter.Set
	hasPF bool

	sfOnce *sync.Once
	sf     *sfa.SFA
	sfErr  error
}

// MatchContext receives the overall match span when Regex.MatchContext is
// called with Options.CapturedMatch set; otherwise its fields are left
// untouched (spec.md section 6: "meaningless otherwise").
type MatchContext struct {
	Begin, End int
}

// Compile parses pattern and builds its DFA and prefilter. The SFA is built
// later, on the first MatchParallel call.
//
// Extended operators (intersection, XOR, complement, bounded recursion,
// weak backreferences) are rejected at parse time unless the matching
// rxopt.Option enables them.
func Compile(pattern string, opts ...rxopt.Option) (*Regex, error) {
	o := rxopt.Default()
	for _, opt := range opts {
		opt(&o)
	}

	if o.CapturedMatch && usesSpanUnsafeOperators(pattern, o) {
		return nil, ast.ErrUnsupportedInModel
	}

	arena, full, _, err := syntax.Parse([]byte(pattern), o)
	if err != nil {
		return nil, err
	}
	bareRoot := full.LeftC // full == Concat(bareRoot, EOP); see syntax.Parse

	// Parse already linked bareRoot's follow sets to its own EOP leaf; a
	// fresh copy keeps those edges out of the wrapped tree built below.
	effRoot := ast.Clone(bareRoot, arena)
	if o.ReverseRegex {
		effRoot = ast.Reverse(bareRoot, arena)
	}

	wrapped := buildPartialAST(arena, effRoot, o)
	if err := position.FillPosition(wrapped); err != nil {
		return nil, err
	}
	position.FillTransition(wrapped)
	table := position.Numbering(wrapped)
	if err := position.Validate(table); err != nil {
		return nil, err
	}

	d, err := dfa.Build(table, wrapped.First, 1, o.DeterminizationLimit)
	if err != nil {
		return nil, err
	}
	d = dfa.ApplyLevel(d, o.Level)

	r := &Regex{
		pattern:  pattern,
		opts:     o,
		arena:    arena,
		effFull:  wrapped,
		effTable: table,
		d:        d,
		sfOnce:   &sync.Once{},
	}

	if o.UsePrefilter {
		if set, ok := prefilter.Extract(effRoot, o.MinPrefilterLen); ok {
			r.pf, r.hasPF = set, true
		}
	}

	if o.CapturedMatch {
		if err := r.buildSpanDFAs(effRoot); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// MustCompile is Compile, panicking on error — for patterns known valid at
// init time.
func MustCompile(pattern string, opts ...rxopt.Option) *Regex {
	re, err := Compile(pattern, opts...)
	if err != nil {
		panic("pregex: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// buildPartialAST wraps root in `.* · root · .*` per Options.NoPrefixMatch
// / NoSuffixMatch (spec section 4.F: "PartialMatch ... equivalent to
// FullMatch on .* · P · .*"). The wrapping happens once, here, at compile
// time, rather than per call — dfa.PartialMatch is then just FullMatch
// applied to the already-wrapped automaton.
func buildPartialAST(arena *ast.Arena, root *ast.Expr, o rxopt.Options) *ast.Expr {
	body := root
	if !o.NoPrefixMatch {
		body = arena.Concat(dotStar(arena), body)
	}
	if !o.NoSuffixMatch {
		body = arena.Concat(body, dotStar(arena))
	}
	return arena.Concat(body, arena.Leaf(ast.KEOP))
}

func dotStar(arena *ast.Arena) *ast.Expr {
	return arena.Star(arena.Leaf(ast.KDot), false)
}

// buildSpanDFAs compiles the two auxiliary DFAs MatchContext needs to
// locate a match's byte span: one anchored at both ends (the bare
// pattern), used to find where a candidate match ends, and one anchored
// only at the start (pattern followed by `.*`), used to find where it
// begins.
func (r *Regex) buildSpanDFAs(effRoot *ast.Expr) error {
	anchored := r.arena.Concat(ast.Clone(effRoot, r.arena), r.arena.Leaf(ast.KEOP))
	if err := position.FillPosition(anchored); err != nil {
		return err
	}
	position.FillTransition(anchored)
	anchoredTable := position.Numbering(anchored)
	d, err := dfa.Build(anchoredTable, anchored.First, 1, r.opts.DeterminizationLimit)
	if err != nil {
		return err
	}
	r.anchoredD = d

	prefixFree := r.arena.Concat(r.arena.Concat(ast.Clone(effRoot, r.arena), dotStar(r.arena)), r.arena.Leaf(ast.KEOP))
	if err := position.FillPosition(prefixFree); err != nil {
		return err
	}
	position.FillTransition(prefixFree)
	prefixFreeTable := position.Numbering(prefixFree)
	d, err = dfa.Build(prefixFreeTable, prefixFree.First, 1, r.opts.DeterminizationLimit)
	if err != nil {
		return err
	}
	r.prefixFreeD = d
	return nil
}

// usesSpanUnsafeOperators reports whether pattern's surface syntax invokes
// an operator whose compiled form carries no span information back to the
// original tree (intersection, XOR, complement all lower through GNFA
// decompilation — see package gnfa — which discards which original branch
// a match took). Span-aware matching (Options.CapturedMatch) is rejected
// for these up front rather than silently reporting a span that does not
// correspond to any single operand (ast.ErrUnsupportedInModel, spec
// section 7).
func usesSpanUnsafeOperators(pattern string, o rxopt.Options) bool {
	if (o.IntersectionExt || o.XORExt) && strings.ContainsRune(pattern, '&') {
		return true
	}
	if o.ComplementExt && strings.ContainsRune(pattern, '!') {
		return true
	}
	return false
}

// Match reports whether input contains a match of the pattern, honoring
// Options.NoPrefixMatch/NoSuffixMatch (encoded once into the compiled DFA
// by buildPartialAST) and Options.ReverseMatch (reverses input at match
// time; see DESIGN.md's decision on the ReverseMatch/ReverseRegex open
// question).
func (r *Regex) Match(input []byte) bool {
	work := r.orient(input)
	if r.opts.UsePrefilter && r.hasPF && !r.pf.PossibleMatch(work) {
		return false
	}
	return dfa.FullMatch(r.d, work)
}

// MatchContext is Match, additionally populating ctx with the match's byte
// span when Options.CapturedMatch is set. The span is found by two
// auxiliary linear scans (Begin via the start-anchored/suffix-free DFA,
// then End via the fully anchored DFA) rather than threaded through the
// main DFA walk, since spec.md's data model carries no capture-group
// state (§6, non-goal).
func (r *Regex) MatchContext(input []byte, ctx *MatchContext) bool {
	matched := r.Match(input)
	if !r.opts.CapturedMatch || ctx == nil {
		return matched
	}
	if !matched {
		ctx.Begin, ctx.End = -1, -1
		return false
	}

	work := r.orient(input)
	begin := -1
	for b := 0; b <= len(work); b++ {
		if dfa.FullMatch(r.prefixFreeD, work[b:]) {
			begin = b
			break
		}
	}
	// Longest accepting end point: begin was chosen to have at least one
	// completion, so this loop always finds one (worst case e == begin for
	// a pattern that accepts the empty string).
	end := begin
	for e := len(work); e >= begin; e-- {
		if dfa.FullMatch(r.anchoredD, work[begin:e]) {
			end = e
			break
		}
	}

	if r.opts.ReverseMatch {
		n := len(work)
		ctx.Begin, ctx.End = n-end, n-begin
	} else {
		ctx.Begin, ctx.End = begin, end
	}
	return true
}

// MatchParallel is Match, run through the segment transducer (component G)
// across workers goroutines instead of the single-threaded interpreter.
// workers <= 0 uses Options.Workers. The SFA is built lazily, once, on
// first call, and shared read-only by every subsequent MatchParallel call.
func (r *Regex) MatchParallel(input []byte, workers int) bool {
	work := r.orient(input)
	if r.opts.UsePrefilter && r.hasPF && !r.pf.PossibleMatch(work) {
		return false
	}

	r.sfOnce.Do(func() {
		r.sf, r.sfErr = sfa.Build(r.d, 0)
	})
	if r.sfErr != nil {
		return dfa.FullMatch(r.d, work)
	}

	w := workers
	if w <= 0 {
		w = r.opts.Workers
	}
	return sfa.Match(r.sf, work, w)
}

// CompileLevel rebuilds the DFA's peephole optimization stages (spec.md
// section 6, Regex.compile_level) from the already-computed leaf table —
// no reparsing. It is not safe to call concurrently with Match,
// MatchContext, or MatchParallel.
func (r *Regex) CompileLevel(level rxopt.Level) error {
	d, err := dfa.Build(r.effTable, r.effFull.First, 1, r.opts.DeterminizationLimit)
	if err != nil {
		return err
	}
	r.d = dfa.ApplyLevel(d, level)
	r.opts.Level = level
	r.sfOnce = &sync.Once{}
	r.sf, r.sfErr = nil, nil
	return nil
}

// String returns the original pattern text. It carries no round-trip
// guarantee beyond the language GNFA decompilation produces being
// equivalent to the source pattern (SPEC_FULL.md §8 invariant 8) — the
// surface text is not reconstructed from the compiled automaton.
func (r *Regex) String() string {
	return r.pattern
}

// orient applies Options.ReverseMatch to input, matching the canonical
// behavior decided in SPEC_FULL.md section 9: ReverseMatch reverses the
// input at match time; ReverseRegex (applied once, at Compile) reverses
// the pattern instead. The two are independent bits that happen to compose
// when both are set (Options.Reverse()).
func (r *Regex) orient(input []byte) []byte {
	if !r.opts.ReverseMatch {
		return input
	}
	out := make([]byte, len(input))
	for i, b := range input {
		out[len(input)-1-i] = b
	}
	return out
}
