// Package gnfa converts a byte-level DFA back into an equivalent AST by
// generalized-NFA state elimination (component E). It is how the parser
// realizes the intersection, complement, and XOR operators: rather than
// carrying `&`, `!`, `&&` as AST node kinds all the way down to the
// position automaton, the parser builds each operand's DFA, combines them
// with dfa.Negative/subset construction, and hands the result to Decompile
// to get back a plain, Glushkov-buildable AST — grounded on
// original_source/src/recon.cc and /regen.cc (DFA-to-regex reconstruction
// via Brzozowski/McNaughton-Yamada-style state elimination).
package gnfa

import "github.com/byteglush/rex/ast"
import "github.com/byteglush/rex/dfa"

// node identifies a vertex in the elimination graph: either a real DFA
// state (>= 0) or one of the two virtual endpoints added around it.
type node int

const (
	start  node = -1
	accept node = -2
)

// Decompile returns an AST equivalent to the language d accepts, built in
// arena. The returned expression is a bare operand — it carries no EOP
// leaf and is not yet numbered; the caller splices it into a larger tree
// (or wraps it directly) and runs position.FillPosition/FillTransition/
// Numbering once over the whole result, exactly as it would for any other
// operand.
func Decompile(d *dfa.DFA, arena *ast.Arena) *ast.Expr {
	g := newGraph(d, arena)
	for s := dfa.StateID(0); int(s) < d.Len(); s++ {
		g.eliminate(node(s))
	}
	if e, ok := g.edges[edgeKey{start, accept}]; ok {
		if e == nil {
			// Only the epsilon edge survived: d accepts just the empty string.
			eps := arena.Alloc()
			eps.Kind = ast.KEpsilon
			return eps
		}
		return e
	}
	return arena.Leaf(ast.KNone)
}

type edgeKey struct{ from, to node }

type graph struct {
	arena *ast.Arena
	edges map[edgeKey]*ast.Expr
}

// newGraph builds the initial elimination graph: one edge per (state,
// reachable state) pair, labeled with the set of bytes that transition
// between them collapsed into a single leaf, plus an epsilon-equivalent
// edge from the virtual start into d.Start and from every accepting state
// into the virtual accept node.
func newGraph(d *dfa.DFA, arena *ast.Arena) *graph {
	g := &graph{arena: arena, edges: make(map[edgeKey]*ast.Expr)}

	g.addEdge(start, node(d.Start), nil)

	for i := 0; i < d.Len(); i++ {
		s := d.State(dfa.StateID(i))
		if s.Accept {
			g.addEdge(node(i), accept, nil)
		}

		byTarget := make(map[dfa.StateID]ast.ByteSet)
		for b := 0; b < 256; b++ {
			to := s.Transition[b]
			if to == dfa.Reject {
				continue
			}
			bs := byTarget[to]
			bs.Set(byte(b))
			byTarget[to] = bs
		}
		for to, bs := range byTarget {
			g.addEdge(node(i), node(to), arena.LeafFromByteSet(bs))
		}
	}
	return g
}

// addEdge merges e into any existing (from,to) edge via Union. A nil e
// denotes an epsilon transition (the start->d.Start and accept-state->
// accept edges): epsilon factors are omitted entirely when concatenated,
// per the state-elimination rule, rather than represented as a real
// zero-width AST node.
func (g *graph) addEdge(from, to node, e *ast.Expr) {
	key := edgeKey{from, to}
	cur, exists := g.edges[key]
	switch {
	case !exists:
		g.edges[key] = e
	case cur == nil && e == nil:
		// both epsilon: no change
	case cur == nil:
		// epsilon union e is "e, optionally" — make it skippable.
		g.edges[key] = g.arena.Qmark(e, false)
	case e == nil:
		g.edges[key] = g.arena.Qmark(cur, false)
	default:
		g.edges[key] = g.arena.Union(cur, e)
	}
}

// concat composes two factors, treating a nil operand (epsilon) as the
// identity rather than emitting an empty Concat arm.
func (g *graph) concat(a, b *ast.Expr) *ast.Expr {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	default:
		return g.arena.Concat(a, b)
	}
}

// eliminate removes i from the graph, rerouting every incoming/outgoing
// pair of edges through i's self-loop (starred, if present) and folding
// the result into the direct edge between the pair, then deletes every
// edge that touched i.
func (g *graph) eliminate(i node) {
	var loop *ast.Expr
	if self, ok := g.edges[edgeKey{i, i}]; ok && self != nil {
		loop = g.arena.Star(self, false)
	}

	var incoming, outgoing []node
	for k := range g.edges {
		if k.to == i && k.from != i {
			incoming = append(incoming, k.from)
		}
		if k.from == i && k.to != i {
			outgoing = append(outgoing, k.to)
		}
	}

	for _, j := range incoming {
		in := g.edges[edgeKey{j, i}]
		for _, k := range outgoing {
			out := g.edges[edgeKey{i, k}]
			factor := g.concat(in, g.concat(loop, out))
			g.addEdge(j, k, factor)
		}
	}

	for k := range g.edges {
		if k.from == i || k.to == i {
			delete(g.edges, k)
		}
	}
}
