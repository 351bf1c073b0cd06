package ast

// blockSize is the number of nodes per arena block. Sized so a typical
// pattern (a few dozen nodes) fits in one block; repetition expansion of
// large {n,m} counts simply grows into more blocks.
const blockSize = 64

// Arena is a bump allocator that owns every Expr node produced while
// parsing one pattern.
//
// Nodes are carved out of fixed-size blocks rather than appended to a
// growable slice: a growable []Expr would relocate on growth and
// invalidate every *Expr handed out so far, which the data model forbids
// ("nodes do not delete children; draining one arena into another is a
// pointer move operation"). A block, once allocated, never moves.
type Arena struct {
	blocks [][]Expr
	cur    int // index into the current (last) block's free slot
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Alloc returns a fresh, zero-valued Expr owned by the arena. The returned
// pointer is stable for the arena's lifetime.
func (a *Arena) Alloc() *Expr {
	if len(a.blocks) == 0 || a.cur == len(a.blocks[len(a.blocks)-1]) {
		a.blocks = append(a.blocks, make([]Expr, blockSize))
		a.cur = 0
	}
	blk := a.blocks[len(a.blocks)-1]
	e := &blk[a.cur]
	a.cur++
	return e
}

// Leaf allocates a state-bearing leaf of the given kind with LeafID left
// unnumbered (InvalidLeaf) until position.Numbering runs.
func (a *Arena) Leaf(k Kind) *Expr {
	e := a.Alloc()
	e.Kind = k
	e.LeafID = InvalidLeaf
	return e
}

// Concat, Union, Intersection, and XOR build the corresponding binary node.
func (a *Arena) Concat(l, r *Expr) *Expr       { return a.binary(KConcat, l, r) }
func (a *Arena) Union(l, r *Expr) *Expr        { return a.binary(KUnion, l, r) }
func (a *Arena) Intersection(l, r *Expr) *Expr { return a.binary(KIntersection, l, r) }
func (a *Arena) XOR(l, r *Expr) *Expr          { return a.binary(KXOR, l, r) }

func (a *Arena) binary(k Kind, l, r *Expr) *Expr {
	e := a.Alloc()
	e.Kind = k
	e.LeftC, e.RightC = l, r
	return e
}

// Qmark, Star, and Plus build the corresponding unary node.
func (a *Arena) Qmark(c *Expr, nonGreedy bool) *Expr {
	e := a.Alloc()
	e.Kind = KQmark
	e.Child = c
	e.NonGreedy = nonGreedy
	return e
}

func (a *Arena) Star(c *Expr, nonGreedy bool) *Expr {
	e := a.Alloc()
	e.Kind = KStar
	e.Child = c
	e.NonGreedy = nonGreedy
	return e
}

func (a *Arena) Plus(c *Expr) *Expr {
	e := a.Alloc()
	e.Kind = KPlus
	e.Child = c
	return e
}

// Drain moves every block owned by a into dst and empties a. It is O(1) in
// the number of nodes: only the block index slice is copied, no node is
// touched. Every *Expr handed out by a remains valid afterward, now owned
// by dst.
func (a *Arena) Drain(dst *Arena) {
	if len(a.blocks) == 0 {
		return
	}
	dst.blocks = append(dst.blocks, a.blocks...)
	// dst now continues allocating into what was a's last (partially full)
	// block, so dst.cur must track that block's fill level.
	dst.cur = a.cur
	a.blocks = nil
	a.cur = 0
}
