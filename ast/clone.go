package ast

// Clone deep-copies the subtree rooted at e into dst, sharing no node
// structure with the original. Used by the parser to expand {n,m}
// repetition and strong/weak backreferences ((?R) recursion re-parses the
// pattern instead), and by the facade to copy the parsed tree: every copy
// must be independently numbered and independently linked into follow
// sets, so position.FillPosition/FillTransition/Numbering always run
// again over the whole tree after any Clone.
//
// Clone does not copy LeafID, First, Last, Follow, or Before: those are
// synthesized attributes that only make sense relative to one particular
// tree, and the clone is, by construction, a different tree.
func Clone(e *Expr, dst *Arena) *Expr {
	if e == nil {
		return nil
	}
	c := dst.Alloc()
	c.Kind = e.Kind
	c.Byte = e.Byte
	c.Class = e.Class
	c.Negative = e.Negative
	c.NonGreedy = e.NonGreedy
	c.OpKind = e.OpKind
	c.PairID = e.PairID
	c.LeafID = InvalidLeaf

	switch e.Kind {
	case KConcat, KUnion, KIntersection, KXOR:
		c.LeftC = Clone(e.LeftC, dst)
		c.RightC = Clone(e.RightC, dst)
	case KQmark, KStar, KPlus:
		c.Child = Clone(e.Child, dst)
	}
	return c
}
