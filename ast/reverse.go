package ast

// Reverse deep-copies the subtree rooted at e into dst, producing the
// expression tree for the reversed language (the set of strings s
// reversed for every s the original tree matches).
//
// Leaves are unchanged (a single byte or byte class reads the same
// forwards and backwards). Concat is anti-symmetric — reverse(A·B) =
// reverse(B)·reverse(A) — so its operands are both swapped and
// recursively reversed. Union, Intersection, and XOR are symmetric set
// operations, so only their operands are recursively reversed; the
// operand order is left as-is. Qmark, Star, and Plus reverse their single
// child in place.
//
// Grounded on the Options.ReverseRegex bit (spec section 4.H) and the
// open question in spec section 9 ("reverse the input or reverse the
// pattern, not both by default") — this function is the chosen
// "reverse the pattern" half of that decision; see DESIGN.md.
func Reverse(e *Expr, dst *Arena) *Expr {
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
	case KConcat:
		c.LeftC = Reverse(e.RightC, dst)
		c.RightC = Reverse(e.LeftC, dst)
	case KUnion, KIntersection, KXOR:
		c.LeftC = Reverse(e.LeftC, dst)
		c.RightC = Reverse(e.RightC, dst)
	case KQmark, KStar, KPlus:
		c.Child = Reverse(e.Child, dst)
	}
	return c
}
