package ast

// AppendLeafUnique appends leaf to set if it is not already present,
// preserving set's existing order. Leaf sets in this package are small
// (first/last/follow rarely exceed a handful of positions) so a linear
// scan is cheaper than bringing a map into every node.
func AppendLeafUnique(set []*Expr, leaf *Expr) []*Expr {
	for _, e := range set {
		if e == leaf {
			return set
		}
	}
	return append(set, leaf)
}

// UnionLeafSets returns a new slice holding every leaf in a or b exactly
// once, in a-then-b order.
func UnionLeafSets(a, b []*Expr) []*Expr {
	out := make([]*Expr, 0, len(a)+len(b))
	for _, e := range a {
		out = AppendLeafUnique(out, e)
	}
	for _, e := range b {
		out = AppendLeafUnique(out, e)
	}
	return out
}
