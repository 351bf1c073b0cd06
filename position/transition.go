package position

import "github.com/byteglush/rex/ast"

// FillTransition performs the top-down pass that builds follow sets: it
// calls Connect at the seam of every Concat, Plus, and Star node. Must run
// after FillPosition (it reads First/Last) and before Numbering.
func FillTransition(root *ast.Expr) {
	if root == nil {
		return
	}
	switch root.Kind {
	case ast.KConcat:
		Connect(root.LeftC.Last, root.RightC.First)
		FillTransition(root.LeftC)
		FillTransition(root.RightC)
	case ast.KUnion, ast.KIntersection, ast.KXOR:
		FillTransition(root.LeftC)
		FillTransition(root.RightC)
	case ast.KStar, ast.KPlus:
		Connect(root.Child.Last, root.Child.First)
		FillTransition(root.Child)
	case ast.KQmark:
		FillTransition(root.Child)
	default:
		// leaf: nothing to connect
	}
}

// Connect inserts every leaf of B into the Follow set of every leaf of A,
// and symmetrically records every leaf of A into the Before set of every
// leaf of B.
func Connect(a, b []*ast.Expr) {
	for _, src := range a {
		for _, dst := range b {
			src.Follow = ast.AppendLeafUnique(src.Follow, dst)
			dst.Before = ast.AppendLeafUnique(dst.Before, src)
		}
	}
}
