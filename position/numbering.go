package position

import (
	"fmt"

	"github.com/byteglush/rex/ast"
)

// Numbering assigns sequential LeafIDs to every state-bearing leaf of the
// tree rooted at root, in a deterministic left-to-right tree-order walk,
// and returns the resulting leaf table (table[id] is the leaf with that
// id). Running Numbering twice over an unmodified tree always produces
// the same ids, which is what lets DFA construction be reproducible
// across runs of the same pattern.
func Numbering(root *ast.Expr) []*ast.Expr {
	var table []*ast.Expr
	var walk func(e *ast.Expr)
	walk = func(e *ast.Expr) {
		if e == nil {
			return
		}
		if e.IsLeaf() {
			e.LeafID = ast.LeafID(len(table))
			table = append(table, e)
			return
		}
		for _, c := range e.Children() {
			walk(c)
		}
	}
	walk(root)
	return table
}

// Validate checks the whole-pattern invariants that only make sense after
// Numbering has run: exactly one EOP leaf exists, and it is the rightmost
// leaf in document order (i.e. the last entry of table).
func Validate(table []*ast.Expr) error {
	eopCount := 0
	eopIdx := -1
	for i, leaf := range table {
		if leaf.Kind == ast.KEOP {
			eopCount++
			eopIdx = i
		}
	}
	if eopCount != 1 {
		return fmt.Errorf("position: expected exactly one EOP leaf, found %d", eopCount)
	}
	if eopIdx != len(table)-1 {
		return fmt.Errorf("position: EOP leaf must be rightmost (at index %d of %d)", eopIdx, len(table))
	}
	return nil
}
