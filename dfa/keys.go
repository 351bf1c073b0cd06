package dfa

import (
	"strconv"
	"strings"

	"github.com/byteglush/rex/ast"
	"github.com/byteglush/rex/internal/conv"
	"github.com/byteglush/rex/internal/sparse"
)

// sortedLeafIDs returns the canonical (sorted) LeafID list for a position
// set given as leaf pointers. This is "the canonical representation of the
// set ... sorted state ids" the DFA-building key is defined over. universe
// is the total number of leaves in the pattern (the sparse set's capacity).
func sortedLeafIDs(leaves []*ast.Expr, universe int) []ast.LeafID {
	set := sparse.NewSparseSet(conv.IntToUint32(universe))
	for _, l := range leaves {
		set.Insert(conv.IntToUint32(int(l.LeafID)))
	}
	sorted := set.SortedKey()
	out := make([]ast.LeafID, len(sorted))
	for i, id := range sorted {
		out[i] = ast.LeafID(id)
	}
	return out
}

// keyString renders a sorted LeafID list as a map key. Decimal ids joined
// by commas keep it trivially collision-free and easy to eyeball
// when debugging a failed determinization.
func keyString(ids []ast.LeafID) string {
	if len(ids) == 0 {
		return ""
	}
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(id)))
	}
	return b.String()
}

// resolveLeaves maps a sorted LeafID key back to leaf pointers using the
// shared leaf table.
func resolveLeaves(table []*ast.Expr, ids []ast.LeafID) []*ast.Expr {
	out := make([]*ast.Expr, len(ids))
	for i, id := range ids {
		out[i] = table[id]
	}
	return out
}
