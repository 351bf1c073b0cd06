package dfa

import (
	"github.com/byteglush/rex/ast"
	"github.com/byteglush/rex/internal/sparse"
)

// NewLazy creates a DFA in online-construction mode: the start state is
// registered but no transition beyond it is computed until
// OnlineConstruct asks for it. A DFA created this way never runs eager
// subset construction — the two modes are mutually exclusive for the
// DFA's lifetime (SPEC_FULL.md section 9, OnlineConstruct decision).
func NewLazy(leaves []*ast.Expr, first []*ast.Expr, neop int, limit int) *DFA {
	d := &DFA{
		Neop:     neop,
		Leaves:   leaves,
		stateMap: make(map[string]StateID),
		limit:    limit,
		lazy:     true,
	}
	startKey := sortedLeafIDs(first, len(leaves))
	d.States = append(d.States, newState())
	d.States[0].posKey = startKey
	d.stateMap[keyString(startKey)] = Start
	d.Start = Start
	return d
}

// OnlineConstruct lazily materializes the transition for state s on byte
// b the first time it is needed. After it returns, Transition[s][b] is
// finalized and equal to the value eager construction would have given
// it. Not safe for concurrent use against the same DFA — it mutates
// shared state and must only run while the DFA has no concurrent readers
// (SPEC_FULL.md section 5).
func OnlineConstruct(d *DFA, s StateID, b byte) (StateID, error) {
	if !d.lazy {
		return Reject, ErrNotLazy
	}
	d.ensureMeta(s)
	row := d.States[s]
	if row.Transition[b] != Undef {
		return row.Transition[b], nil
	}

	members := resolveLeaves(d.Leaves, row.posKey)
	acc := sparse.NewSparseSet(uint32(len(d.Leaves)))
	for _, p := range members {
		if p.ByteSet().Test(b) {
			for _, f := range p.Follow {
				acc.Insert(uint32(f.LeafID))
			}
		}
	}

	next, _, err := d.resolve(acc.SortedKey(), nil)
	if err != nil {
		return Reject, err
	}
	row.Transition[b] = next
	if next != Reject {
		row.recordEdge(next)
		d.States[next].recordIncoming(s)
	}
	return next, nil
}

// ensureMeta resolves Accept and DefaultNext for a lazily-constructed
// state the first time any byte of it is touched; both are cheap
// relative to the 256-wide transition row and are needed regardless of
// which byte is asked for first.
func (d *DFA) ensureMeta(s StateID) {
	row := d.States[s]
	if row.metaComputed {
		return
	}
	members := resolveLeaves(d.Leaves, row.posKey)
	eopSeen := 0
	defaultAccum := sparse.NewSparseSet(uint32(len(d.Leaves)))
	for _, p := range members {
		if p.Kind == ast.KEOP {
			eopSeen++
		}
		if p.Kind == ast.KDot {
			for _, f := range p.Follow {
				defaultAccum.Insert(uint32(f.LeafID))
			}
		}
	}
	row.Accept = eopSeen == d.Neop
	if next, _, err := d.resolve(defaultAccum.SortedKey(), nil); err == nil {
		row.DefaultNext = next
		if next != Reject {
			row.recordEdge(next)
		}
	}
	row.metaComputed = true
}
