package dfa

import (
	"github.com/byteglush/rex/ast"
	"github.com/byteglush/rex/internal/sparse"
)

// DFA is a complete, deterministic, byte-level automaton: every state has
// exactly 256 defined transitions (Reject counts as defined — invariant 3
// in SPEC_FULL.md section 8).
type DFA struct {
	States []*State
	Start  StateID

	// Neop is the number of distinct EOP leaves a position set must
	// contain to be accepting: 1 for an ordinary compile, N for the
	// intersection of N branches (spec section 4.D).
	Neop int

	// Leaves is the shared leaf table from position.Numbering; Leaves[id]
	// is the leaf with that LeafID. DFA never mutates it.
	Leaves []*ast.Expr

	// lazy records which construction mode this DFA is permanently in.
	// Build sets it false; NewLazy sets it true. OnlineConstruct refuses
	// to run on a DFA built eagerly (ErrNotLazy) — see SPEC_FULL.md
	// section 9's OnlineConstruct decision.
	lazy bool

	// stateMap is the canonical posKey-string -> StateID table, shared
	// between eager subset construction and OnlineConstruct so the two
	// modes never assign two different ids to the same position set.
	stateMap map[string]StateID

	// limit is Options.DeterminizationLimit; 0 means unbounded.
	limit int
}

// Build runs full, eager subset construction over the position automaton
// whose start positions are first and whose leaf table is leaves,
// requiring neop distinct EOP leaves for acceptance. limit, if non-zero,
// bounds the number of states constructed before ErrTooComplex is
// returned.
func Build(leaves []*ast.Expr, first []*ast.Expr, neop int, limit int) (*DFA, error) {
	d := &DFA{
		Neop:     neop,
		Leaves:   leaves,
		stateMap: make(map[string]StateID),
		limit:    limit,
	}

	startKey := sortedLeafIDs(first, len(leaves))
	d.States = append(d.States, newState())
	d.States[0].posKey = startKey
	d.stateMap[keyString(startKey)] = Start
	d.Start = Start

	worklist := []StateID{Start}
	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]

		var err error
		worklist, err = d.expand(cur, worklist)
		if err != nil {
			return nil, &BuildError{States: len(d.States), Err: err}
		}
	}
	return d, nil
}

// expand computes state cur's full transition row and Accept bit,
// enqueueing any newly discovered states onto worklist.
func (d *DFA) expand(cur StateID, worklist []StateID) ([]StateID, error) {
	s := d.States[cur]
	members := resolveLeaves(d.Leaves, s.posKey)

	transAccum := make(map[byte]*sparse.SparseSet, 8)
	defaultAccum := sparse.NewSparseSet(uint32(len(d.Leaves)))
	eopSeen := 0

	for _, p := range members {
		if p.Kind == ast.KEOP {
			eopSeen++
		}
		bs := p.ByteSet()
		if bs.IsEmpty() {
			continue
		}
		for b := 0; b < 256; b++ {
			if !bs.Test(byte(b)) {
				continue
			}
			acc, ok := transAccum[byte(b)]
			if !ok {
				acc = sparse.NewSparseSet(uint32(len(d.Leaves)))
				transAccum[byte(b)] = acc
			}
			for _, f := range p.Follow {
				acc.Insert(uint32(f.LeafID))
			}
		}
		if p.Kind == ast.KDot {
			for _, f := range p.Follow {
				defaultAccum.Insert(uint32(f.LeafID))
			}
		}
	}

	s.Accept = eopSeen == d.Neop
	s.metaComputed = true

	var err error
	s.DefaultNext, worklist, err = d.resolve(defaultAccum.SortedKey(), worklist)
	if err != nil {
		return worklist, err
	}
	if s.DefaultNext != Reject {
		s.recordEdge(s.DefaultNext)
		d.States[s.DefaultNext].recordIncoming(cur)
	}

	for b := 0; b < 256; b++ {
		acc, ok := transAccum[byte(b)]
		var next StateID
		if !ok || acc.IsEmpty() {
			next = Reject
		} else {
			next, worklist, err = d.resolve(acc.SortedKey(), worklist)
			if err != nil {
				return worklist, err
			}
		}
		s.Transition[b] = next
		if next != Reject {
			s.recordEdge(next)
			d.States[next].recordIncoming(cur)
		}
	}
	return worklist, nil
}

// resolve looks up (or creates and enqueues) the DFA state for a sorted
// leaf-id set, consulting the shared stateMap.
func (d *DFA) resolve(sortedIDs []uint32, worklist []StateID) (StateID, []StateID, error) {
	if len(sortedIDs) == 0 {
		return Reject, worklist, nil
	}
	ids := make([]ast.LeafID, len(sortedIDs))
	for i, v := range sortedIDs {
		ids[i] = ast.LeafID(v)
	}
	key := keyString(ids)
	if id, ok := d.stateMap[key]; ok {
		return id, worklist, nil
	}
	if d.limit > 0 && len(d.States) >= d.limit {
		return Reject, worklist, ErrTooComplex
	}
	id := StateID(len(d.States))
	ns := newState()
	ns.posKey = ids
	d.States = append(d.States, ns)
	d.stateMap[key] = id
	worklist = append(worklist, id)
	return id, worklist, nil
}

// Len returns the number of states in the DFA (excluding the Reject
// sentinel, which is never a real row).
func (d *DFA) Len() int { return len(d.States) }

// State returns the row for id. It panics on Reject/Undef, matching the
// invariant that callers only index live states.
func (d *DFA) State(id StateID) *State { return d.States[id] }

// IsAccept reports whether id is an accepting state.
func (d *DFA) IsAccept(id StateID) bool { return d.States[id].Accept }
