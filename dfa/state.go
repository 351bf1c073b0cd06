// Package dfa implements subset construction of a byte-level DFA from a
// Glushkov position automaton (component D), complement and minimization
// over that DFA, the peephole optimizations that substitute for a JIT
// back-end (component D's EliminateBranch/Reduce), the lazy/online
// construction entry point, and the single-threaded interpreter
// (component F).
package dfa

import "github.com/byteglush/rex/ast"

// StateID identifies one DFA state.
type StateID uint32

const (
	// Reject is the canonical id standing for the empty position set: no
	// leaf survives, so no further input can ever be matched. It is a
	// reserved sentinel rather than an entry in the live state table —
	// equivalent in effect to "the id assigned to the empty set" (spec),
	// just represented the way the teacher represents its own DeadState/
	// FailState sentinels rather than as a materialized table row.
	Reject StateID = 0xFFFFFFFF

	// Undef marks a transition slot that has not been computed yet. It is
	// only ever observed transiently: during eager construction, between
	// allocating a state and finishing its transition table; and during
	// lazy construction, in any slot OnlineConstruct has not yet been
	// asked to resolve.
	Undef StateID = 0xFFFFFFFE

	// Start is always the id of the DFA's initial state.
	Start StateID = 0
)

// RangeRule is the compact two-branch form the peephole Reduce pass
// produces for a state whose 256 transitions partition into at most two
// contiguous byte ranges: bytes in [Lo,Hi] go to Next1, every other byte
// goes to Next2. It lets an interpreter (or a JIT) use two compare-and-
// branch instructions instead of a 256-wide table lookup.
type RangeRule struct {
	Lo, Hi       byte
	Next1, Next2 StateID
}

// State is one row of the DFA transition table.
type State struct {
	Transition [256]StateID

	Accept bool

	// DefaultNext is the state reached by a Dot-derived fallback: the
	// union of the follow sets of every Dot position in this state's
	// underlying position set (Reject if that union is empty). See
	// DFA.expand in builder.go for how it's computed.
	DefaultNext StateID

	// Eliminated is set by the EliminateBranch peephole pass when every
	// one of the 256 transitions equals DefaultNext: the interpreter can
	// then skip the table lookup entirely and fall through to
	// DefaultNext unconditionally. Transition is left populated (not
	// cleared) so invariant 3 — "for every DFA state s, |transition[s]|
	// == 256" — remains checkable regardless of peephole level.
	Eliminated bool

	// Range is set by the Reduce peephole pass when Eliminated is false
	// but the table still collapses to at most two contiguous byte
	// ranges. Nil unless Reduce found such a partition.
	Range *RangeRule

	// InlineLevel counts how many peephole passes have touched this state;
	// purely diagnostic (surfaced for tests and introspection).
	InlineLevel int

	// posKey is the canonical sorted leaf-id key for this state's
	// underlying position set. Needed by OnlineConstruct to resolve
	// not-yet-computed transitions against the same leaves table the
	// eager path used. Minimize copies it onto each merged state.
	posKey []ast.LeafID

	// dstStates and srcStates are the "auxiliary dst_states/src_states
	// sets" from the data model: the set of states reachable in one step
	// from this state, and the set of states that reach this state in one
	// step. Recorded edge by edge as transitions are set, and exposed via
	// DstStates/SrcStates; Minimize and the GNFA decompiler read the
	// transition tables directly instead.
	dstStates map[StateID]bool
	srcStates map[StateID]bool

	// metaComputed is set once Accept and DefaultNext have been resolved
	// for a lazily-constructed state. Eager construction sets it
	// immediately; OnlineConstruct sets it the first time the state is
	// touched, regardless of which byte triggered the touch.
	metaComputed bool
}

func newState() *State {
	s := &State{DefaultNext: Reject}
	for i := range s.Transition {
		s.Transition[i] = Undef
	}
	return s
}

func (s *State) recordEdge(to StateID) {
	if s.dstStates == nil {
		s.dstStates = make(map[StateID]bool)
	}
	s.dstStates[to] = true
}

func (s *State) recordIncoming(from StateID) {
	if s.srcStates == nil {
		s.srcStates = make(map[StateID]bool)
	}
	s.srcStates[from] = true
}

// DstStates returns the set of states reachable from s in exactly one
// step (deduplicated across all 256 transitions and DefaultNext).
func (s *State) DstStates() map[StateID]bool { return s.dstStates }

// SrcStates returns the set of states that reach s in exactly one step.
func (s *State) SrcStates() map[StateID]bool { return s.srcStates }
