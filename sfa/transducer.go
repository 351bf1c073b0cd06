// Package sfa implements the segment transducer and parallel matcher
// (component G): a second automaton built over the DFA's own states so
// that an input can be split into segments, each summarized independently
// and in parallel, then composed sequentially into the same result the
// single-threaded DFA interpreter would have produced.
package sfa

import (
	"sort"
	"strconv"
	"strings"

	"github.com/byteglush/rex/dfa"
)

// SSTransition is one segment-transducer state: a mapping from every DFA
// state a segment could plausibly have begun in to the DFA state reached
// after consuming the segment (spec section 3, "Segment transducer state").
type SSTransition map[dfa.StateID]dfa.StateID

// SFA is the transducer automaton, built once per compiled pattern and
// shared read-only by every parallel Match call afterward.
type SFA struct {
	D        *dfa.DFA
	States   []SSTransition
	trans    [][256]int
	stateMap map[string]int
}

// Build runs subset construction over the space of SSTransitions,
// starting from the identity mapping {s -> s | s is a live DFA state}.
// limit, if non-zero, bounds the number of distinct SSTransitions
// constructed before ErrTooComplex is returned.
func Build(d *dfa.DFA, limit int) (*SFA, error) {
	s := &SFA{D: d, stateMap: make(map[string]int)}

	identity := make(SSTransition, d.Len())
	for i := 0; i < d.Len(); i++ {
		identity[dfa.StateID(i)] = dfa.StateID(i)
	}
	s.States = append(s.States, identity)
	s.trans = append(s.trans, [256]int{})
	s.stateMap[key(identity)] = 0

	worklist := []int{0}
	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]
		for b := 0; b < 256; b++ {
			succ := step(s.States[cur], d, byte(b))
			id, isNew, err := s.resolve(succ, limit)
			if err != nil {
				return nil, err
			}
			s.trans[cur][b] = id
			if isNew {
				worklist = append(worklist, id)
			}
		}
	}
	return s, nil
}

// step advances every (start, current) pair of m through d on byte b,
// dropping any pair whose current state rejects — "Successor on byte b"
// from spec section 4.G.
func step(m SSTransition, d *dfa.DFA, b byte) SSTransition {
	out := make(SSTransition, len(m))
	for start, cur := range m {
		next := stepOne(d, cur, b)
		if next == dfa.Reject {
			continue
		}
		out[start] = next
	}
	return out
}

// stepOne advances a single DFA state, honoring whichever peephole form
// (Eliminated, Range, or the full table) the state is currently in.
func stepOne(d *dfa.DFA, cur dfa.StateID, b byte) dfa.StateID {
	st := d.State(cur)
	switch {
	case st.Eliminated:
		return st.DefaultNext
	case st.Range != nil:
		if b >= st.Range.Lo && b <= st.Range.Hi {
			return st.Range.Next1
		}
		return st.Range.Next2
	default:
		return st.Transition[b]
	}
}

func (s *SFA) resolve(m SSTransition, limit int) (id int, isNew bool, err error) {
	k := key(m)
	if id, ok := s.stateMap[k]; ok {
		return id, false, nil
	}
	if limit > 0 && len(s.States) >= limit {
		return 0, false, ErrTooComplex
	}
	id = len(s.States)
	s.States = append(s.States, m)
	s.trans = append(s.trans, [256]int{})
	s.stateMap[k] = id
	return id, true, nil
}

// key canonically encodes m as a sorted sequence of (start,current) pairs,
// per spec section 4.G: "An SSTransition is canonically represented as a
// sorted sequence of (start, current) pairs for hashing."
func key(m SSTransition) string {
	starts := make([]dfa.StateID, 0, len(m))
	for start := range m {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })

	var b strings.Builder
	for _, start := range starts {
		b.WriteString(strconv.FormatUint(uint64(start), 10))
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(uint64(m[start]), 10))
		b.WriteByte(',')
	}
	return b.String()
}

// Step advances SFA state cur on byte b.
func (s *SFA) Step(cur int, b byte) int { return s.trans[cur][b] }

// Start is always SFA state 0, the identity mapping.
func (s *SFA) Start() int { return 0 }

// At returns the SSTransition for SFA state id.
func (s *SFA) At(id int) SSTransition { return s.States[id] }

// Len returns the number of distinct SSTransitions the transducer holds.
func (s *SFA) Len() int { return len(s.States) }
