package dfa

// Negative complements d in place and returns it: every state's Accept
// bit is flipped, and a fresh universal sink state is appended whose
// transitions (and DefaultNext) all point back to itself and which is
// itself accepting. Every transition (and DefaultNext) that previously
// pointed at Reject is retargeted to the sink.
//
// This is required because complementing turns "stuck" (Reject) into
// "accepting for the rest of input" — without the sink, a complemented
// automaton would silently stop accepting the moment it fell off the
// live state table, instead of accepting every suffix from that point on.
func Negative(d *DFA) *DFA {
	sink := StateID(len(d.States))
	sinkState := newState()
	sinkState.Accept = true
	sinkState.DefaultNext = sink
	for b := range sinkState.Transition {
		sinkState.Transition[b] = sink
	}
	sinkState.recordEdge(sink)
	sinkState.recordIncoming(sink)

	for i, s := range d.States {
		s.Accept = !s.Accept
		if s.DefaultNext == Reject {
			s.DefaultNext = sink
			s.recordEdge(sink)
			sinkState.recordIncoming(StateID(i))
		}
		for b := range s.Transition {
			if s.Transition[b] == Reject {
				s.Transition[b] = sink
				s.recordEdge(sink)
				sinkState.recordIncoming(StateID(i))
			}
		}
	}

	d.States = append(d.States, sinkState)
	return d
}
