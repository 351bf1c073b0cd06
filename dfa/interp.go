package dfa

import "github.com/byteglush/rex/internal/cpufeature"

// FullMatch reports whether d accepts input in its entirety, starting in
// the DFA's start state. It is the single-threaded interpreter, component
// F: a tight loop with no suspension points.
//
// If d is a lazily-constructed DFA, transitions are resolved on demand via
// OnlineConstruct; a construction failure (determinization limit
// exceeded) is reported as a non-match rather than a panic, since FullMatch
// itself has no error return (matching spec section 6: matching is total).
func FullMatch(d *DFA, input []byte) bool {
	cur := d.Start
	i := 0
	for i < len(input) {
		if cur == Reject {
			return false
		}
		row := d.States[cur]
		b := input[i]

		var next StateID
		switch {
		case row.Eliminated:
			next = row.DefaultNext
			i++
		case row.Range != nil:
			if cpufeature.FastScan {
				next, i = stepRangeFast(row.Range, cur, input, i)
			} else {
				next, i = stepRangeScalar(row.Range, input, i)
			}
		default:
			next = step(d, cur, row, b)
			i++
		}
		cur = next
	}
	if cur == Reject {
		return false
	}
	if d.lazy {
		d.ensureMeta(cur)
	}
	return d.States[cur].Accept
}

// step resolves one byte's transition, lazily materializing it via
// OnlineConstruct if the DFA is in online-construction mode and the slot
// has not been touched yet.
func step(d *DFA, cur StateID, row *State, b byte) StateID {
	next := row.Transition[b]
	if next == Undef {
		var err error
		next, err = OnlineConstruct(d, cur, b)
		if err != nil {
			return Reject
		}
	}
	return next
}

// stepRangeScalar advances exactly one byte using the two-range rule: the
// scalar reference implementation every other path must agree with.
func stepRangeScalar(r *RangeRule, input []byte, i int) (StateID, int) {
	b := input[i]
	if b >= r.Lo && b <= r.Hi {
		return r.Next1, i + 1
	}
	return r.Next2, i + 1
}

// stepRangeFast is the SPEC_FULL.md section 4.F/4.K "fast-scan": when the
// out-of-range branch of a two-range state is a self-loop (cur == Next2,
// as in a leading .* scanning for the first occurrence of the in-range
// byte), the scalar loop above would step one byte at a time re-entering
// the same state. This jumps straight to the first in-range byte (or end
// of input) instead, with a plain byte scan that is taken only when
// cpufeature.FastScan is set.
//
// This is only sound for the self-loop case. When Next2 == Reject, every
// out-of-range byte must reject immediately — skipping ahead to search
// for an in-range byte would re-anchor the match and silently accept
// strings FullMatch must reject (e.g. an anchored "abc" matching
// "xabc"). That case always falls through to the scalar step, so it must,
// byte for byte, produce the same (state, position) the scalar loop
// would have reached — the only observable difference from the self-loop
// fast path is loop iteration count, never the match result (testable
// property 10).
func stepRangeFast(r *RangeRule, cur StateID, input []byte, i int) (StateID, int) {
	if r.Next2 != cur {
		// Not a self-loop; behaves exactly like the scalar step.
		return stepRangeScalar(r, input, i)
	}
	j := i
	for j < len(input) && !(input[j] >= r.Lo && input[j] <= r.Hi) {
		j++
	}
	if j >= len(input) {
		// No in-range byte left: the scalar loop would have stayed in cur.
		return cur, len(input)
	}
	return r.Next1, j + 1
}

// PartialMatch reports whether d accepts input, where d is expected to
// already be the DFA of .*·P·.* (spec section 4.F: "equivalent to
// FullMatch on .*·P·.*"). The wrapping is done once, at compile time, by
// the facade (see the root package's buildPartialAST) rather than
// repeated per call, so PartialMatch is simply FullMatch applied to the
// already-wrapped automaton — no separate runtime scanning loop is
// needed, and no risk of it disagreeing with FullMatch's own semantics.
func PartialMatch(d *DFA, input []byte) bool {
	return FullMatch(d, input)
}
