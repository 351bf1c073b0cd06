package dfa

import "github.com/byteglush/rex/rxopt"

// EliminateBranch scans every state of d and, where all 256 transitions
// point at the same target state, records that target as DefaultNext and
// sets Eliminated so the interpreter can skip the table lookup entirely
// and fall straight through. Transition itself is left intact (invariant
// 3 must hold at every optimization level).
func EliminateBranch(d *DFA) {
	for _, s := range d.States {
		common := s.Transition[0]
		uniform := true
		for b := 1; b < 256; b++ {
			if s.Transition[b] != common {
				uniform = false
				break
			}
		}
		if uniform {
			s.DefaultNext = common
			s.Eliminated = true
			s.InlineLevel++
		}
	}
}

// Reduce scans every non-eliminated state of d and, where the 256
// transitions partition into at most two contiguous byte ranges (an
// "inside" run [lo,hi] and a uniform "outside"), records the compact
// RangeRule form so the interpreter (or a JIT) can use two compare-and-
// branch instructions in place of a table lookup.
func Reduce(d *DFA) {
	for _, s := range d.States {
		if s.Eliminated {
			continue
		}
		if lo, hi, in, out, ok := twoRange(&s.Transition); ok {
			s.Range = &RangeRule{Lo: lo, Hi: hi, Next1: in, Next2: out}
			s.InlineLevel++
		}
	}
}

// twoRange reports whether trans decomposes as: a uniform "outside" value
// everywhere except one contiguous run [lo,hi] of a second, uniform
// "inside" value.
func twoRange(trans *[256]StateID) (lo, hi byte, inVal, outVal StateID, ok bool) {
	outVal = trans[0]
	i := 0
	for i < 256 && trans[i] == outVal {
		i++
	}
	if i == 256 {
		// Fully uniform; that's EliminateBranch's case, not a two-range.
		return 0, 0, 0, 0, false
	}
	lo = byte(i)
	inVal = trans[i]
	for i < 256 && trans[i] == inVal {
		i++
	}
	hi = byte(i - 1)
	for ; i < 256; i++ {
		if trans[i] != outVal {
			return 0, 0, 0, 0, false
		}
	}
	return lo, hi, inVal, outVal, true
}

// ApplyLevel runs the optimization passes implied by level, in order:
// O1 adds minimization, O2 adds EliminateBranch, O3 adds Reduce. O0 is a
// no-op (plain subset-constructed DFA). Each level's output is itself a
// valid, fully-populated DFA — this is the "interpreted loop, no JIT
// required" substitution SPEC_FULL.md section 9 calls for.
func ApplyLevel(d *DFA, level rxopt.Level) *DFA {
	if level >= rxopt.O1 {
		d = Minimize(d)
	}
	if level >= rxopt.O2 {
		EliminateBranch(d)
	}
	if level >= rxopt.O3 {
		Reduce(d)
	}
	return d
}
