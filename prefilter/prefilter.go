// Package prefilter extracts literal byte sequences a pattern requires in
// every match and uses them to reject "obviously absent" inputs before the
// DFA or SFA ever run (component J of the design, domain-stack addition —
// not present in the distilled spec).
//
// Grounded on the teacher's literal.Extractor (required-substring walk) and
// prefilter.Builder (strategy selection over the extracted set), collapsed
// here into a single Aho-Corasick pass: every extracted literal is required,
// so a literal the automaton never sees rules out a match on its own,
// without needing Teddy/Memchr tiering for a byte-level engine this size.
package prefilter

import "github.com/coregx/ahocorasick"

// minRunLen is the smallest literal run worth tracking at all, independent
// of Options.MinPrefilterLen — anything shorter never reaches the
// automaton, it would just slow down the scan for no benefit.
const minRunLen = 1

// Set is the compiled prefilter for one pattern: every literal run the
// pattern's Concat spine requires, plus the Aho-Corasick automaton built
// over them.
type Set struct {
	literals [][]byte
	auto     *ahocorasick.Automaton
}

// Literals returns the extracted required runs, longest qualifying ones
// first is not guaranteed — callers needing order should sort.
func (s *Set) Literals() [][]byte {
	return s.literals
}

// Len reports how many distinct literal runs the set holds.
func (s *Set) Len() int {
	return len(s.literals)
}

// PossibleMatch reports whether haystack could possibly satisfy the
// pattern. Every literal run in the set is mandatory, so if the automaton
// finds none of them anywhere in haystack, no required run is present and
// the DFA/SFA would certainly reject (spec section 4.J, "a required
// literal's absence already implies DFA rejection"). A true result only
// means "at least one required run occurred" — it is a candidate, not a
// confirmed match, and the real matcher still has to run.
//
// A *Set with zero literals (PossibleMatch is never called on it — see
// Extract's second return value) would vacuously return true; callers must
// check that second value before wiring the short-circuit in.
func (s *Set) PossibleMatch(haystack []byte) bool {
	return s.auto.IsMatch(haystack)
}
