package sfa

import "errors"

// ErrTooComplex reports that transducer construction exceeded its state
// limit — the SFA equivalent of dfa.ErrTooComplex, since subset
// construction over SSTransitions is a DFA-of-DFA-states and can in
// principle blow up combinatorially even when the underlying DFA is small.
var ErrTooComplex = errors.New("sfa: transducer construction exceeded state limit")
