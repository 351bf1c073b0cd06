package ast

import "errors"

// ErrUnsupportedInModel is returned when a caller asks for a feature the
// expression-tree model cannot carry — for example CapturedMatch span
// tracking requested alongside an XOR-derived subtree, which only exists
// as a decompiled DFA with no notion of which original branch matched.
var ErrUnsupportedInModel = errors.New("ast: feature not supported by this expression model")
