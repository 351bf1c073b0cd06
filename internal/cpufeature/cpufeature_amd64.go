//go:build amd64

// Package cpufeature gates the DFA interpreter's fast-scan path (section
// 4.F/4.K of SPEC_FULL.md) behind a single boolean computed once at
// startup. It never changes which inputs a pattern matches — only how
// many loop iterations the interpreter spends doing it — so every
// platform, including ones with FastScan permanently false, is exercised
// by the same correctness tests.
package cpufeature

import "golang.org/x/sys/cpu"

// FastScan is true when the interpreter's two-range scan (dfa.stepRangeFast)
// is enabled; it is keyed on SSE2. SSE2 is part of the amd64 baseline, so
// this is effectively always true on this platform, but the check mirrors
// the teacher's per-feature cpu.X86.Has* convention rather than assuming.
var FastScan = cpu.X86.HasSSE2
