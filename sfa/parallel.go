package sfa

import (
	"runtime"
	"sync"

	"github.com/byteglush/rex/dfa"
)

// MinSegmentBytes caps the segment count by input size: an input of at
// least MinSegmentBytes bytes is split into at most len(input)/MinSegmentBytes
// segments. An input shorter than MinSegmentBytes is not capped by size and
// is split across every requested worker (up to GOMAXPROCS).
const MinSegmentBytes = 1024

// Match partitions input into near-equal segments (at most workers of
// them), runs the transducer s over each segment concurrently, then
// sequentially composes the per-segment results against the real DFA
// start state — spec section 4.G's three steps; transducer construction
// itself already happened once, ahead of time, in Build.
//
// Grounded on the teacher's meta.Engine concurrency style: bounded,
// per-call goroutines with no cross-worker writes during the segment
// pass, rather than an unbounded `go` per byte or per call.
func Match(s *SFA, input []byte, workers int) bool {
	workers = workerCount(workers, len(input))
	segments := partition(input, workers)
	results := make([]int, len(segments))

	var wg sync.WaitGroup
	wg.Add(len(segments))
	for i, seg := range segments {
		i, seg := i, seg
		go func() {
			defer wg.Done()
			results[i] = runSegment(s, seg)
		}()
	}
	wg.Wait()

	return compose(s, results)
}

func workerCount(requested, inputLen int) int {
	if requested <= 0 {
		requested = 1
	}
	if gomax := runtime.GOMAXPROCS(0); requested > gomax {
		requested = gomax
	}
	if bySize := inputLen / MinSegmentBytes; bySize > 0 && requested > bySize {
		requested = bySize
	}
	if requested < 1 {
		requested = 1
	}
	return requested
}

// partition splits input into n near-equal segments; the remainder bytes
// of a non-divisible length are appended to the last segment (spec section
// 4.G, "Tie-breaking").
func partition(input []byte, n int) [][]byte {
	if n <= 1 || len(input) == 0 {
		return [][]byte{input}
	}
	size := len(input) / n
	segments := make([][]byte, 0, n)
	pos := 0
	for i := 0; i < n; i++ {
		end := pos + size
		if i == n-1 {
			end = len(input)
		}
		segments = append(segments, input[pos:end])
		pos = end
	}
	return segments
}

// runSegment is the pure per-worker function: start at the SFA's identity
// state and step through the segment's bytes. Each worker owns its input
// slice and its output cell exclusively; there are no cross-worker writes
// during this pass (spec section 5).
func runSegment(s *SFA, seg []byte) int {
	cur := s.Start()
	for _, b := range seg {
		cur = s.Step(cur, b)
	}
	return cur
}

// compose sequentially folds the per-segment SFA results into the set of
// DFA states reachable from the true start state, per spec section 4.G's
// Composition step, and reports whether any surviving candidate accepts.
func compose(s *SFA, results []int) bool {
	candidates := map[dfa.StateID]bool{s.D.Start: true}
	for _, r := range results {
		if len(candidates) == 0 {
			return false
		}
		m := s.At(r)
		next := make(map[dfa.StateID]bool, len(candidates))
		for c := range candidates {
			if to, ok := m[c]; ok {
				next[to] = true
			}
		}
		candidates = next
	}
	for c := range candidates {
		if s.D.IsAccept(c) {
			return true
		}
	}
	return false
}
