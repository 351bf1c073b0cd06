package dfa

import (
	"strconv"
	"strings"
)

// Minimize runs Hopcroft-style partition refinement over d and returns a
// new, minimized DFA. Reject is treated as a genuine state for the
// duration of partitioning (so two states that both dead-end on the same
// bytes are correctly merged) and is removed again once the final
// partition is known — exactly the approach spec section 4.D calls for.
//
// Minimize(Minimize(d)) is idempotent up to state renaming (testable
// property 5): re-running partition refinement on an already-minimal DFA
// converges in one pass and assigns the same blocks, modulo the
// essentially arbitrary order blocks are discovered in.
func Minimize(d *DFA) *DFA {
	n := len(d.States)
	total := n + 1 // index n is the synthetic Reject state
	rejectIdx := n

	trans := make([][256]int, total)
	accept := make([]bool, total)
	for i, s := range d.States {
		accept[i] = s.Accept
		for b := 0; b < 256; b++ {
			if s.Transition[b] == Reject {
				trans[i][b] = rejectIdx
			} else {
				trans[i][b] = int(s.Transition[b])
			}
		}
	}
	for b := 0; b < 256; b++ {
		trans[rejectIdx][b] = rejectIdx
	}

	partition := make([]int, total)
	for i := 0; i < total; i++ {
		if accept[i] {
			partition[i] = 1
		}
	}

	for {
		newPartition, blocks := refine(partition, trans)
		if blocks == countBlocks(partition) && samePartition(partition, newPartition) {
			partition = newPartition
			break
		}
		partition = newPartition
	}

	return rebuild(d, partition, rejectIdx)
}

func refine(partition []int, trans [][256]int) ([]int, int) {
	total := len(partition)
	sigToBlock := make(map[string]int, total)
	out := make([]int, total)
	next := 0
	for i := 0; i < total; i++ {
		var b strings.Builder
		b.WriteString(strconv.Itoa(partition[i]))
		for byt := 0; byt < 256; byt++ {
			b.WriteByte('|')
			b.WriteString(strconv.Itoa(partition[trans[i][byt]]))
		}
		sig := b.String()
		id, ok := sigToBlock[sig]
		if !ok {
			id = next
			next++
			sigToBlock[sig] = id
		}
		out[i] = id
	}
	return out, next
}

func countBlocks(partition []int) int {
	max := -1
	for _, p := range partition {
		if p > max {
			max = p
		}
	}
	return max + 1
}

func samePartition(a, b []int) bool {
	// Two partitions induce the same grouping iff every pair of states
	// that share a block in one also shares a block in the other.
	groupA := make(map[int]int, len(a))
	for i, p := range a {
		if rep, ok := groupA[p]; ok {
			if b[rep] != b[i] {
				return false
			}
		} else {
			groupA[p] = i
		}
	}
	groupB := make(map[int]int, len(b))
	for i, p := range b {
		if rep, ok := groupB[p]; ok {
			if a[rep] != a[i] {
				return false
			}
		} else {
			groupB[p] = i
		}
	}
	return true
}

func rebuild(d *DFA, partition []int, rejectIdx int) *DFA {
	rejectBlock := partition[rejectIdx]
	startBlock := partition[int(d.Start)]

	// Map block id -> new StateID, skipping the reject block and
	// compacting the remaining ids to [0, k).
	blockToNew := make(map[int]StateID)
	var order []int
	for i := 0; i < len(d.States); i++ {
		blk := partition[i]
		if blk == rejectBlock {
			continue
		}
		if _, ok := blockToNew[blk]; !ok {
			blockToNew[blk] = StateID(len(order))
			order = append(order, blk)
		}
	}

	nd := &DFA{
		Neop:     d.Neop,
		Leaves:   d.Leaves,
		stateMap: make(map[string]StateID),
		limit:    d.limit,
	}
	for range order {
		nd.States = append(nd.States, newState())
	}

	repOf := make(map[int]int) // block -> representative original state index
	for i := 0; i < len(d.States); i++ {
		blk := partition[i]
		if _, ok := repOf[blk]; !ok {
			repOf[blk] = i
		}
	}

	for blk, newID := range blockToNew {
		rep := repOf[blk]
		old := d.States[rep]
		ns := nd.States[newID]
		ns.Accept = old.Accept
		ns.posKey = old.posKey
		for b := 0; b < 256; b++ {
			t := old.Transition[b]
			if t == Reject {
				ns.Transition[b] = Reject
				continue
			}
			tb := partition[int(t)]
			if tb == rejectBlock {
				ns.Transition[b] = Reject
			} else {
				ns.Transition[b] = blockToNew[tb]
				ns.recordEdge(ns.Transition[b])
			}
		}
		if old.DefaultNext == Reject {
			ns.DefaultNext = Reject
		} else {
			db := partition[int(old.DefaultNext)]
			if db == rejectBlock {
				ns.DefaultNext = Reject
			} else {
				ns.DefaultNext = blockToNew[db]
			}
		}
	}

	if rejectBlock == startBlock {
		// The start state can never reach an accepting state; Start stays
		// Reject-equivalent, which only arises for a pattern equivalent to
		// None. Keep a one-state DFA that rejects everything.
		dead := newState()
		for b := range dead.Transition {
			dead.Transition[b] = Reject
		}
		nd.States = []*State{dead}
		nd.Start = Start
		return nd
	}
	nd.Start = blockToNew[startBlock]
	return nd
}
