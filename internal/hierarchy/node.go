// Package hierarchy implements the tree of DRAM hierarchy nodes --
// Channel -> Rank -> BankGroup -> Bank -> Subarray -- each carrying a
// finite state and a set of earliest-legal-cycle timing counters, all
// driven by a single devspec.DeviceSpec rather than per-standard code.
package hierarchy

import "github.com/behrlich/go-dramsim/internal/devspec"

// ringSize bounds how many timestamps we keep per windowed command.
// tFAW (distance 4) is the deepest window any supported standard uses.
const ringSize = 8

// Node is one element of the hierarchy tree. It carries no reference to
// its parent or to a Controller -- callers pass in the address vector
// and cycle they need resolved, per the dependency-injection rule in
// SPEC_FULL.md's design notes.
type Node struct {
	Level    devspec.Level
	State    devspec.State
	Children []*Node

	// OpenRow/OpenSince are meaningful only at spec.RowBufferAt; every
	// other level ignores them. They are this node's own copy of the
	// information the separate RowTable index mirrors for fast lookup.
	OpenRow   int
	OpenSince int64

	next map[devspec.Command]int64
	prev map[devspec.Command][]int64
}

func newNode(level devspec.Level, state devspec.State) *Node {
	return &Node{
		Level: level,
		State: state,
		next:  make(map[devspec.Command]int64),
		prev:  make(map[devspec.Command][]int64),
	}
}

func (n *Node) nextFor(cmd devspec.Command) int64 {
	return n.next[cmd]
}

func (n *Node) bumpNext(cmd devspec.Command, at int64) {
	if at > n.next[cmd] {
		n.next[cmd] = at
	}
}

// pushPrev records that cmd fired at cycle clk at this node, keeping at
// most ringSize entries, oldest first.
func (n *Node) pushPrev(cmd devspec.Command, clk int64) {
	buf := n.prev[cmd]
	buf = append(buf, clk)
	if len(buf) > ringSize {
		buf = buf[len(buf)-ringSize:]
	}
	n.prev[cmd] = buf
}

// nthPrevious returns the distance-th most recent timestamp of cmd at
// this node (distance=1 is the last one) and whether that much history
// exists yet.
func (n *Node) nthPrevious(cmd devspec.Command, distance int) (int64, bool) {
	buf := n.prev[cmd]
	idx := len(buf) - distance
	if idx < 0 {
		return 0, false
	}
	return buf[idx], true
}

// childAt returns the idx-th child, or nil if out of range. Callers
// look up idx from the relevant field of an AddrVec.
func (n *Node) childAt(idx int) *Node {
	if idx < 0 || idx >= len(n.Children) {
		return nil
	}
	return n.Children[idx]
}
