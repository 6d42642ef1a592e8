package hierarchy

import "github.com/behrlich/go-dramsim/internal/devspec"

// path returns every node from the tree root down to and including the
// node at the command's scope level, by descending along addr. A
// command scoped at Rank yields a 2-element path (Channel, Rank); one
// scoped at Bank yields (Channel, Rank, [BankGroup], Bank).
func (t *Tree) path(cmd devspec.Command, addr devspec.AddrVec) []*Node {
	scope := t.spec.ScopeOf(cmd)
	nodes := []*Node{t.Root}
	cur := t.Root
	for cur.Level != scope {
		if len(cur.Children) == 0 {
			break
		}
		childLevel := cur.Children[0].Level
		idx := childIndex(childLevel, addr)
		next := cur.childAt(idx)
		if next == nil {
			break
		}
		nodes = append(nodes, next)
		cur = next
	}
	return nodes
}

// nodeAt descends to exactly the node at level, or nil if that level
// doesn't exist in this tree (e.g. Subarray on a non-subdivided bank).
func (t *Tree) nodeAt(level devspec.Level, addr devspec.AddrVec) *Node {
	cur := t.Root
	for cur.Level != level {
		if len(cur.Children) == 0 {
			return nil
		}
		childLevel := cur.Children[0].Level
		idx := childIndex(childLevel, addr)
		next := cur.childAt(idx)
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// Bank returns the Bank-level node on addr's path, regardless of
// whether spec.RowBufferAt is Bank or Subarray. CheckRowHit and
// CheckRowOpen inspect RowBufferNode instead.
func (t *Tree) Bank(addr devspec.AddrVec) *Node {
	return t.nodeAt(devspec.Bank, addr)
}

// RowBufferNode returns the node that owns open-row state for addr:
// the Bank node normally, the Subarray node for SALP/DSARP-style
// standards.
func (t *Tree) RowBufferNode(addr devspec.AddrVec) *Node {
	if t.spec.RowBufferAt == devspec.Subarray {
		if n := t.nodeAt(devspec.Subarray, addr); n != nil {
			return n
		}
	}
	return t.nodeAt(devspec.Bank, addr)
}
