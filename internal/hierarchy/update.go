package hierarchy

import "github.com/behrlich/go-dramsim/internal/devspec"

// Update applies the state and timing side effects of issuing cmd
// against addr at cycle clk: the row-buffer or power-state transition
// at cmd's scope node, and every timing rule cmd triggers at its own
// scope (advancing Next, or recording Prev for windowed rules).
func (t *Tree) Update(cmd devspec.Command, addr devspec.AddrVec, clk int64) {
	t.applyStateEffect(cmd, addr, clk)
	for _, rule := range t.spec.TimingRulesFor(cmd) {
		n := t.nodeAt(rule.Scope, addr)
		if n == nil {
			continue
		}
		if rule.Distance > 1 {
			n.pushPrev(rule.From, clk)
			continue
		}
		n.bumpNext(rule.To, clk+int64(rule.Gap))
	}
}

// applyStateEffect resolves the node(s) cmd's state transition touches.
// Row-buffer commands (ACT/PRE/.../REF/REFSB) are universal across
// standards and hardcoded here; power-state commands (PDE/PDX/SRE/SRX)
// go through the spec's effect table since rules.go registers them
// uniformly at Rank scope for every standard.
func (t *Tree) applyStateEffect(cmd devspec.Command, addr devspec.AddrVec, clk int64) {
	switch cmd {
	case devspec.ACT:
		if n := t.RowBufferNode(addr); n != nil {
			n.State = devspec.Opened
			n.OpenRow = addr.Row
			n.OpenSince = clk
		}
	case devspec.PRE:
		if n := t.RowBufferNode(addr); n != nil {
			n.State = devspec.Closed
		}
	case devspec.RD, devspec.WR:
		// row buffer remains open; no state change
	case devspec.RDA, devspec.WRA:
		if n := t.RowBufferNode(addr); n != nil {
			n.State = devspec.Closed
		}
	case devspec.PREA:
		t.closeAllUnder(devspec.Rank, addr)
	case devspec.REF:
		t.closeAllUnder(devspec.Rank, addr)
	case devspec.REFSB:
		if n := t.RowBufferNode(addr); n != nil {
			n.State = devspec.Closed
		}
	default:
		scope := t.spec.ScopeOf(cmd)
		n := t.nodeAt(scope, addr)
		if n == nil {
			return
		}
		if next, ok := t.spec.Effect(scope, n.State, cmd); ok {
			n.State = next
		}
	}
}

// closeAllUnder clears every RowBufferAt-level descendant under the
// node at level on addr's path -- PREA and REF both act on the whole
// rank regardless of which bank a request happened to target.
func (t *Tree) closeAllUnder(level devspec.Level, addr devspec.AddrVec) {
	root := t.nodeAt(level, addr)
	if root == nil {
		return
	}
	for _, n := range descendantsAt(root, t.spec.RowBufferAt) {
		n.State = devspec.Closed
	}
}

func descendantsAt(n *Node, level devspec.Level) []*Node {
	if n.Level == level {
		return []*Node{n}
	}
	var out []*Node
	for _, c := range n.Children {
		out = append(out, descendantsAt(c, level)...)
	}
	return out
}
