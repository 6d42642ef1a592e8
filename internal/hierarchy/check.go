package hierarchy

import "github.com/behrlich/go-dramsim/internal/devspec"

// Check reports whether cmd may legally fire against addr at cycle
// clk: every node from the Channel root down to cmd's scope node must
// clear its earliest-legal-cycle counter and any windowed constraint,
// and the scope node's current state must permit cmd directly (not
// merely via a precursor -- Decode resolves precursors).
func (t *Tree) Check(cmd devspec.Command, addr devspec.AddrVec, clk int64) bool {
	nodes := t.path(cmd, addr)
	for _, n := range nodes {
		if !n.checkSelf(t.spec, cmd, clk) {
			return false
		}
	}
	scope := nodes[len(nodes)-1]
	issuable, _ := t.spec.Precondition(scope.Level, scope.State, cmd)
	if !issuable {
		return false
	}
	if t.spec.ScopeOf(cmd) == t.spec.RowBufferAt {
		if _, needsPrecursor := t.decodeRowBuffer(cmd, addr); needsPrecursor {
			return false
		}
	}
	return true
}

// checkSelf evaluates this node's own Next counter and any windowed
// (distance > 1) rule constraining cmd; distance == 1 rules are fully
// captured by Next, so only the windowed subset needs a Prev lookup.
func (n *Node) checkSelf(spec *devspec.DeviceSpec, cmd devspec.Command, clk int64) bool {
	if clk < n.nextFor(cmd) {
		return false
	}
	for _, rule := range spec.TimingRulesTo(cmd) {
		if rule.Distance <= 1 {
			continue
		}
		ts, ok := n.nthPrevious(rule.From, rule.Distance)
		if !ok {
			continue
		}
		if clk < ts+int64(rule.Gap) {
			return false
		}
	}
	return true
}

// CheckRowHit reports whether the row-buffer-owning node on addr's
// path is Opened on exactly addr's row.
func (t *Tree) CheckRowHit(addr devspec.AddrVec) bool {
	n := t.RowBufferNode(addr)
	return n != nil && n.State == devspec.Opened && n.OpenRow == addr.Row
}

// CheckRowOpen reports whether the row-buffer-owning node on addr's
// path is Opened at all, regardless of row.
func (t *Tree) CheckRowOpen(addr devspec.AddrVec) bool {
	n := t.RowBufferNode(addr)
	return n != nil && n.State == devspec.Opened
}
