package hierarchy

import "github.com/behrlich/go-dramsim/internal/devspec"

// Decode returns cmd unchanged if every node on addr's path permits it
// in its current state; otherwise it returns the precursor command
// that must be issued first. Power-state preconditions come from the
// spec's table (rules.go); the row-buffer decode chain -- ACT/PRE/RD/WR
// -- is universal DRAM behavior and is resolved here directly rather
// than through a per-standard table.
func (t *Tree) Decode(cmd devspec.Command, addr devspec.AddrVec) devspec.Command {
	nodes := t.path(cmd, addr)
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if issuable, precursor := t.spec.Precondition(n.Level, n.State, cmd); !issuable {
			return precursor
		}
	}
	if t.spec.ScopeOf(cmd) == t.spec.RowBufferAt {
		if precursor, ok := t.decodeRowBuffer(cmd, addr); ok {
			return precursor
		}
	}
	return cmd
}

func (t *Tree) decodeRowBuffer(cmd devspec.Command, addr devspec.AddrVec) (devspec.Command, bool) {
	n := t.RowBufferNode(addr)
	if n == nil {
		return devspec.NoCommand, false
	}
	switch cmd {
	case devspec.ACT:
		if n.State == devspec.Opened && n.OpenRow != addr.Row {
			return devspec.PRE, true
		}
	case devspec.RD, devspec.WR, devspec.RDA, devspec.WRA:
		switch {
		case n.State == devspec.Closed:
			return devspec.ACT, true
		case n.State == devspec.Opened && n.OpenRow != addr.Row:
			return devspec.PRE, true
		}
	}
	return devspec.NoCommand, false
}
