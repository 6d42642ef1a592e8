package hierarchy

import "github.com/behrlich/go-dramsim/internal/devspec"

// Tree is the hierarchy subtree for a single channel, i.e. exactly what
// one Controller owns exclusively.
type Tree struct {
	spec *devspec.DeviceSpec
	Root *Node
}

// NewTree builds one channel's subtree: Rank -> [BankGroup] -> Bank ->
// [Subarray], sized from spec.Org. BankGroup and Subarray levels are
// omitted when the organization doesn't use them, so a DDR3 tree has
// no BankGroup nodes and a non-SALP tree has no Subarray nodes.
func NewTree(spec *devspec.DeviceSpec) *Tree {
	root := newNode(devspec.Channel, devspec.PowerUp)
	root.Children = make([]*Node, spec.Org.Ranks)
	for r := range root.Children {
		root.Children[r] = buildRank(spec)
	}
	return &Tree{spec: spec, Root: root}
}

func buildRank(spec *devspec.DeviceSpec) *Node {
	rank := newNode(devspec.Rank, devspec.PowerUp)
	if spec.Org.HasBankGroups() {
		rank.Children = make([]*Node, spec.Org.BankGroups)
		for g := range rank.Children {
			rank.Children[g] = buildBankGroup(spec)
		}
	} else {
		rank.Children = make([]*Node, spec.Org.Banks)
		for b := range rank.Children {
			rank.Children[b] = buildBank(spec)
		}
	}
	return rank
}

func buildBankGroup(spec *devspec.DeviceSpec) *Node {
	bg := newNode(devspec.BankGroup, devspec.Closed)
	bg.Children = make([]*Node, spec.Org.Banks)
	for b := range bg.Children {
		bg.Children[b] = buildBank(spec)
	}
	return bg
}

func buildBank(spec *devspec.DeviceSpec) *Node {
	bank := newNode(devspec.Bank, devspec.Closed)
	if spec.Org.Subarrays > 1 {
		bank.Children = make([]*Node, spec.Org.Subarrays)
		for s := range bank.Children {
			bank.Children[s] = newNode(devspec.Subarray, devspec.Closed)
		}
	}
	return bank
}

// childIndex extracts the AddrVec field that selects a child, keyed by
// the CHILD's own level (not the parent's) -- a Rank's children are
// BankGroup-indexed when bank groups exist and Bank-indexed otherwise,
// so dispatching on the child's actual level handles both shapes with
// one path-walking routine.
func childIndex(childLevel devspec.Level, addr devspec.AddrVec) int {
	switch childLevel {
	case devspec.Rank:
		return addr.Rank
	case devspec.BankGroup:
		return addr.BankGroup
	case devspec.Bank:
		return addr.Bank
	case devspec.Subarray:
		return addr.Subarray
	default:
		return 0
	}
}
