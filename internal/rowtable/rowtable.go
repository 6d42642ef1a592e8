// Package rowtable is the flat (rank, bankgroup, bank) -> open-row
// index Scheduler and RowPolicy consult. It mirrors a subset of the
// state internal/hierarchy.Node already carries, kept as its own
// read-optimized structure so Scheduler/RowPolicy never reach into a
// HierarchyNode directly -- they get this narrow view instead.
package rowtable

import (
	"sort"

	"github.com/behrlich/go-dramsim/internal/devspec"
)

// Key identifies one bank, independent of whether the underlying
// standard further subdivides it into subarrays.
type Key struct {
	Rank      int
	BankGroup int
	Bank      int
}

// KeyFromAddr extracts the bank-identifying fields of a decoded
// address.
func KeyFromAddr(addr devspec.AddrVec) Key {
	return Key{Rank: addr.Rank, BankGroup: addr.BankGroup, Bank: addr.Bank}
}

// Entry records which row a bank has open and since when.
type Entry struct {
	OpenRow   int
	OpenSince int64
}

// Table is the per-channel open-row index; one per Controller.
type Table struct {
	entries map[Key]Entry
}

// New returns an empty Table.
func New() *Table {
	return &Table{entries: make(map[Key]Entry)}
}

// Lookup reports the open row for k, if any.
func (t *Table) Lookup(k Key) (Entry, bool) {
	e, ok := t.entries[k]
	return e, ok
}

// OnActivate records that k opened row at cycle clk. The invariant
// "at most one row open per bank" holds because this simply overwrites
// any stale entry -- a bank can't legally ACT again without an
// intervening PRE clearing it first.
func (t *Table) OnActivate(k Key, row int, clk int64) {
	t.entries[k] = Entry{OpenRow: row, OpenSince: clk}
}

// OnPrecharge clears k's open-row entry.
func (t *Table) OnPrecharge(k Key) {
	delete(t.entries, k)
}

// OnRefreshRank clears every bank under rank -- REF invalidates the whole
// rank's open rows the same way it closes every HierarchyNode.
func (t *Table) OnRefreshRank(rank int) {
	for k := range t.entries {
		if k.Rank == rank {
			delete(t.entries, k)
		}
	}
}

// Each calls fn once per currently-open bank, in a fixed
// (Rank,BankGroup,Bank) order -- map iteration order is randomized in
// Go, and RowPolicy's victim scan must pick the same bank every time
// given the same state for a simulation run to be reproducible.
// Scheduler and RowPolicy use this instead of walking the
// HierarchyNode tree to find open banks: it is the one place the
// table is actually read back, not just written.
func (t *Table) Each(fn func(k Key, e Entry)) {
	keys := make([]Key, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		if a.BankGroup != b.BankGroup {
			return a.BankGroup < b.BankGroup
		}
		return a.Bank < b.Bank
	})
	for _, k := range keys {
		fn(k, t.entries[k])
	}
}
