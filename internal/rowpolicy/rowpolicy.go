// Package rowpolicy decides, when the Scheduler has nothing ready to
// issue, whether the Controller should speculatively precharge an
// idle-but-open bank.
package rowpolicy

import (
	"github.com/behrlich/go-dramsim/internal/devspec"
	"github.com/behrlich/go-dramsim/internal/rowtable"
)

// HasHit reports whether some queued request still targets the exact
// open bank+row described by addr -- if so, precharging it would only
// force a re-activate for a request already sitting in a queue.
type HasHit func(addr devspec.AddrVec) bool

// Policy picks a victim bank to precharge, or reports none available.
// rt is the channel's open-row index -- candidates come from there
// rather than a HierarchyNode tree walk, since rt is exactly the flat
// view of "which banks are open" a victim scan needs. The Controller
// still runs the returned address through its HierarchyNode tree's
// Check before issuing, so rt's bank-only granularity (no subarray
// field, see internal/rowtable's doc comment) never lets an illegal
// PRE through -- it only affects which bank gets offered as a
// candidate on subarray-capable (SALP) standards.
type Policy interface {
	Victim(rt *rowtable.Table, hasHit HasHit, clk int64) (devspec.AddrVec, bool)
}

func addrFor(k rowtable.Key, e rowtable.Entry) devspec.AddrVec {
	return devspec.AddrVec{Rank: k.Rank, BankGroup: k.BankGroup, Bank: k.Bank, Row: e.OpenRow}
}

// Closed eagerly precharges any open bank nobody is waiting on.
type Closed struct{}

func (Closed) Victim(rt *rowtable.Table, hasHit HasHit, clk int64) (devspec.AddrVec, bool) {
	var victim devspec.AddrVec
	found := false
	rt.Each(func(k rowtable.Key, e rowtable.Entry) {
		if found {
			return
		}
		addr := addrFor(k, e)
		if !hasHit(addr) {
			victim, found = addr, true
		}
	})
	return victim, found
}

// Open never speculatively closes a bank.
type Open struct{}

func (Open) Victim(*rowtable.Table, HasHit, int64) (devspec.AddrVec, bool) {
	return devspec.AddrVec{}, false
}

// Timeout precharges a bank that has sat open longer than T cycles and
// that nobody is waiting on.
type Timeout struct {
	T int64
}

func (p Timeout) Victim(rt *rowtable.Table, hasHit HasHit, clk int64) (devspec.AddrVec, bool) {
	var victim devspec.AddrVec
	found := false
	rt.Each(func(k rowtable.Key, e rowtable.Entry) {
		if found {
			return
		}
		addr := addrFor(k, e)
		if clk-e.OpenSince > p.T && !hasHit(addr) {
			victim, found = addr, true
		}
	})
	return victim, found
}

var (
	_ Policy = Closed{}
	_ Policy = Open{}
	_ Policy = Timeout{}
)
