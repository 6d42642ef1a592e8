package rowtable

import (
	"testing"

	"github.com/behrlich/go-dramsim/internal/devspec"
)

func TestActivateThenLookup(t *testing.T) {
	tbl := New()
	k := Key{Rank: 0, BankGroup: 0, Bank: 1}
	tbl.OnActivate(k, 7, 100)

	e, ok := tbl.Lookup(k)
	if !ok {
		t.Fatal("expected an entry after OnActivate")
	}
	if e.OpenRow != 7 || e.OpenSince != 100 {
		t.Errorf("entry = %+v, want row 7 since 100", e)
	}
}

func TestPrechargeClearsEntry(t *testing.T) {
	tbl := New()
	k := Key{Rank: 0, BankGroup: 0, Bank: 1}
	tbl.OnActivate(k, 7, 100)
	tbl.OnPrecharge(k)

	if _, ok := tbl.Lookup(k); ok {
		t.Error("expected no entry after OnPrecharge")
	}
}

func TestActivateOverwritesStaleEntry(t *testing.T) {
	tbl := New()
	k := Key{Rank: 0, BankGroup: 0, Bank: 1}
	tbl.OnActivate(k, 7, 100)
	tbl.OnActivate(k, 9, 200)

	e, _ := tbl.Lookup(k)
	if e.OpenRow != 9 || e.OpenSince != 200 {
		t.Errorf("entry = %+v, want row 9 since 200", e)
	}
}

func TestRefreshRankClearsOnlyThatRank(t *testing.T) {
	tbl := New()
	k0 := Key{Rank: 0, BankGroup: 0, Bank: 0}
	k1 := Key{Rank: 1, BankGroup: 0, Bank: 0}
	tbl.OnActivate(k0, 1, 0)
	tbl.OnActivate(k1, 2, 0)

	tbl.OnRefreshRank(0)

	if _, ok := tbl.Lookup(k0); ok {
		t.Error("expected rank 0's entry cleared by OnRefreshRank(0)")
	}
	if _, ok := tbl.Lookup(k1); !ok {
		t.Error("expected rank 1's entry untouched by OnRefreshRank(0)")
	}
}

func TestKeyFromAddrIgnoresSubarrayAndRow(t *testing.T) {
	a := devspec.AddrVec{Rank: 2, BankGroup: 1, Bank: 3, Subarray: 9, Row: 42}
	k := KeyFromAddr(a)
	if k.Rank != 2 || k.BankGroup != 1 || k.Bank != 3 {
		t.Errorf("KeyFromAddr(%+v) = %+v", a, k)
	}
}
