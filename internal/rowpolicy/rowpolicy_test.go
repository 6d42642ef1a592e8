package rowpolicy

import (
	"testing"

	"github.com/behrlich/go-dramsim/internal/devspec"
	"github.com/behrlich/go-dramsim/internal/rowtable"
)

func noHits(devspec.AddrVec) bool { return false }

func TestClosedPrechargesIdleOpenBank(t *testing.T) {
	rt := rowtable.New()
	addr := devspec.AddrVec{Row: 3}
	clk := int64(10)
	rt.OnActivate(rowtable.KeyFromAddr(addr), addr.Row, clk)

	victim, ok := (Closed{}).Victim(rt, noHits, clk)
	if !ok {
		t.Fatal("expected a victim bank")
	}
	if victim.Bank != addr.Bank || victim.Row != addr.Row {
		t.Errorf("victim = %+v, want bank %d row %d", victim, addr.Bank, addr.Row)
	}
}

func TestClosedSkipsBankWithPendingHit(t *testing.T) {
	rt := rowtable.New()
	addr := devspec.AddrVec{Row: 3}
	clk := int64(10)
	rt.OnActivate(rowtable.KeyFromAddr(addr), addr.Row, clk)

	hasHit := func(a devspec.AddrVec) bool { return a == addr }
	if _, ok := (Closed{}).Victim(rt, hasHit, clk); ok {
		t.Error("expected no victim when a queued request hits the open bank")
	}
}

func TestOpenNeverPrecharges(t *testing.T) {
	rt := rowtable.New()
	addr := devspec.AddrVec{Row: 3}
	clk := int64(10)
	rt.OnActivate(rowtable.KeyFromAddr(addr), addr.Row, clk)

	if _, ok := (Open{}).Victim(rt, noHits, clk); ok {
		t.Error("Open policy should never return a victim")
	}
}

func TestTimeoutWaitsForThreshold(t *testing.T) {
	rt := rowtable.New()
	addr := devspec.AddrVec{Row: 3}
	openedAt := int64(0)
	rt.OnActivate(rowtable.KeyFromAddr(addr), addr.Row, openedAt)

	policy := Timeout{T: 50}
	if _, ok := policy.Victim(rt, noHits, openedAt+10); ok {
		t.Error("expected no victim before the timeout elapses")
	}
	if _, ok := policy.Victim(rt, noHits, openedAt+51); !ok {
		t.Error("expected a victim once the timeout elapses")
	}
}

func TestClosedPicksLowestKeyDeterministically(t *testing.T) {
	rt := rowtable.New()
	rt.OnActivate(rowtable.Key{Rank: 1, Bank: 0}, 1, 0)
	rt.OnActivate(rowtable.Key{Rank: 0, Bank: 2}, 2, 0)
	rt.OnActivate(rowtable.Key{Rank: 0, Bank: 1}, 3, 0)

	for i := 0; i < 5; i++ {
		victim, ok := (Closed{}).Victim(rt, noHits, 0)
		if !ok {
			t.Fatal("expected a victim")
		}
		if victim.Rank != 0 || victim.Bank != 1 {
			t.Errorf("run %d: victim = %+v, want the lowest (Rank,BankGroup,Bank) key every time", i, victim)
		}
	}
}
