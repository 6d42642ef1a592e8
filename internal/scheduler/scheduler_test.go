package scheduler

import (
	"testing"

	"github.com/behrlich/go-dramsim/internal/devspec"
	"github.com/behrlich/go-dramsim/internal/hierarchy"
	"github.com/behrlich/go-dramsim/internal/queue"
	"github.com/behrlich/go-dramsim/internal/request"
	"github.com/behrlich/go-dramsim/internal/rowtable"
)

func buildSpec(t *testing.T) *devspec.DeviceSpec {
	t.Helper()
	spec, err := devspec.Build(devspec.BuildOptions{Standard: devspec.DDR3, Org: "2Gb_x8", Speed: "1600K"})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return spec
}

func TestFCFSPicksHead(t *testing.T) {
	q := queue.New(4)
	r1 := &request.Request{Addr: 0}
	r2 := &request.Request{Addr: 64}
	q.Push(r1)
	q.Push(r2)

	if got := (FCFS{}).Select(q, nil, nil, nil, 0); got != 0 {
		t.Errorf("FCFS.Select = %d, want 0", got)
	}
}

func TestFRFCFSPrefersRowHit(t *testing.T) {
	spec := buildSpec(t)
	tree := hierarchy.NewTree(spec)
	rt := rowtable.New()

	// Open row 5 in bank 0 so a request to that row is column-ready.
	hit := devspec.AddrVec{Row: 5}
	clk := int64(0)
	for !tree.Check(devspec.ACT, hit, clk) {
		clk++
	}
	tree.Update(devspec.ACT, hit, clk)
	rt.OnActivate(rowtable.KeyFromAddr(hit), hit.Row, clk)

	q := queue.New(4)
	older := &request.Request{Type: devspec.ReadReq, AddrVec: devspec.AddrVec{Bank: 1, Row: 0}, Arrive: 0}
	newer := &request.Request{Type: devspec.ReadReq, AddrVec: hit, Arrive: 1}
	q.Push(older)
	q.Push(newer)

	got := (FRFCFS{}).Select(q, tree, rt, spec, clk+int64(spec.T("tRCD")))
	if got != 1 {
		t.Errorf("FRFCFS.Select = %d, want 1 (the row-hit request)", got)
	}
}

func TestFRFCFSFallsBackToOldest(t *testing.T) {
	spec := buildSpec(t)
	tree := hierarchy.NewTree(spec)
	rt := rowtable.New()

	q := queue.New(4)
	q.Push(&request.Request{Type: devspec.ReadReq, AddrVec: devspec.AddrVec{Bank: 0}})
	q.Push(&request.Request{Type: devspec.ReadReq, AddrVec: devspec.AddrVec{Bank: 1}})

	got := (FRFCFS{}).Select(q, tree, rt, spec, 0)
	if got != 0 {
		t.Errorf("FRFCFS.Select with no hits = %d, want 0 (oldest)", got)
	}
}

func TestFRFCFSCapStopsAfterLimit(t *testing.T) {
	spec := buildSpec(t)
	tree := hierarchy.NewTree(spec)
	rt := rowtable.New()
	addr := devspec.AddrVec{Row: 5}

	clk := int64(0)
	for !tree.Check(devspec.ACT, addr, clk) {
		clk++
	}
	tree.Update(devspec.ACT, addr, clk)
	rt.OnActivate(rowtable.KeyFromAddr(addr), addr.Row, clk)

	policy := NewFRFCFSCap(2)
	for i := 0; i < 2; i++ {
		policy.Notify(devspec.RD, &request.Request{AddrVec: addr})
	}

	q := queue.New(4)
	hitReq := &request.Request{Type: devspec.ReadReq, AddrVec: addr, Arrive: 5}
	otherReq := &request.Request{Type: devspec.ReadReq, AddrVec: devspec.AddrVec{Bank: 2}, Arrive: 0}
	q.Push(otherReq)
	q.Push(hitReq)

	got := policy.Select(q, tree, rt, spec, clk+int64(spec.T("tRCD")))
	if got != 0 {
		t.Errorf("Select after cap exhausted = %d, want 0 (fall back to older request)", got)
	}
}

func TestFRFCFSPriorHitRequiresLegalTiming(t *testing.T) {
	spec := buildSpec(t)
	tree := hierarchy.NewTree(spec)
	rt := rowtable.New()
	addr := devspec.AddrVec{Row: 5}

	clk := int64(0)
	for !tree.Check(devspec.ACT, addr, clk) {
		clk++
	}
	tree.Update(devspec.ACT, addr, clk)
	rt.OnActivate(rowtable.KeyFromAddr(addr), addr.Row, clk)

	q := queue.New(4)
	older := &request.Request{Type: devspec.ReadReq, AddrVec: devspec.AddrVec{Bank: 1}, Arrive: 0}
	hitReq := &request.Request{Type: devspec.ReadReq, AddrVec: addr, Arrive: 1}
	q.Push(older)
	q.Push(hitReq)

	// Right after ACT, tRCD hasn't elapsed: the row-hit request is a
	// hit in rt but not yet legally issuable, so Select must fall back
	// to the older request instead of preferring it.
	if got := (FRFCFSPriorHit{}).Select(q, tree, rt, spec, clk); got != 0 {
		t.Errorf("Select before tRCD elapsed = %d, want 0 (fall back to older)", got)
	}
	if got := (FRFCFSPriorHit{}).Select(q, tree, rt, spec, clk+int64(spec.T("tRCD"))); got != 1 {
		t.Errorf("Select after tRCD elapsed = %d, want 1 (ready hit wins)", got)
	}
}
