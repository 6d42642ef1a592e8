// Package refresh generates per-rank REF (or per-subarray REFSB)
// requests at the cadence DeviceSpec.Timing["tREFI"] prescribes.
package refresh

import (
	"github.com/behrlich/go-dramsim/internal/devspec"
	"github.com/behrlich/go-dramsim/internal/request"
)

// Generator tracks, per rank, the next cycle a refresh is due. When the
// device supports REFSB it interleaves across subarrays -- each due
// cycle refreshes the next subarray in round-robin order, at 1/Subarrays
// the all-bank period -- which is how DSARP and SALP-MASA spread
// refresh's tRFC blocking cost instead of stalling the whole rank at
// once.
type Generator struct {
	spec         *devspec.DeviceSpec
	perSubarray  bool
	period       int64
	nextDue      []int64
	nextSubarray []int
}

// New builds a Generator for spec's organization (one entry per rank).
func New(spec *devspec.DeviceSpec) *Generator {
	perSubarray := false
	for _, c := range spec.Commands {
		if c == devspec.REFSB {
			perSubarray = true
		}
	}
	period := int64(spec.T("tREFI"))
	if perSubarray && spec.Org.Subarrays > 1 {
		period /= int64(spec.Org.Subarrays)
	}
	ranks := spec.Org.Ranks
	if ranks <= 0 {
		ranks = 1
	}
	g := &Generator{
		spec:         spec,
		perSubarray:  perSubarray,
		period:       period,
		nextDue:      make([]int64, ranks),
		nextSubarray: make([]int, ranks),
	}
	for i := range g.nextDue {
		g.nextDue[i] = period
	}
	return g
}

// Due returns the refresh requests that become due at or before clk,
// advancing each rank's due cycle by one period per request emitted.
func (g *Generator) Due(clk int64) []*request.Request {
	var out []*request.Request
	for rank := range g.nextDue {
		for clk >= g.nextDue[rank] {
			addr := devspec.AddrVec{Rank: rank}
			cmd := devspec.REF
			if g.perSubarray {
				addr.Subarray = g.nextSubarray[rank]
				g.nextSubarray[rank] = (g.nextSubarray[rank] + 1) % g.spec.Org.Subarrays
				cmd = devspec.REFSB
			}
			out = append(out, &request.Request{
				Type:           devspec.RefreshReq,
				AddrVec:        addr,
				Arrive:         clk,
				IsFirstCommand: true,
				Cmd:            cmd,
			})
			g.nextDue[rank] += g.period
		}
	}
	return out
}
