// Package scheduler picks which queued request a Controller should
// attempt to issue a command for this cycle.
package scheduler

import (
	"github.com/behrlich/go-dramsim/internal/devspec"
	"github.com/behrlich/go-dramsim/internal/hierarchy"
	"github.com/behrlich/go-dramsim/internal/queue"
	"github.com/behrlich/go-dramsim/internal/request"
	"github.com/behrlich/go-dramsim/internal/rowtable"
)

// Policy selects a candidate index from q, or -1 if nothing should be
// issued this cycle. Notify lets a policy observe what was actually
// issued, for policies (FRFCFS-Cap) that need to track state across
// calls; it is a no-op for stateless policies. rt is the channel's
// open-row index, the one source Select consults for row-buffer-hit
// priority; tree is only needed where a policy must also confirm full
// timing legality (FRFCFSPriorHit).
type Policy interface {
	Select(q *queue.Queue, tree *hierarchy.Tree, rt *rowtable.Table, spec *devspec.DeviceSpec, clk int64) int
	Notify(cmd devspec.Command, req *request.Request)
}

// rowHit reports whether req's target bank is open on exactly req's
// row, per rt -- the row-buffer-hit test Scheduler priority and
// RowPolicy victim selection both key off, rather than re-deriving the
// same bit by walking the HierarchyNode tree.
func rowHit(req *request.Request, rt *rowtable.Table) bool {
	e, ok := rt.Lookup(rowtable.KeyFromAddr(req.AddrVec))
	return ok && e.OpenRow == req.AddrVec.Row
}

// FCFS always picks the head of the queue.
type FCFS struct{}

func (FCFS) Select(q *queue.Queue, tree *hierarchy.Tree, rt *rowtable.Table, spec *devspec.DeviceSpec, clk int64) int {
	if q.Len() == 0 {
		return -1
	}
	return 0
}

func (FCFS) Notify(devspec.Command, *request.Request) {}

// FRFCFS (first-ready, first-come-first-served) prefers the oldest
// request that's a row-buffer hit ready for its column access; failing
// that, the oldest request overall.
type FRFCFS struct{}

func (FRFCFS) Select(q *queue.Queue, tree *hierarchy.Tree, rt *rowtable.Table, spec *devspec.DeviceSpec, clk int64) int {
	return selectFRFCFS(q, rt, nil)
}

func (FRFCFS) Notify(devspec.Command, *request.Request) {}

// selectFRFCFS is shared by FRFCFS and FRFCFS-Cap: find the oldest
// row-hit request for which allowed (if non-nil) also agrees, else
// fall back to the oldest request in the queue.
func selectFRFCFS(q *queue.Queue, rt *rowtable.Table, allowed func(req *request.Request) bool) int {
	if q.Len() == 0 {
		return -1
	}
	best := -1
	q.Each(func(i int, req *request.Request) bool {
		if rowHit(req, rt) && (allowed == nil || allowed(req)) {
			best = i
			return false
		}
		return true
	})
	if best >= 0 {
		return best
	}
	return 0
}

// FRFCFSCap is FRFCFS, except a given open row may serve at most Cap
// consecutive column accesses before an older, non-hit request is
// allowed to cut in line.
type FRFCFSCap struct {
	Cap int

	served map[rowtable.Key]capCounter
}

type capCounter struct {
	row   int
	count int
}

func NewFRFCFSCap(cap int) *FRFCFSCap {
	return &FRFCFSCap{Cap: cap, served: make(map[rowtable.Key]capCounter)}
}

func (p *FRFCFSCap) Select(q *queue.Queue, tree *hierarchy.Tree, rt *rowtable.Table, spec *devspec.DeviceSpec, clk int64) int {
	return selectFRFCFS(q, rt, func(req *request.Request) bool {
		key := rowtable.KeyFromAddr(req.AddrVec)
		c, ok := p.served[key]
		if !ok || c.row != req.AddrVec.Row {
			return true
		}
		return c.count < p.Cap
	})
}

func (p *FRFCFSCap) Notify(cmd devspec.Command, req *request.Request) {
	if cmd.BaseCommand() != devspec.RD && cmd.BaseCommand() != devspec.WR {
		return
	}
	key := rowtable.KeyFromAddr(req.AddrVec)
	c := p.served[key]
	if c.row != req.AddrVec.Row {
		c = capCounter{row: req.AddrVec.Row}
	}
	c.count++
	p.served[key] = c
}

// FRFCFSPriorHit is FRFCFS but a ready column access always beats any
// request that isn't legally issuable this cycle, even an older one --
// readiness includes the full timing check, not just row-hit decode.
type FRFCFSPriorHit struct{}

func (FRFCFSPriorHit) Select(q *queue.Queue, tree *hierarchy.Tree, rt *rowtable.Table, spec *devspec.DeviceSpec, clk int64) int {
	if q.Len() == 0 {
		return -1
	}
	best := -1
	q.Each(func(i int, req *request.Request) bool {
		if !rowHit(req, rt) {
			return true
		}
		terminal := spec.TerminalCommand(req.Type)
		if tree.Check(terminal, req.AddrVec, clk) {
			best = i
			return false
		}
		return true
	})
	if best >= 0 {
		return best
	}
	return 0
}

func (FRFCFSPriorHit) Notify(devspec.Command, *request.Request) {}

var (
	_ Policy = FCFS{}
	_ Policy = FRFCFS{}
	_ Policy = (*FRFCFSCap)(nil)
	_ Policy = FRFCFSPriorHit{}
)
