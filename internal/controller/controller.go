// Package controller implements the per-channel command issue loop:
// three bounded queues, a pending-completion list, and the nine-step tick
// that asks the Scheduler for a candidate, decodes it against the
// HierarchyNode tree, and issues whatever is legal this cycle.
// Grounded on the teacher's internal/queue.Runner Config/New/Start
// lifecycle shape and its per-tag state machine, with the io_uring
// submission body replaced entirely by spec.md §4.7's tick order.
package controller

import (
	"fmt"
	"io"

	"github.com/behrlich/go-dramsim/internal/devspec"
	"github.com/behrlich/go-dramsim/internal/hierarchy"
	"github.com/behrlich/go-dramsim/internal/logging"
	"github.com/behrlich/go-dramsim/internal/queue"
	"github.com/behrlich/go-dramsim/internal/refresh"
	"github.com/behrlich/go-dramsim/internal/request"
	"github.com/behrlich/go-dramsim/internal/rowpolicy"
	"github.com/behrlich/go-dramsim/internal/rowtable"
	"github.com/behrlich/go-dramsim/internal/scheduler"
	"github.com/behrlich/go-dramsim/internal/stats"
)

// Config is everything one Controller needs at construction. One
// Config/Controller pair exists per channel; Memory builds Org.Channels
// of them.
type Config struct {
	Channel int
	Spec    *devspec.DeviceSpec

	Scheduler scheduler.Policy
	RowPolicy rowpolicy.Policy

	ReadQueueMax  int
	WriteQueueMax int
	OtherQueueMax int

	Stats  *stats.ChannelStats
	Logger *logging.Logger

	// CmdTraceWriters, if non-nil, is indexed by rank: a command trace
	// line is written to CmdTraceWriters[rank] every cycle a command is
	// actually issued against that rank. A nil entry (or a nil slice)
	// disables tracing for that rank.
	CmdTraceWriters []io.Writer
}

// Controller owns one channel's queues, DRAM hierarchy subtree, row
// table, and policies, and advances them one cycle per Tick call.
type Controller struct {
	channel int
	spec    *devspec.DeviceSpec

	tree     *hierarchy.Tree
	rowtable *rowtable.Table

	sched     scheduler.Policy
	rowPolicy rowpolicy.Policy
	refresh   *refresh.Generator

	readq  *queue.Queue
	writeq *queue.Queue
	otherq *queue.Queue

	pending []*request.Request

	clk       int64
	writeMode bool
	serving   int64

	stats  *stats.ChannelStats
	logger *logging.Logger

	cmdTrace []io.Writer
}

// New builds a Controller from cfg.
func New(cfg Config) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Controller{
		channel:   cfg.Channel,
		spec:      cfg.Spec,
		tree:      hierarchy.NewTree(cfg.Spec),
		rowtable:  rowtable.New(),
		sched:     cfg.Scheduler,
		rowPolicy: cfg.RowPolicy,
		refresh:   refresh.New(cfg.Spec),
		readq:     queue.New(cfg.ReadQueueMax),
		writeq:    queue.New(cfg.WriteQueueMax),
		otherq:    queue.New(cfg.OtherQueueMax),
		stats:     cfg.Stats,
		logger:    logger.With("channel", cfg.Channel),
		cmdTrace:  cfg.CmdTraceWriters,
	}
}

// Clk returns the controller's current cycle.
func (c *Controller) Clk() int64 { return c.clk }

// Serving returns the channel's in-flight serving counter.
func (c *Controller) Serving() int64 { return c.serving }

// PendingRequests sums every queue's occupancy plus the pending list.
func (c *Controller) PendingRequests() int {
	return c.readq.Len() + c.writeq.Len() + c.otherq.Len() + len(c.pending)
}

// Enqueue admits req into the queue matching its type, applying
// write-forwarding for reads that target an address some queued write
// still owns. Reports false (no side effect) if the target queue is
// full.
func (c *Controller) Enqueue(req *request.Request) bool {
	q := c.queueFor(req.Type)
	if q.Full() {
		return false
	}

	if req.Type == devspec.ReadReq {
		if idx := c.writeq.FindByAddr(req.Addr); idx >= 0 {
			req.Arrive = c.clk
			req.Depart = c.clk + 1
			req.IsFirstCommand = false
			c.pending = append(c.pending, req)
			c.stats.Incoming.Inc()
			c.stats.ReadCount.Inc()
			return true
		}
	}

	req.Arrive = c.clk
	req.IsFirstCommand = true
	q.Push(req)
	c.stats.Incoming.Inc()
	return true
}

func (c *Controller) queueFor(t devspec.RequestType) *queue.Queue {
	switch t {
	case devspec.ReadReq:
		return c.readq
	case devspec.WriteReq:
		return c.writeq
	default:
		return c.otherq
	}
}

// Tick advances the controller by one cycle, following spec.md §4.7's
// nine-step order exactly.
func (c *Controller) Tick() {
	c.clk++
	c.sampleQueueLengths()
	c.retireCompleted()
	c.advanceRefresh()
	c.updateWriteMode()

	active := c.selectActiveQueue()
	sched := c.sched
	if active == c.otherq {
		// otherq mostly carries refresh requests, which have no
		// row-buffer hit to prefer -- always serve it oldest-first.
		sched = otherQueueScheduler
	}
	idx := sched.Select(active, c.tree, c.rowtable, c.spec, c.clk)

	var req *request.Request
	var cmd devspec.Command
	ready := false
	if idx >= 0 {
		req = active.At(idx)
		cmd = c.tree.Decode(c.terminalFor(req), req.AddrVec)
		ready = c.tree.Check(cmd, req.AddrVec, c.clk)
	}
	if !ready {
		c.tryVictim()
		return
	}

	if req.IsFirstCommand {
		if req.Type == devspec.ReadReq || req.Type == devspec.WriteReq {
			c.classify(req)
			c.serving++
		}
		req.IsFirstCommand = false
	}

	c.issue(cmd, req.AddrVec)
	sched.Notify(cmd, req)

	if cmd == c.terminalFor(req) {
		c.complete(active, idx, req)
	}
}

// otherQueueScheduler is fixed FCFS regardless of the configured
// policy: otherq's refresh requests have no row-buffer hit concept for
// FRFCFS-style prioritization to key off.
var otherQueueScheduler = scheduler.FCFS{}

// terminalFor returns the command that completes req: Request.Cmd for
// refresh requests (no row-buffer decode chain to walk), or
// DeviceSpec.Translate for Read/Write.
func (c *Controller) terminalFor(req *request.Request) devspec.Command {
	if req.Type == devspec.RefreshReq {
		return req.Cmd
	}
	return c.spec.TerminalCommand(req.Type)
}

// classify records the row-hit/open(conflict)/miss outcome of a
// request's first command, evaluated before this cycle's command has
// mutated any hierarchy state.
func (c *Controller) classify(req *request.Request) {
	hit := c.tree.CheckRowHit(req.AddrVec)
	open := c.tree.CheckRowOpen(req.AddrVec)
	write := req.Type == devspec.WriteReq

	switch {
	case hit:
		if write {
			c.stats.WriteRowHits.Inc()
		} else {
			c.stats.ReadRowHits.Inc()
		}
	case open:
		if write {
			c.stats.WriteRowConflicts.Inc()
		} else {
			c.stats.ReadRowConflicts.Inc()
		}
	default:
		if write {
			c.stats.WriteRowMisses.Inc()
		} else {
			c.stats.ReadRowMisses.Inc()
		}
	}

	tx := float64(c.spec.Org.PrefetchBeats*c.spec.Org.ChannelWidthBits) / 8
	if write {
		c.stats.WriteCount.Inc()
		c.stats.WriteTransactionBytes.Add(tx)
	} else {
		c.stats.ReadCount.Inc()
		c.stats.ReadTransactionBytes.Add(tx)
	}
}

// issue applies cmd's timing and state effects to the hierarchy tree
// and row table, and emits a command-trace line if tracing is enabled
// for addr's rank.
func (c *Controller) issue(cmd devspec.Command, addr devspec.AddrVec) {
	c.tree.Update(cmd, addr, c.clk)

	base := cmd.BaseCommand()
	switch base {
	case devspec.ACT:
		c.rowtable.OnActivate(rowtable.KeyFromAddr(addr), addr.Row, c.clk)
	case devspec.PRE:
		c.rowtable.OnPrecharge(rowtable.KeyFromAddr(addr))
	case devspec.RDA, devspec.WRA:
		c.rowtable.OnPrecharge(rowtable.KeyFromAddr(addr))
	}
	switch cmd {
	case devspec.PREA, devspec.REF:
		c.rowtable.OnRefreshRank(addr.Rank)
	}

	c.stats.ActiveCycles.Inc()
	c.traceCmd(cmd, addr)
}

// complete removes req from its queue (or marks it pending for a
// Read), per step 9: depart/pending for reads, serving decrement and
// immediate latency accounting for writes; refresh/other requests
// never incremented serving and simply depart.
func (c *Controller) complete(q *queue.Queue, idx int, req *request.Request) {
	q.RemoveAt(idx)
	switch req.Type {
	case devspec.ReadReq:
		req.Depart = c.clk + int64(c.spec.ReadLatency)
		c.pending = append(c.pending, req)
	case devspec.WriteReq:
		req.Depart = c.clk
		c.stats.LatencySum.Add(float64(req.Depart - req.Arrive))
		c.serving--
		req.Done()
	default:
		req.Depart = c.clk
		req.Done()
	}
}

// retireCompleted pops the pending list's front entry if its depart
// has arrived, per step 2. Enqueue order suffices as the completion
// order: depart is monotone given issue order and fixed read latency
// (spec.md §3).
func (c *Controller) retireCompleted() {
	if len(c.pending) == 0 {
		return
	}
	front := c.pending[0]
	if front.Depart > c.clk {
		return
	}
	if front.Depart-front.Arrive > 1 {
		c.serving--
	}
	c.stats.LatencySum.Add(float64(front.Depart - front.Arrive))
	front.Done()
	c.pending = c.pending[1:]
}

func (c *Controller) advanceRefresh() {
	for _, req := range c.refresh.Due(c.clk) {
		if !c.otherq.Push(req) {
			c.logger.Warn("refresh request dropped, otherq full", "clk", c.clk)
		}
	}
}

// updateWriteMode applies spec.md §4.7 step 4's hysteresis thresholds.
func (c *Controller) updateWriteMode() {
	max := c.writeq.Max()
	if max == 0 {
		return
	}
	hi := float64(max) * 0.8
	lo := float64(max) * 0.2
	switch {
	case c.writeq.Len() == 0 && c.readq.Len() == 0:
		// both queues empty: keep the prior mode.
	case float64(c.writeq.Len()) >= hi || c.readq.Len() == 0:
		c.writeMode = true
	case float64(c.writeq.Len()) <= lo && c.readq.Len() > 0:
		c.writeMode = false
	}
	// else: persist prior mode (spec.md §9 open question decision).
}

func (c *Controller) selectActiveQueue() *queue.Queue {
	switch {
	case c.otherq.Len() > 0:
		return c.otherq
	case c.writeMode:
		return c.writeq
	default:
		return c.readq
	}
}

func (c *Controller) tryVictim() {
	addr, ok := c.rowPolicy.Victim(c.rowtable, c.hasQueuedHit, c.clk)
	if !ok {
		return
	}
	if !c.tree.Check(devspec.PRE, addr, c.clk) {
		return
	}
	c.issue(devspec.PRE, addr)
}

// hasQueuedHit reports whether some queued request still targets
// addr's exact open bank+row, the signal RowPolicy uses to avoid
// precharging a bank something is about to hit.
func (c *Controller) hasQueuedHit(addr devspec.AddrVec) bool {
	hit := false
	check := func(_ int, req *request.Request) bool {
		if req.AddrVec.Rank == addr.Rank && req.AddrVec.BankGroup == addr.BankGroup &&
			req.AddrVec.Bank == addr.Bank && req.AddrVec.Subarray == addr.Subarray &&
			req.AddrVec.Row == addr.Row {
			hit = true
			return false
		}
		return true
	}
	c.readq.Each(check)
	if !hit {
		c.writeq.Each(check)
	}
	return hit
}

func (c *Controller) sampleQueueLengths() {
	c.stats.ReadQueueLenSum.Add(float64(c.readq.Len()))
	c.stats.WriteQueueLenSum.Add(float64(c.writeq.Len()))
	c.stats.OtherQueueLenSum.Add(float64(c.otherq.Len()))
	c.stats.SampleCount.Inc()
}

func (c *Controller) traceCmd(cmd devspec.Command, addr devspec.AddrVec) {
	if c.cmdTrace == nil || addr.Rank < 0 || addr.Rank >= len(c.cmdTrace) {
		return
	}
	w := c.cmdTrace[addr.Rank]
	if w == nil {
		return
	}
	if cmd == devspec.PREA || cmd == devspec.REF {
		fmt.Fprintf(w, "%d,%s\n", c.clk, cmd)
		return
	}
	fmt.Fprintf(w, "%d,%s,%d\n", c.clk, cmd, addr.FlatBankID(c.spec.Org))
}
